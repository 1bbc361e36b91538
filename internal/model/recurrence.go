package model

import "time"

const (
	PatternDaily   = "daily"
	PatternWeekly  = "weekly"
	PatternMonthly = "monthly"
	PatternCustom  = "custom"
)

const (
	EndNever      = "never"
	EndAfterCount = "after_count"
	EndOnDate     = "on_date"
)

type Recurrence struct {
	Pattern  string        `json:"pattern"`
	Interval int           `json:"interval"`
	End      *EndCondition `json:"end_condition,omitempty"`
}

type EndCondition struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

func (t *Task) IsRecurring() bool {
	return t.Recurrence != nil
}

// NextDueDate computes when the next occurrence would be due. The base is
// the explicit argument when given, then the task's due date, then now.
// An unknown pattern yields nil, not an error.
func (t *Task) NextDueDate(base *time.Time, now time.Time) *time.Time {
	if t.Recurrence == nil {
		return nil
	}

	from := now
	if base != nil {
		from = *base
	} else if t.DueDate != nil {
		from = *t.DueDate
	}

	pattern := t.Recurrence.Pattern
	if pattern == "" {
		pattern = PatternDaily
	}
	interval := t.Recurrence.Interval
	if interval <= 0 {
		interval = 1
	}

	switch pattern {
	case PatternDaily, PatternCustom:
		next := from.AddDate(0, 0, interval)
		return &next
	case PatternWeekly:
		next := from.AddDate(0, 0, interval*7)
		return &next
	case PatternMonthly:
		next := addMonthsClamped(from, interval)
		return &next
	default:
		return nil
	}
}

// ShouldGenerateNext reports whether a recurring task needs its next
// instance: always after completion, otherwise only once the due date is
// strictly in the past.
func (t *Task) ShouldGenerateNext(now time.Time) bool {
	if t.Recurrence == nil {
		return false
	}
	if t.Completed {
		return true
	}
	return t.DueDate != nil && t.DueDate.Before(now)
}

// RecurrenceEnded reports whether the series' end condition has been
// reached. The after_count type is accepted but never considered reached;
// occurrence counting lives outside this model.
func (t *Task) RecurrenceEnded(now time.Time) bool {
	if t.Recurrence == nil || t.Recurrence.End == nil {
		return false
	}
	switch t.Recurrence.End.Type {
	case EndOnDate:
		end, err := parseDateString(t.Recurrence.End.Value)
		if err != nil || end == nil {
			return false
		}
		return now.After(*end)
	default:
		// never, after_count, and unknown types keep the series open.
		return false
	}
}

// addMonthsClamped advances the month with year carry and clamps the day to
// the target month's length, so Jan 31 plus one month is Feb 28 or 29. The
// time of day and location stay intact. time.AddDate would normalize the
// overshoot into March instead.
func addMonthsClamped(base time.Time, months int) time.Time {
	month := int(base.Month()) + months
	year := base.Year()
	for month > 12 {
		month -= 12
		year++
	}
	day := base.Day()
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day,
		base.Hour(), base.Minute(), base.Second(), base.Nanosecond(), base.Location())
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the following month is this month's last day
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
