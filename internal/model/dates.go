package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate normalizes an externally supplied date value into a canonical
// time.Time. Accepted forms: time.Time values, ISO-8601 strings (a trailing
// Z reads as UTC), and numeric epoch seconds. Strings that fail ISO parsing
// fall back to an epoch-seconds reading before being rejected.
func ParseDate(value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		t := v
		return &t, nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		t := *v
		return &t, nil
	case string:
		return parseDateString(v)
	case float64:
		t := epochTime(v)
		return &t, nil
	case int:
		t := epochTime(float64(v))
		return &t, nil
	case int64:
		t := epochTime(float64(v))
		return &t, nil
	default:
		return nil, fmt.Errorf("unsupported date value of type %T", value)
	}
}

// ParseDateJSON normalizes a raw JSON date field, which may be a string or a
// number. Missing and null both read as no date.
func ParseDateJSON(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, err
	}
	return ParseDate(value)
}

func parseDateString(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t, nil
		}
	}
	if secs, err := strconv.ParseFloat(trimmed, 64); err == nil {
		t := epochTime(secs)
		return &t, nil
	}
	return nil, fmt.Errorf("unparsable date %q", value)
}

func epochTime(secs float64) time.Time {
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}
