package model

import "strconv"

// IDAllocator hands out sequential numeric task identifiers. The persistence
// layer owns one and resets it from the loaded collection, so there is no
// ambient process-wide counter.
type IDAllocator struct {
	next int64
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

func (a *IDAllocator) Next() string {
	id := a.next
	a.next++
	return strconv.FormatInt(id, 10)
}

// Claim keeps an explicit numeric id, advancing the counter past it, and
// assigns the next sequential id for anything else.
func (a *IDAllocator) Claim(explicit string) string {
	if n, err := strconv.ParseInt(explicit, 10, 64); err == nil && n >= 0 {
		if n >= a.next {
			a.next = n + 1
		}
		return explicit
	}
	return a.Next()
}

// Reset recomputes the counter as max(numeric ids)+1, or 1 for an empty
// collection.
func (a *IDAllocator) Reset(tasks []Task) {
	var highest int64
	for _, task := range tasks {
		if n, err := strconv.ParseInt(task.ID, 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	a.next = highest + 1
}
