package service

import (
	"time"

	"interview-scheduler/internal/domain"
)

// DefaultSlotCapacity is the number of candidates a slot can hold.
// Single-seat today; kept configurable for multi-seat slots.
const DefaultSlotCapacity = 1

func hasCapacity(slot *domain.Slot, capacity int) bool {
	return slot.BookedCount < capacity
}

func withinWeeklyLimit(confirmedCount, maxWeekly int) bool {
	return confirmedCount < maxWeekly
}

// weekBounds returns the Monday 00:00:00 and Sunday 23:59:59 enclosing t.
// The bounds come from the slot's own date, never from "now", so a
// reschedule into another week is judged against that week's count.
func weekBounds(t time.Time) (time.Time, time.Time) {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, -daysSinceMonday)
	sunday := monday.AddDate(0, 0, 6)
	weekEnd := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, sunday.Location())
	return monday, weekEnd
}
