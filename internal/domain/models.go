package domain

import "time"

type Interviewer struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	MaxWeeklyInterviews int    `json:"max_weekly_interviews"`
}

// AvailabilityWindow is one recurring weekly window for an interviewer.
// Windows have no identity across replacements: a replace-all drops the
// old set and installs the new one.
type AvailabilityWindow struct {
	ID            int64  `json:"id,omitempty"`
	InterviewerID int64  `json:"interviewer_id"`
	DayOfWeek     int    `json:"day_of_week"` // 0=Sunday .. 6=Saturday, as time.Weekday
	StartTime     string `json:"start_time"`  // "HH:MM"
	EndTime       string `json:"end_time"`    // "HH:MM"
	DurationMins  int    `json:"slot_duration_minutes"`
}

// Slot is a materialized bookable interval. BookedCount and Version are
// owned by the booking coordinator; nothing else writes them. Version is
// the optimistic token compared on every save.
type Slot struct {
	ID            int64     `json:"id"`
	InterviewerID int64     `json:"interviewer_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	BookedCount   int       `json:"booked_count"`
	Version       int64     `json:"version"`
}

type Booking struct {
	ID             string    `json:"id"`
	SlotID         int64     `json:"slot_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	Confirmed      bool      `json:"confirmed"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
}

// SlotView is a slot as exposed to callers, with the remaining capacity
// already computed (never negative).
type SlotView struct {
	SlotID            int64     `json:"slot_id"`
	InterviewerID     int64     `json:"interviewer_id"`
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	AvailableCapacity int       `json:"available_capacity"`
}

type SlotPage struct {
	Items      []SlotView `json:"items"`
	NextCursor int64      `json:"next_cursor"`
	HasMore    bool       `json:"has_more"`
}
