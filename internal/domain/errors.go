package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrVersionConflict is returned by stores when a save loses an
	// optimistic-concurrency race. The coordinator translates it into
	// SlotFullyBookedError before it reaches a caller.
	ErrVersionConflict = errors.New("version conflict")
)

type SlotFullyBookedError struct {
	SlotID int64
}

func (e *SlotFullyBookedError) Error() string {
	return fmt.Sprintf("slot %d is fully booked", e.SlotID)
}

type WeeklyLimitExceededError struct {
	InterviewerID int64
}

func (e *WeeklyLimitExceededError) Error() string {
	return fmt.Sprintf("weekly interview limit exceeded for interviewer %d", e.InterviewerID)
}

type AlreadyBookedError struct {
	CandidateEmail string
}

func (e *AlreadyBookedError) Error() string {
	return fmt.Sprintf("candidate %s already has an active booking", e.CandidateEmail)
}
