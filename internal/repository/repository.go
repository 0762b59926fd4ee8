package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"interview-scheduler/internal/domain"
)

// Execer is satisfied by both *pgxpool.Pool and pgx.Tx, so every
// repository works standalone or bound to a transaction.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type InterviewerRepository interface {
	Insert(ctx context.Context, interviewer *domain.Interviewer) error
	FindByID(ctx context.Context, id int64) (*domain.Interviewer, error)
	UpdateMaxWeekly(ctx context.Context, id int64, maxWeekly int) (*domain.Interviewer, error)
}

type AvailabilityRepository interface {
	ListByInterviewer(ctx context.Context, interviewerID int64) ([]domain.AvailabilityWindow, error)
	// ReplaceForInterviewer discards every window of the interviewer and
	// installs the given set. Callers must run it inside a transaction.
	ReplaceForInterviewer(ctx context.Context, interviewerID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error)
}

type SlotPageFilter struct {
	InterviewerID int64 // 0 means any interviewer
	From          time.Time
	To            time.Time
	Cursor        int64
	Limit         int
}

type SlotRepository interface {
	Insert(ctx context.Context, slot *domain.Slot) error
	FindByID(ctx context.Context, id int64) (*domain.Slot, error)
	// FindOverlapping returns slots of the interviewer whose start time
	// falls in [start, end).
	FindOverlapping(ctx context.Context, interviewerID int64, start, end time.Time) ([]domain.Slot, error)
	// Save persists booked count guarded by the slot's version token.
	// It returns domain.ErrVersionConflict when the token is stale and
	// advances slot.Version on success.
	Save(ctx context.Context, slot *domain.Slot) error
	ListPage(ctx context.Context, filter SlotPageFilter) ([]domain.Slot, error)
	Count(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	Insert(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	UpdateSlotRef(ctx context.Context, id string, slotID int64) error
	CountForInterviewerInRange(ctx context.Context, interviewerID int64, from, to time.Time) (int, error)
	CountActiveForCandidateAfter(ctx context.Context, candidateEmail string, after time.Time) (int, error)
	ListByCandidate(ctx context.Context, candidateEmail string) ([]domain.Booking, error)
	ListByInterviewer(ctx context.Context, interviewerID int64) ([]domain.Booking, error)
}

type TxRepositories struct {
	Interviewers InterviewerRepository
	Availability AvailabilityRepository
	Slots        SlotRepository
	Bookings     BookingRepository
}

type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}
