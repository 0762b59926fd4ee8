package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"interview-scheduler/internal/domain"
	"interview-scheduler/internal/repository"
)

// BookingService coordinates slot capacity and interviewer quotas. It is
// stateless and reentrant; the slot's version token is the only
// concurrency control, so concurrent callers race through the store and
// losers get a conflict instead of a silent drop.
type BookingService struct {
	txManager repository.TxManager
	log       *zap.SugaredLogger
	capacity  int
	clock     func() time.Time
}

func NewBookingService(txManager repository.TxManager, log *zap.SugaredLogger, capacity int) *BookingService {
	if capacity <= 0 {
		capacity = DefaultSlotCapacity
	}
	return &BookingService{
		txManager: txManager,
		log:       log.Named("bookings"),
		capacity:  capacity,
		clock:     time.Now,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, slotID int64, candidateName, candidateEmail string) (*domain.Booking, error) {
	var created *domain.Booking
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		slot, err := repos.Slots.FindByID(ctx, slotID)
		if err != nil {
			return err
		}

		if err := s.checkCapacityAndWeeklyLimit(ctx, repos, slot); err != nil {
			return err
		}

		// One active upcoming booking per candidate, across all slots.
		active, err := repos.Bookings.CountActiveForCandidateAfter(ctx, candidateEmail, s.clock())
		if err != nil {
			return err
		}
		if active > 0 {
			return &domain.AlreadyBookedError{CandidateEmail: candidateEmail}
		}

		slot.BookedCount++
		if err := repos.Slots.Save(ctx, slot); err != nil {
			return translateConflict(err, slot.ID)
		}

		booking := &domain.Booking{
			ID:             uuid.NewString(),
			SlotID:         slot.ID,
			CandidateName:  candidateName,
			CandidateEmail: candidateEmail,
			Confirmed:      true,
		}
		if err := repos.Bookings.Insert(ctx, booking); err != nil {
			return err
		}
		created = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("booking created", "booking_id", created.ID, "slot_id", slotID, "candidate", candidateEmail)
	return created, nil
}

func (s *BookingService) UpdateBookingSlot(ctx context.Context, bookingID string, newSlotID int64) (*domain.Booking, error) {
	var updated *domain.Booking
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		booking, err := repos.Bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		oldSlot, err := repos.Slots.FindByID(ctx, booking.SlotID)
		if err != nil {
			return err
		}

		newSlot := oldSlot
		if newSlotID != oldSlot.ID {
			newSlot, err = repos.Slots.FindByID(ctx, newSlotID)
			if err != nil {
				return err
			}
		}

		// Floor at zero: drifted counts must never go negative.
		if oldSlot.BookedCount > 0 {
			oldSlot.BookedCount--
		}

		// Only the new slot is re-checked; the booking is being moved,
		// not duplicated, so the already-booked rule does not apply.
		if err := s.checkCapacityAndWeeklyLimit(ctx, repos, newSlot); err != nil {
			return err
		}

		newSlot.BookedCount++

		if err := repos.Slots.Save(ctx, oldSlot); err != nil {
			return translateConflict(err, newSlotID)
		}
		if newSlot != oldSlot {
			if err := repos.Slots.Save(ctx, newSlot); err != nil {
				return translateConflict(err, newSlotID)
			}
		}

		if err := repos.Bookings.UpdateSlotRef(ctx, booking.ID, newSlot.ID); err != nil {
			return err
		}
		booking.SlotID = newSlot.ID
		updated = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("booking rescheduled", "booking_id", bookingID, "new_slot_id", newSlotID)
	return updated, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) error {
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		booking, err := repos.Bookings.FindByID(ctx, bookingID)
		if err != nil {
			return err
		}

		slot, err := repos.Slots.FindByID(ctx, booking.SlotID)
		if err != nil {
			return err
		}

		if slot.BookedCount > 0 {
			slot.BookedCount--
			if err := repos.Slots.Save(ctx, slot); err != nil {
				return translateConflict(err, slot.ID)
			}
		}

		return repos.Bookings.Delete(ctx, booking.ID)
	})
	if err != nil {
		return err
	}

	s.log.Infow("booking cancelled", "booking_id", bookingID)
	return nil
}

func (s *BookingService) ListByCandidate(ctx context.Context, candidateEmail string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		bookings, err = repos.Bookings.ListByCandidate(ctx, candidateEmail)
		return err
	})
	return bookings, err
}

func (s *BookingService) ListByInterviewer(ctx context.Context, interviewerID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		bookings, err = repos.Bookings.ListByInterviewer(ctx, interviewerID)
		return err
	})
	return bookings, err
}

// checkCapacityAndWeeklyLimit fails fast before any mutation. The weekly
// count is a plain read, not guarded by the slot's version token, so two
// racers on different slots of one interviewer can both pass.
func (s *BookingService) checkCapacityAndWeeklyLimit(ctx context.Context, repos repository.TxRepositories, slot *domain.Slot) error {
	if !hasCapacity(slot, s.capacity) {
		return &domain.SlotFullyBookedError{SlotID: slot.ID}
	}

	interviewer, err := repos.Interviewers.FindByID(ctx, slot.InterviewerID)
	if err != nil {
		return err
	}

	weekStart, weekEnd := weekBounds(slot.StartTime)
	confirmed, err := repos.Bookings.CountForInterviewerInRange(ctx, interviewer.ID, weekStart, weekEnd)
	if err != nil {
		return err
	}
	if !withinWeeklyLimit(confirmed, interviewer.MaxWeeklyInterviews) {
		return &domain.WeeklyLimitExceededError{InterviewerID: interviewer.ID}
	}
	return nil
}

// translateConflict turns a lost version race into the conflict the
// caller can act on: the slot is effectively fully booked right now and
// a retry will re-observe the current count.
func translateConflict(err error, slotID int64) error {
	if errors.Is(err, domain.ErrVersionConflict) {
		return &domain.SlotFullyBookedError{SlotID: slotID}
	}
	return err
}
