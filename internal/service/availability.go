package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"interview-scheduler/internal/domain"
	"interview-scheduler/internal/repository"
)

const (
	minSlotDurationMins = 5
	maxSlotDurationMins = 480
)

type AvailabilityService struct {
	txManager repository.TxManager
	log       *zap.SugaredLogger
}

func NewAvailabilityService(txManager repository.TxManager, log *zap.SugaredLogger) *AvailabilityService {
	return &AvailabilityService{txManager: txManager, log: log.Named("availability")}
}

func (s *AvailabilityService) ListWindows(ctx context.Context, interviewerID int64) ([]domain.AvailabilityWindow, error) {
	var windows []domain.AvailabilityWindow
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		windows, err = repos.Availability.ListByInterviewer(ctx, interviewerID)
		return err
	})
	return windows, err
}

// ReplaceWindows atomically swaps the interviewer's whole weekly window
// set. Validation happens before any mutation.
func (s *AvailabilityService) ReplaceWindows(ctx context.Context, interviewerID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	for _, window := range windows {
		if err := validateWindow(window); err != nil {
			return nil, err
		}
	}

	var saved []domain.AvailabilityWindow
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if _, err := repos.Interviewers.FindByID(ctx, interviewerID); err != nil {
			return err
		}
		var err error
		saved, err = repos.Availability.ReplaceForInterviewer(ctx, interviewerID, windows)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("availability replaced", "interviewer_id", interviewerID, "windows", len(saved))
	return saved, nil
}

func validateWindow(window domain.AvailabilityWindow) error {
	if window.DayOfWeek < 0 || window.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week %d out of range: %w", window.DayOfWeek, domain.ErrInvalidInput)
	}
	if window.DurationMins < minSlotDurationMins || window.DurationMins > maxSlotDurationMins {
		return fmt.Errorf("slot_duration_minutes %d out of range [%d, %d]: %w",
			window.DurationMins, minSlotDurationMins, maxSlotDurationMins, domain.ErrInvalidInput)
	}

	start, err := parseHHMM(window.StartTime)
	if err != nil {
		return err
	}
	end, err := parseHHMM(window.EndTime)
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time %s must be before end_time %s: %w",
			window.StartTime, window.EndTime, domain.ErrInvalidInput)
	}
	return nil
}
