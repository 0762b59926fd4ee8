package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"interview-scheduler/internal/domain"
	"interview-scheduler/internal/repository"
)

type SlotService struct {
	txManager repository.TxManager
	log       *zap.SugaredLogger
	capacity  int
	clock     func() time.Time
}

func NewSlotService(txManager repository.TxManager, log *zap.SugaredLogger, capacity int) *SlotService {
	if capacity <= 0 {
		capacity = DefaultSlotCapacity
	}
	return &SlotService{
		txManager: txManager,
		log:       log.Named("slots"),
		capacity:  capacity,
		clock:     time.Now,
	}
}

// GenerateForInterviewer expands the interviewer's weekly windows over
// [from, to] inclusive into concrete slots and returns how many were
// newly created. Runs in one transaction so a partial expansion is
// never left behind.
func (s *SlotService) GenerateForInterviewer(ctx context.Context, interviewerID int64, from, to time.Time) (int, error) {
	created := 0
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		interviewer, err := repos.Interviewers.FindByID(ctx, interviewerID)
		if err != nil {
			return err
		}

		windows, err := repos.Availability.ListByInterviewer(ctx, interviewerID)
		if err != nil {
			return err
		}

		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			for _, window := range windows {
				if int(day.Weekday()) != window.DayOfWeek {
					continue
				}
				n, err := s.generateForDay(ctx, repos, interviewer.ID, window, day)
				if err != nil {
					return err
				}
				created += n
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Infow("slots generated",
		"interviewer_id", interviewerID,
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
		"created", created,
	)
	return created, nil
}

func (s *SlotService) generateForDay(
	ctx context.Context,
	repos repository.TxRepositories,
	interviewerID int64,
	window domain.AvailabilityWindow,
	day time.Time,
) (int, error) {
	startTOD, err := parseHHMM(window.StartTime)
	if err != nil {
		return 0, err
	}
	endTOD, err := parseHHMM(window.EndTime)
	if err != nil {
		return 0, err
	}

	year, month, dayNum := day.Date()
	slotStart := time.Date(year, month, dayNum, startTOD.Hour(), startTOD.Minute(), 0, 0, day.Location())
	windowEnd := time.Date(year, month, dayNum, endTOD.Hour(), endTOD.Minute(), 0, 0, day.Location())
	duration := time.Duration(window.DurationMins) * time.Minute

	// Trailing remainders shorter than a full slot are dropped.
	created := 0
	for !slotStart.Add(duration).After(windowEnd) {
		slotEnd := slotStart.Add(duration)

		existing, err := repos.Slots.FindOverlapping(ctx, interviewerID, slotStart, slotEnd)
		if err != nil {
			return 0, err
		}
		if len(existing) == 0 {
			slot := domain.Slot{
				InterviewerID: interviewerID,
				StartTime:     slotStart,
				EndTime:       slotEnd,
			}
			if err := repos.Slots.Insert(ctx, &slot); err != nil {
				return 0, err
			}
			created++
		}

		slotStart = slotEnd
	}
	return created, nil
}

// ListPage returns slots ordered by id with id-cursor paging. The
// hide-full filter applies after the page is fetched, matching what the
// cursor advanced past.
func (s *SlotService) ListPage(ctx context.Context, filter repository.SlotPageFilter, hideFull bool) (domain.SlotPage, error) {
	page := domain.SlotPage{Items: []domain.SlotView{}}

	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		slots, err := repos.Slots.ListPage(ctx, filter)
		if err != nil {
			return err
		}

		nextCursor := filter.Cursor
		for _, slot := range slots {
			nextCursor = slot.ID
			view := s.toView(slot)
			if hideFull && view.AvailableCapacity == 0 {
				continue
			}
			page.Items = append(page.Items, view)
		}
		page.NextCursor = nextCursor

		if len(slots) > 0 {
			total, err := repos.Slots.Count(ctx)
			if err != nil {
				return err
			}
			page.HasMore = total > nextCursor
		}
		return nil
	})
	return page, err
}

func (s *SlotService) GetSlot(ctx context.Context, slotID int64) (domain.SlotView, error) {
	var view domain.SlotView
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		slot, err := repos.Slots.FindByID(ctx, slotID)
		if err != nil {
			return err
		}
		view = s.toView(*slot)
		return nil
	})
	return view, err
}

func (s *SlotService) toView(slot domain.Slot) domain.SlotView {
	remaining := s.capacity - slot.BookedCount
	if remaining < 0 {
		remaining = 0
	}
	return domain.SlotView{
		SlotID:            slot.ID,
		InterviewerID:     slot.InterviewerID,
		StartTime:         slot.StartTime,
		EndTime:           slot.EndTime,
		AvailableCapacity: remaining,
	}
}

func parseHHMM(s string) (time.Time, error) {
	if len(s) < 5 {
		return time.Time{}, fmt.Errorf("invalid time string %q: %w", s, domain.ErrInvalidInput)
	}
	s = s[:5] // "09:00:00" -> "09:00"
	t, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time string %q: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}
