package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"interview-scheduler/internal/domain"
	"interview-scheduler/internal/repository"
)

// memStores is an in-memory stand-in for the Postgres repositories with
// the same optimistic-concurrency contract: reads hand out copies and
// Save compares the version token under the lock, so goroutines race
// exactly like transactions racing on the slot row.
type memStores struct {
	mu sync.Mutex

	interviewers map[int64]domain.Interviewer
	windows      map[int64][]domain.AvailabilityWindow
	slots        map[int64]*domain.Slot
	bookings     map[string]*domain.Booking

	nextInterviewerID int64
	nextSlotID        int64
}

func newMemStores() *memStores {
	return &memStores{
		interviewers: map[int64]domain.Interviewer{},
		windows:      map[int64][]domain.AvailabilityWindow{},
		slots:        map[int64]*domain.Slot{},
		bookings:     map[string]*domain.Booking{},
	}
}

func (s *memStores) txManager() repository.TxManager {
	return &memTxManager{s: s}
}

func (s *memStores) addInterviewer(name, email string, maxWeekly int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextInterviewerID++
	s.interviewers[s.nextInterviewerID] = domain.Interviewer{
		ID: s.nextInterviewerID, Name: name, Email: email, MaxWeeklyInterviews: maxWeekly,
	}
	return s.nextInterviewerID
}

func (s *memStores) addWindow(interviewerID int64, dayOfWeek int, start, end string, durationMins int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[interviewerID] = append(s.windows[interviewerID], domain.AvailabilityWindow{
		ID:            int64(len(s.windows[interviewerID]) + 1),
		InterviewerID: interviewerID,
		DayOfWeek:     dayOfWeek,
		StartTime:     start,
		EndTime:       end,
		DurationMins:  durationMins,
	})
}

func (s *memStores) addSlot(interviewerID int64, start time.Time, durationMins, bookedCount int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSlotID++
	s.slots[s.nextSlotID] = &domain.Slot{
		ID:            s.nextSlotID,
		InterviewerID: interviewerID,
		StartTime:     start,
		EndTime:       start.Add(time.Duration(durationMins) * time.Minute),
		BookedCount:   bookedCount,
	}
	return s.nextSlotID
}

func (s *memStores) slotByID(id int64) domain.Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.slots[id]
}

func (s *memStores) bookingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

type memTxManager struct {
	s *memStores
}

func (m *memTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	return fn(ctx, repository.TxRepositories{
		Interviewers: &memInterviewerRepo{s: m.s},
		Availability: &memAvailabilityRepo{s: m.s},
		Slots:        &memSlotRepo{s: m.s},
		Bookings:     &memBookingRepo{s: m.s},
	})
}

type memInterviewerRepo struct {
	s *memStores
}

func (r *memInterviewerRepo) Insert(_ context.Context, interviewer *domain.Interviewer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextInterviewerID++
	interviewer.ID = r.s.nextInterviewerID
	r.s.interviewers[interviewer.ID] = *interviewer
	return nil
}

func (r *memInterviewerRepo) FindByID(_ context.Context, id int64) (*domain.Interviewer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	interviewer, ok := r.s.interviewers[id]
	if !ok {
		return nil, fmt.Errorf("interviewer %d: %w", id, domain.ErrNotFound)
	}
	return &interviewer, nil
}

func (r *memInterviewerRepo) UpdateMaxWeekly(_ context.Context, id int64, maxWeekly int) (*domain.Interviewer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	interviewer, ok := r.s.interviewers[id]
	if !ok {
		return nil, fmt.Errorf("interviewer %d: %w", id, domain.ErrNotFound)
	}
	interviewer.MaxWeeklyInterviews = maxWeekly
	r.s.interviewers[id] = interviewer
	return &interviewer, nil
}

type memAvailabilityRepo struct {
	s *memStores
}

func (r *memAvailabilityRepo) ListByInterviewer(_ context.Context, interviewerID int64) ([]domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]domain.AvailabilityWindow(nil), r.s.windows[interviewerID]...), nil
}

func (r *memAvailabilityRepo) ReplaceForInterviewer(_ context.Context, interviewerID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	saved := make([]domain.AvailabilityWindow, 0, len(windows))
	for i, window := range windows {
		window.ID = int64(i + 1)
		window.InterviewerID = interviewerID
		saved = append(saved, window)
	}
	r.s.windows[interviewerID] = saved
	return append([]domain.AvailabilityWindow(nil), saved...), nil
}

type memSlotRepo struct {
	s *memStores
}

func (r *memSlotRepo) Insert(_ context.Context, slot *domain.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextSlotID++
	slot.ID = r.s.nextSlotID
	stored := *slot
	r.s.slots[slot.ID] = &stored
	return nil
}

func (r *memSlotRepo) FindByID(_ context.Context, id int64) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	slot, ok := r.s.slots[id]
	if !ok {
		return nil, fmt.Errorf("slot %d: %w", id, domain.ErrNotFound)
	}
	copied := *slot
	return &copied, nil
}

func (r *memSlotRepo) FindOverlapping(_ context.Context, interviewerID int64, start, end time.Time) ([]domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found []domain.Slot
	for _, slot := range r.s.slots {
		if slot.InterviewerID != interviewerID {
			continue
		}
		if !slot.StartTime.Before(start) && slot.StartTime.Before(end) {
			found = append(found, *slot)
		}
	}
	return found, nil
}

func (r *memSlotRepo) Save(_ context.Context, slot *domain.Slot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.slots[slot.ID]
	if !ok || current.Version != slot.Version {
		return fmt.Errorf("slot %d: %w", slot.ID, domain.ErrVersionConflict)
	}
	current.BookedCount = slot.BookedCount
	current.Version++
	slot.Version = current.Version
	return nil
}

func (r *memSlotRepo) ListPage(_ context.Context, filter repository.SlotPageFilter) ([]domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var slots []domain.Slot
	for _, slot := range r.s.slots {
		if filter.InterviewerID != 0 && slot.InterviewerID != filter.InterviewerID {
			continue
		}
		if slot.StartTime.Before(filter.From) || slot.StartTime.After(filter.To) {
			continue
		}
		if slot.ID <= filter.Cursor {
			continue
		}
		slots = append(slots, *slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	if len(slots) > filter.Limit {
		slots = slots[:filter.Limit]
	}
	return slots, nil
}

func (r *memSlotRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.slots)), nil
}

type memBookingRepo struct {
	s *memStores
}

func (r *memBookingRepo) Insert(_ context.Context, booking *domain.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.bookings {
		if existing.CandidateEmail == booking.CandidateEmail && existing.SlotID == booking.SlotID {
			return &domain.AlreadyBookedError{CandidateEmail: booking.CandidateEmail}
		}
	}
	booking.CreatedAt = time.Now()
	stored := *booking
	r.s.bookings[booking.ID] = &stored
	return nil
}

func (r *memBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	copied := *booking
	return &copied, nil
}

func (r *memBookingRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.bookings, id)
	return nil
}

func (r *memBookingRepo) UpdateSlotRef(_ context.Context, id string, slotID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking, ok := r.s.bookings[id]
	if !ok {
		return fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	booking.SlotID = slotID
	return nil
}

func (r *memBookingRepo) CountForInterviewerInRange(_ context.Context, interviewerID int64, from, to time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, booking := range r.s.bookings {
		if !booking.Confirmed {
			continue
		}
		slot, ok := r.s.slots[booking.SlotID]
		if !ok || slot.InterviewerID != interviewerID {
			continue
		}
		if !slot.StartTime.Before(from) && !slot.StartTime.After(to) {
			count++
		}
	}
	return count, nil
}

func (r *memBookingRepo) CountActiveForCandidateAfter(_ context.Context, candidateEmail string, after time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	count := 0
	for _, booking := range r.s.bookings {
		if booking.CandidateEmail != candidateEmail || !booking.Confirmed {
			continue
		}
		slot, ok := r.s.slots[booking.SlotID]
		if ok && slot.StartTime.After(after) {
			count++
		}
	}
	return count, nil
}

func (r *memBookingRepo) ListByCandidate(_ context.Context, candidateEmail string) ([]domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var bookings []domain.Booking
	for _, booking := range r.s.bookings {
		if booking.CandidateEmail == candidateEmail {
			bookings = append(bookings, *booking)
		}
	}
	r.sortBySlotStart(bookings)
	return bookings, nil
}

func (r *memBookingRepo) ListByInterviewer(_ context.Context, interviewerID int64) ([]domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var bookings []domain.Booking
	for _, booking := range r.s.bookings {
		slot, ok := r.s.slots[booking.SlotID]
		if ok && slot.InterviewerID == interviewerID {
			bookings = append(bookings, *booking)
		}
	}
	r.sortBySlotStart(bookings)
	return bookings, nil
}

func (r *memBookingRepo) sortBySlotStart(bookings []domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return r.s.slots[bookings[i].SlotID].StartTime.Before(r.s.slots[bookings[j].SlotID].StartTime)
	})
}
