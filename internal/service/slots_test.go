package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"interview-scheduler/internal/domain"
	"interview-scheduler/internal/repository"
)

func newSlotFixture(t *testing.T) (*memStores, *SlotService) {
	t.Helper()
	stores := newMemStores()
	return stores, NewSlotService(stores.txManager(), zap.NewNop().Sugar(), DefaultSlotCapacity)
}

// monday is 2024-04-01, a Monday.
var monday = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func TestGenerateSplitsWindowByDuration(t *testing.T) {
	stores, svc := newSlotFixture(t)
	interviewerID := stores.addInterviewer("Ada", "ada@example.com", 10)
	stores.addWindow(interviewerID, int(time.Monday), "09:00", "11:00", 30)

	created, err := svc.GenerateForInterviewer(context.Background(), interviewerID, monday, monday)
	require.NoError(t, err)
	require.Equal(t, 4, created)

	page, err := svc.ListPage(context.Background(), repository.SlotPageFilter{
		InterviewerID: interviewerID,
		From:          monday,
		To:            monday.AddDate(0, 0, 1),
		Limit:         10,
	}, false)
	require.NoError(t, err)
	require.Len(t, page.Items, 4)

	require.Equal(t, monday.Add(9*time.Hour), page.Items[0].StartTime)
	require.Equal(t, monday.Add(9*time.Hour+30*time.Minute), page.Items[0].EndTime)
	require.Equal(t, monday.Add(10*time.Hour+30*time.Minute), page.Items[3].StartTime)
	require.Equal(t, monday.Add(11*time.Hour), page.Items[3].EndTime)
	for _, item := range page.Items {
		require.Equal(t, 1, item.AvailableCapacity)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	stores, svc := newSlotFixture(t)
	interviewerID := stores.addInterviewer("Ada", "ada@example.com", 10)
	stores.addWindow(interviewerID, int(time.Monday), "09:00", "11:00", 30)

	first, err := svc.GenerateForInterviewer(context.Background(), interviewerID, monday, monday)
	require.NoError(t, err)
	require.Equal(t, 4, first)

	second, err := svc.GenerateForInterviewer(context.Background(), interviewerID, monday, monday)
	require.NoError(t, err)
	require.Equal(t, 0, second)
}

func TestGenerateDropsTrailingRemainder(t *testing.T) {
	stores, svc := newSlotFixture(t)
	interviewerID := stores.addInterviewer("Ada", "ada@example.com", 10)
	stores.addWindow(interviewerID, int(time.Monday), "09:00", "10:45", 30)

	created, err := svc.GenerateForInterviewer(context.Background(), interviewerID, monday, monday)
	require.NoError(t, err)
	require.Equal(t, 3, created)
}

func TestGenerateSkipsDaysWithoutWindows(t *testing.T) {
	stores, svc := newSlotFixture(t)
	interviewerID := stores.addInterviewer("Ada", "ada@example.com", 10)
	stores.addWindow(interviewerID, int(time.Wednesday), "14:00", "15:00", 60)

	// Monday through Sunday covers the Wednesday window exactly once.
	created, err := svc.GenerateForInterviewer(context.Background(), interviewerID, monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)
	require.Equal(t, 1, created)

	slot := stores.slotByID(1)
	require.Equal(t, time.Wednesday, slot.StartTime.Weekday())
	require.Equal(t, 14, slot.StartTime.Hour())
}

func TestGenerateNoWindows(t *testing.T) {
	stores, svc := newSlotFixture(t)
	interviewerID := stores.addInterviewer("Ada", "ada@example.com", 10)

	created, err := svc.GenerateForInterviewer(context.Background(), interviewerID, monday, monday.AddDate(0, 0, 13))
	require.NoError(t, err)
	require.Equal(t, 0, created)
}

func TestGenerateUnknownInterviewer(t *testing.T) {
	_, svc := newSlotFixture(t)

	_, err := svc.GenerateForInterviewer(context.Background(), 42, monday, monday)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListPageCursor(t *testing.T) {
	stores, svc := newSlotFixture(t)
	interviewerID := stores.addInterviewer("Ada", "ada@example.com", 10)
	for i := 0; i < 5; i++ {
		stores.addSlot(interviewerID, monday.Add(time.Duration(9+i)*time.Hour), 60, 0)
	}

	filter := repository.SlotPageFilter{
		InterviewerID: interviewerID,
		From:          monday,
		To:            monday.AddDate(0, 0, 1),
		Limit:         2,
	}

	page, err := svc.ListPage(context.Background(), filter, false)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, int64(2), page.NextCursor)
	require.True(t, page.HasMore)

	filter.Cursor = page.NextCursor
	page, err = svc.ListPage(context.Background(), filter, false)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, int64(3), page.Items[0].SlotID)
	require.Equal(t, int64(4), page.Items[1].SlotID)
	require.True(t, page.HasMore)

	filter.Cursor = page.NextCursor
	page, err = svc.ListPage(context.Background(), filter, false)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.False(t, page.HasMore)
}

func TestListPageHideFull(t *testing.T) {
	stores, svc := newSlotFixture(t)
	interviewerID := stores.addInterviewer("Ada", "ada@example.com", 10)
	stores.addSlot(interviewerID, monday.Add(9*time.Hour), 60, 1)
	freeID := stores.addSlot(interviewerID, monday.Add(10*time.Hour), 60, 0)

	page, err := svc.ListPage(context.Background(), repository.SlotPageFilter{
		InterviewerID: interviewerID,
		From:          monday,
		To:            monday.AddDate(0, 0, 1),
		Limit:         10,
	}, true)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, freeID, page.Items[0].SlotID)
}

func TestGetSlotFloorsCapacityAtZero(t *testing.T) {
	stores, svc := newSlotFixture(t)
	interviewerID := stores.addInterviewer("Ada", "ada@example.com", 10)
	slotID := stores.addSlot(interviewerID, monday.Add(9*time.Hour), 60, 2)

	view, err := svc.GetSlot(context.Background(), slotID)
	require.NoError(t, err)
	require.Equal(t, 0, view.AvailableCapacity)
}

func TestGetSlotNotFound(t *testing.T) {
	_, svc := newSlotFixture(t)

	_, err := svc.GetSlot(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParseHHMM(t *testing.T) {
	for _, tc := range []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{in: "09:00", hour: 9, ok: true},
		{in: "23:45", hour: 23, minute: 45, ok: true},
		{in: "09:00:00", hour: 9, ok: true},
		{in: "9:00", ok: false},
		{in: "25:00", ok: false},
		{in: "", ok: false},
	} {
		t.Run(tc.in, func(t *testing.T) {
			parsed, err := parseHHMM(tc.in)
			if !tc.ok {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.hour, parsed.Hour())
			require.Equal(t, tc.minute, parsed.Minute())
		})
	}
}
