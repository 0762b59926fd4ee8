package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"interview-scheduler/internal/domain"
)

type SlotPostgresRepository struct {
	execer Execer
}

func NewSlotPostgresRepository(execer Execer) *SlotPostgresRepository {
	return &SlotPostgresRepository{execer: execer}
}

func (r *SlotPostgresRepository) Insert(ctx context.Context, slot *domain.Slot) error {
	const query = `
INSERT INTO interview_slots (interviewer_id, start_time, end_time, booked_count, version)
VALUES ($1, $2, $3, $4, 0)
RETURNING id, version
`
	return r.execer.QueryRow(ctx, query,
		slot.InterviewerID, slot.StartTime, slot.EndTime, slot.BookedCount,
	).Scan(&slot.ID, &slot.Version)
}

func (r *SlotPostgresRepository) FindByID(ctx context.Context, id int64) (*domain.Slot, error) {
	const query = `
SELECT id, interviewer_id, start_time, end_time, booked_count, version
FROM interview_slots
WHERE id = $1
`
	var slot domain.Slot
	err := r.execer.QueryRow(ctx, query, id).Scan(
		&slot.ID, &slot.InterviewerID, &slot.StartTime, &slot.EndTime,
		&slot.BookedCount, &slot.Version,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("slot %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotPostgresRepository) FindOverlapping(ctx context.Context, interviewerID int64, start, end time.Time) ([]domain.Slot, error) {
	const query = `
SELECT id, interviewer_id, start_time, end_time, booked_count, version
FROM interview_slots
WHERE interviewer_id = $1 AND start_time >= $2 AND start_time < $3
ORDER BY start_time ASC
`
	rows, err := r.execer.Query(ctx, query, interviewerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSlots(rows)
}

// Save commits booked_count guarded by the version the slot was read at.
// A concurrent writer advancing the row first makes this a no-op update,
// reported as domain.ErrVersionConflict.
func (r *SlotPostgresRepository) Save(ctx context.Context, slot *domain.Slot) error {
	const query = `
UPDATE interview_slots
SET booked_count = $1, version = version + 1
WHERE id = $2 AND version = $3
`
	tag, err := r.execer.Exec(ctx, query, slot.BookedCount, slot.ID, slot.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("slot %d: %w", slot.ID, domain.ErrVersionConflict)
	}
	slot.Version++
	return nil
}

func (r *SlotPostgresRepository) ListPage(ctx context.Context, filter SlotPageFilter) ([]domain.Slot, error) {
	query := `
SELECT id, interviewer_id, start_time, end_time, booked_count, version
FROM interview_slots
WHERE start_time >= $1 AND start_time <= $2 AND id > $3
`
	args := []any{filter.From, filter.To, filter.Cursor}
	if filter.InterviewerID != 0 {
		query += ` AND interviewer_id = $4`
		args = append(args, filter.InterviewerID)
	}
	query += fmt.Sprintf(` ORDER BY id ASC LIMIT %d`, filter.Limit)

	rows, err := r.execer.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSlots(rows)
}

func (r *SlotPostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.execer.QueryRow(ctx, `SELECT count(*) FROM interview_slots`).Scan(&count)
	return count, err
}

func scanSlots(rows pgx.Rows) ([]domain.Slot, error) {
	var slots []domain.Slot
	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(
			&slot.ID, &slot.InterviewerID, &slot.StartTime, &slot.EndTime,
			&slot.BookedCount, &slot.Version,
		); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}
