package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"interview-scheduler/internal/domain"
)

const uniqueViolation = "23505"

type BookingPostgresRepository struct {
	execer Execer
}

func NewBookingPostgresRepository(execer Execer) *BookingPostgresRepository {
	return &BookingPostgresRepository{execer: execer}
}

func (r *BookingPostgresRepository) Insert(ctx context.Context, booking *domain.Booking) error {
	const query = `
INSERT INTO bookings (id, slot_id, candidate_name, candidate_email, confirmed, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING created_at
`
	err := r.execer.QueryRow(ctx, query,
		booking.ID, booking.SlotID, booking.CandidateName, booking.CandidateEmail, booking.Confirmed,
	).Scan(&booking.CreatedAt)

	// uk_candidate_slot backstops the coordinator's already-booked check.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &domain.AlreadyBookedError{CandidateEmail: booking.CandidateEmail}
	}
	return err
}

func (r *BookingPostgresRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	const query = `
SELECT id, slot_id, candidate_name, candidate_email, confirmed, created_at
FROM bookings
WHERE id = $1
`
	var booking domain.Booking
	err := r.execer.QueryRow(ctx, query, id).Scan(
		&booking.ID, &booking.SlotID, &booking.CandidateName,
		&booking.CandidateEmail, &booking.Confirmed, &booking.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingPostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.execer.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *BookingPostgresRepository) UpdateSlotRef(ctx context.Context, id string, slotID int64) error {
	tag, err := r.execer.Exec(ctx, `UPDATE bookings SET slot_id = $1 WHERE id = $2`, slotID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *BookingPostgresRepository) CountForInterviewerInRange(ctx context.Context, interviewerID int64, from, to time.Time) (int, error) {
	const query = `
SELECT count(*)
FROM bookings b
JOIN interview_slots s ON s.id = b.slot_id
WHERE s.interviewer_id = $1 AND b.confirmed AND s.start_time BETWEEN $2 AND $3
`
	var count int
	err := r.execer.QueryRow(ctx, query, interviewerID, from, to).Scan(&count)
	return count, err
}

func (r *BookingPostgresRepository) CountActiveForCandidateAfter(ctx context.Context, candidateEmail string, after time.Time) (int, error) {
	const query = `
SELECT count(*)
FROM bookings b
JOIN interview_slots s ON s.id = b.slot_id
WHERE b.candidate_email = $1 AND b.confirmed AND s.start_time > $2
`
	var count int
	err := r.execer.QueryRow(ctx, query, candidateEmail, after).Scan(&count)
	return count, err
}

func (r *BookingPostgresRepository) ListByCandidate(ctx context.Context, candidateEmail string) ([]domain.Booking, error) {
	const query = `
SELECT b.id, b.slot_id, b.candidate_name, b.candidate_email, b.confirmed, b.created_at
FROM bookings b
JOIN interview_slots s ON s.id = b.slot_id
WHERE b.candidate_email = $1
ORDER BY s.start_time ASC
`
	rows, err := r.execer.Query(ctx, query, candidateEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *BookingPostgresRepository) ListByInterviewer(ctx context.Context, interviewerID int64) ([]domain.Booking, error) {
	const query = `
SELECT b.id, b.slot_id, b.candidate_name, b.candidate_email, b.confirmed, b.created_at
FROM bookings b
JOIN interview_slots s ON s.id = b.slot_id
WHERE s.interviewer_id = $1
ORDER BY s.start_time ASC
`
	rows, err := r.execer.Query(ctx, query, interviewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var booking domain.Booking
		if err := rows.Scan(
			&booking.ID, &booking.SlotID, &booking.CandidateName,
			&booking.CandidateEmail, &booking.Confirmed, &booking.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
