package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"interview-scheduler/internal/domain"
)

type InterviewerPostgresRepository struct {
	execer Execer
}

func NewInterviewerPostgresRepository(execer Execer) *InterviewerPostgresRepository {
	return &InterviewerPostgresRepository{execer: execer}
}

func (r *InterviewerPostgresRepository) Insert(ctx context.Context, interviewer *domain.Interviewer) error {
	const query = `
INSERT INTO interviewers (name, email, max_weekly_interviews)
VALUES ($1, $2, $3)
RETURNING id
`
	err := r.execer.QueryRow(ctx, query,
		interviewer.Name, interviewer.Email, interviewer.MaxWeeklyInterviews,
	).Scan(&interviewer.ID)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("interviewer email %s already registered: %w", interviewer.Email, domain.ErrInvalidInput)
	}
	return err
}

func (r *InterviewerPostgresRepository) FindByID(ctx context.Context, id int64) (*domain.Interviewer, error) {
	const query = `
SELECT id, name, email, max_weekly_interviews
FROM interviewers
WHERE id = $1
`
	var interviewer domain.Interviewer
	err := r.execer.QueryRow(ctx, query, id).Scan(
		&interviewer.ID, &interviewer.Name, &interviewer.Email, &interviewer.MaxWeeklyInterviews,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("interviewer %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &interviewer, nil
}

func (r *InterviewerPostgresRepository) UpdateMaxWeekly(ctx context.Context, id int64, maxWeekly int) (*domain.Interviewer, error) {
	const query = `
UPDATE interviewers
SET max_weekly_interviews = $1
WHERE id = $2
RETURNING id, name, email, max_weekly_interviews
`
	var interviewer domain.Interviewer
	err := r.execer.QueryRow(ctx, query, maxWeekly, id).Scan(
		&interviewer.ID, &interviewer.Name, &interviewer.Email, &interviewer.MaxWeeklyInterviews,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("interviewer %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &interviewer, nil
}
