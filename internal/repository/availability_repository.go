package repository

import (
	"context"

	"interview-scheduler/internal/domain"
)

type AvailabilityPostgresRepository struct {
	execer Execer
}

func NewAvailabilityPostgresRepository(execer Execer) *AvailabilityPostgresRepository {
	return &AvailabilityPostgresRepository{execer: execer}
}

func (r *AvailabilityPostgresRepository) ListByInterviewer(ctx context.Context, interviewerID int64) ([]domain.AvailabilityWindow, error) {
	const query = `
SELECT id, interviewer_id, day_of_week, start_time, end_time, slot_duration_minutes
FROM availability_windows
WHERE interviewer_id = $1
ORDER BY day_of_week, start_time
`
	rows, err := r.execer.Query(ctx, query, interviewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []domain.AvailabilityWindow
	for rows.Next() {
		var window domain.AvailabilityWindow
		if err := rows.Scan(
			&window.ID, &window.InterviewerID, &window.DayOfWeek,
			&window.StartTime, &window.EndTime, &window.DurationMins,
		); err != nil {
			return nil, err
		}
		windows = append(windows, window)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *AvailabilityPostgresRepository) ReplaceForInterviewer(ctx context.Context, interviewerID int64, windows []domain.AvailabilityWindow) ([]domain.AvailabilityWindow, error) {
	if _, err := r.execer.Exec(ctx, `DELETE FROM availability_windows WHERE interviewer_id = $1`, interviewerID); err != nil {
		return nil, err
	}

	const query = `
INSERT INTO availability_windows (interviewer_id, day_of_week, start_time, end_time, slot_duration_minutes)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	saved := make([]domain.AvailabilityWindow, 0, len(windows))
	for _, window := range windows {
		window.InterviewerID = interviewerID
		if err := r.execer.QueryRow(ctx, query,
			interviewerID, window.DayOfWeek, window.StartTime, window.EndTime, window.DurationMins,
		).Scan(&window.ID); err != nil {
			return nil, err
		}
		saved = append(saved, window)
	}
	return saved, nil
}
