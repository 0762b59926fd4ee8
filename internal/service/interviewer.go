package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"interview-scheduler/internal/domain"
	"interview-scheduler/internal/repository"
)

type InterviewerService struct {
	txManager repository.TxManager
	log       *zap.SugaredLogger
}

func NewInterviewerService(txManager repository.TxManager, log *zap.SugaredLogger) *InterviewerService {
	return &InterviewerService{txManager: txManager, log: log.Named("interviewers")}
}

func (s *InterviewerService) Create(ctx context.Context, name, email string, maxWeekly int) (*domain.Interviewer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required: %w", domain.ErrInvalidInput)
	}
	if maxWeekly < 1 {
		return nil, fmt.Errorf("max_weekly_interviews must be positive: %w", domain.ErrInvalidInput)
	}

	interviewer := &domain.Interviewer{Name: name, Email: email, MaxWeeklyInterviews: maxWeekly}
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		return repos.Interviewers.Insert(ctx, interviewer)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("interviewer created", "interviewer_id", interviewer.ID, "email", email)
	return interviewer, nil
}

func (s *InterviewerService) Get(ctx context.Context, id int64) (*domain.Interviewer, error) {
	var interviewer *domain.Interviewer
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		interviewer, err = repos.Interviewers.FindByID(ctx, id)
		return err
	})
	return interviewer, err
}

func (s *InterviewerService) UpdateMaxWeekly(ctx context.Context, id int64, maxWeekly int) (*domain.Interviewer, error) {
	if maxWeekly < 1 {
		return nil, fmt.Errorf("max_weekly_interviews must be positive: %w", domain.ErrInvalidInput)
	}

	var interviewer *domain.Interviewer
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		var err error
		interviewer, err = repos.Interviewers.UpdateMaxWeekly(ctx, id, maxWeekly)
		return err
	})
	return interviewer, err
}
