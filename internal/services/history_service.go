package services

import (
	"context"

	"poolride/internal/apperrors"
	"poolride/internal/models"
	"poolride/internal/repositories/interfaces"
)

type HistoryService interface {
	// GetHistory returns the caller's ride history, newest first.
	GetHistory(ctx context.Context, subject string) ([]*models.RideHistory, error)
}

type historyService struct {
	historyRepo interfaces.RideHistoryRepository
	userRepo    interfaces.UserRepository
}

func NewHistoryService(historyRepo interfaces.RideHistoryRepository, userRepo interfaces.UserRepository) HistoryService {
	return &historyService{
		historyRepo: historyRepo,
		userRepo:    userRepo,
	}
}

func (s *historyService) GetHistory(ctx context.Context, subject string) ([]*models.RideHistory, error) {
	user, err := resolveSubject(ctx, s.userRepo, subject)
	if err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if entries == nil {
		entries = []*models.RideHistory{}
	}
	return entries, nil
}
