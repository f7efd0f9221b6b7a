package services

import (
	"context"
	"errors"
	"time"

	"disccount_backend/internal/models"
	"disccount_backend/internal/repositories"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type WatchlistService interface {
	Add(ctx context.Context, db *gorm.DB, userID string, req *dto.AddWatchlistItemRequest) (*dto.WatchlistItemResponse, error)
	List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.WatchlistItemResponse, error)
	GetByProduct(ctx context.Context, db *gorm.DB, userID, productAPIID string) (*dto.WatchlistItemResponse, error)
	Remove(ctx context.Context, db *gorm.DB, userID, itemID string) error
	MarkNotified(ctx context.Context, db *gorm.DB, userID, itemID string) error
}

type watchlistService struct {
	repo repositories.WatchlistRepository
	now  func() time.Time
}

func NewWatchlistService(repo repositories.WatchlistRepository) WatchlistService {
	return &watchlistService{repo: repo, now: time.Now}
}

func (s *watchlistService) Add(ctx context.Context, db *gorm.DB, userID string, req *dto.AddWatchlistItemRequest) (*dto.WatchlistItemResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	exists, err := s.repo.ExistsByProduct(tx, userID, req.ProductAPIID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrWatchlistDuplicate
	}

	item := &models.WatchlistItem{
		UserID:       userID,
		ProductAPIID: req.ProductAPIID,
		ProductName:  req.ProductName,
	}
	if err := s.repo.Create(tx, item); err != nil {
		return nil, handleWatchlistError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewWatchlistItemResponse(item), nil
}

func (s *watchlistService) List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.WatchlistItemResponse, error) {
	items, err := s.repo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.WatchlistItemResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewWatchlistItemResponse(&items[i]))
	}
	return out, nil
}

func (s *watchlistService) GetByProduct(ctx context.Context, db *gorm.DB, userID, productAPIID string) (*dto.WatchlistItemResponse, error) {
	item, err := s.repo.FindByProduct(db, userID, productAPIID)
	if err != nil {
		return nil, handleWatchlistError(err)
	}
	return dto.NewWatchlistItemResponse(item), nil
}

func (s *watchlistService) Remove(ctx context.Context, db *gorm.DB, userID, itemID string) error {
	if err := s.repo.SoftDelete(db, itemID, userID); err != nil {
		return handleWatchlistError(err)
	}
	return nil
}

func (s *watchlistService) MarkNotified(ctx context.Context, db *gorm.DB, userID, itemID string) error {
	if err := s.repo.MarkNotified(db, itemID, userID, s.now()); err != nil {
		return handleWatchlistError(err)
	}
	return nil
}

func handleWatchlistError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrWatchlistItemNotFound):
		return apperrors.ErrWatchlistItemNotFound
	case errors.Is(err, repositories.ErrWatchlistDuplicate):
		return apperrors.ErrWatchlistDuplicate
	}
	return apperrors.InternalError(err)
}
