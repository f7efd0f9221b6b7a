package services

import (
	"context"
	"errors"

	"disccount_backend/internal/models"
	"disccount_backend/internal/repositories"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type PinnedStoreService interface {
	List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.PinnedStoreResponse, error)
	// Replace swaps the user's whole set for req. Duplicates collapse.
	Replace(ctx context.Context, db *gorm.DB, userID string, req *dto.BulkPinnedStoresRequest) ([]*dto.PinnedStoreResponse, error)
}

type PinnedPlaceService interface {
	List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.PinnedPlaceResponse, error)
	Replace(ctx context.Context, db *gorm.DB, userID string, req *dto.BulkPinnedPlacesRequest) ([]*dto.PinnedPlaceResponse, error)
}

type pinnedStoreService struct {
	repo repositories.PinnedStoreRepository
}

func NewPinnedStoreService(repo repositories.PinnedStoreRepository) PinnedStoreService {
	return &pinnedStoreService{repo: repo}
}

func (s *pinnedStoreService) List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.PinnedStoreResponse, error) {
	pins, err := s.repo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toPinnedStoreResponses(pins), nil
}

func (s *pinnedStoreService) Replace(ctx context.Context, db *gorm.DB, userID string, req *dto.BulkPinnedStoresRequest) ([]*dto.PinnedStoreResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.repo.SoftDeleteAllByUser(tx, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	seen := make(map[string]struct{}, len(req.Stores))
	pins := make([]models.PinnedStore, 0, len(req.Stores))
	for _, st := range req.Stores {
		if _, dup := seen[st.StoreAPIID]; dup {
			continue
		}
		seen[st.StoreAPIID] = struct{}{}
		pins = append(pins, models.PinnedStore{UserID: userID, StoreAPIID: st.StoreAPIID, StoreName: st.StoreName})
	}

	if err := s.repo.CreateBatch(tx, pins); err != nil {
		return nil, handlePinError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toPinnedStoreResponses(pins), nil
}

type pinnedPlaceService struct {
	repo repositories.PinnedPlaceRepository
}

func NewPinnedPlaceService(repo repositories.PinnedPlaceRepository) PinnedPlaceService {
	return &pinnedPlaceService{repo: repo}
}

func (s *pinnedPlaceService) List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.PinnedPlaceResponse, error) {
	pins, err := s.repo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toPinnedPlaceResponses(pins), nil
}

func (s *pinnedPlaceService) Replace(ctx context.Context, db *gorm.DB, userID string, req *dto.BulkPinnedPlacesRequest) ([]*dto.PinnedPlaceResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.repo.DeleteAllByUser(tx, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	seen := make(map[string]struct{}, len(req.Places))
	pins := make([]models.PinnedPlace, 0, len(req.Places))
	for _, p := range req.Places {
		if _, dup := seen[p.PlaceAPIID]; dup {
			continue
		}
		seen[p.PlaceAPIID] = struct{}{}
		pins = append(pins, models.PinnedPlace{UserID: userID, PlaceAPIID: p.PlaceAPIID, PlaceName: p.PlaceName})
	}

	if err := s.repo.CreateBatch(tx, pins); err != nil {
		return nil, handlePinError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toPinnedPlaceResponses(pins), nil
}

func toPinnedStoreResponses(pins []models.PinnedStore) []*dto.PinnedStoreResponse {
	out := make([]*dto.PinnedStoreResponse, 0, len(pins))
	for i := range pins {
		out = append(out, dto.NewPinnedStoreResponse(&pins[i]))
	}
	return out
}

func toPinnedPlaceResponses(pins []models.PinnedPlace) []*dto.PinnedPlaceResponse {
	out := make([]*dto.PinnedPlaceResponse, 0, len(pins))
	for i := range pins {
		out = append(out, dto.NewPinnedPlaceResponse(&pins[i]))
	}
	return out
}

func handlePinError(err error) error {
	if errors.Is(err, repositories.ErrAlreadyExists) {
		return apperrors.ErrAlreadyExists(err)
	}
	return apperrors.InternalError(err)
}
