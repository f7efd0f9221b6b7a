package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"disccount_backend/internal/models"
	"disccount_backend/internal/repositories"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ShoppingListService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateShoppingListRequest) (*dto.ShoppingListResponse, error)
	ListMine(ctx context.Context, db *gorm.DB, userID string) ([]*dto.ShoppingListResponse, error)
	ListPublic(ctx context.Context, db *gorm.DB) ([]*dto.ShoppingListResponse, error)
	Get(ctx context.Context, db *gorm.DB, userID, listID string) (*dto.ShoppingListResponse, error)
	Update(ctx context.Context, db *gorm.DB, userID, listID string, req *dto.UpdateShoppingListRequest) (*dto.ShoppingListResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID, listID string) error
}

type shoppingListService struct {
	listRepo    repositories.ShoppingListRepository
	userService UserService
}

func NewShoppingListService(listRepo repositories.ShoppingListRepository, userService UserService) ShoppingListService {
	return &shoppingListService{listRepo: listRepo, userService: userService}
}

func (s *shoppingListService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateShoppingListRequest) (*dto.ShoppingListResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	list := &models.ShoppingList{
		UserID:   userID,
		Title:    strings.TrimSpace(req.Title),
		AIPrompt: req.AIPrompt,
		AIAnswer: req.AIAnswer,
	}
	if req.IsPublic != nil {
		list.IsPublic = *req.IsPublic
	}

	if err := s.listRepo.Create(tx, list); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if hasText(req.AIPrompt) {
		if err := s.userService.RecordAIPrompt(ctx, tx, userID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewShoppingListResponse(list), nil
}

func (s *shoppingListService) ListMine(ctx context.Context, db *gorm.DB, userID string) ([]*dto.ShoppingListResponse, error) {
	lists, err := s.listRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toShoppingListResponses(lists), nil
}

func (s *shoppingListService) ListPublic(ctx context.Context, db *gorm.DB) ([]*dto.ShoppingListResponse, error) {
	lists, err := s.listRepo.FindPublic(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toShoppingListResponses(lists), nil
}

func (s *shoppingListService) Get(ctx context.Context, db *gorm.DB, userID, listID string) (*dto.ShoppingListResponse, error) {
	list, err := s.listRepo.FindByID(db, listID)
	if err != nil {
		return nil, handleShoppingListError(err)
	}
	if list.UserID != userID && !list.IsPublic {
		return nil, apperrors.ErrShoppingListNotFound
	}
	return dto.NewShoppingListResponse(list), nil
}

func (s *shoppingListService) Update(ctx context.Context, db *gorm.DB, userID, listID string, req *dto.UpdateShoppingListRequest) (*dto.ShoppingListResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	list, err := s.listRepo.FindByID(tx, listID)
	if err != nil {
		return nil, handleShoppingListError(err)
	}
	if list.UserID != userID {
		return nil, apperrors.ErrShoppingListNotFound
	}

	if req.Title != nil {
		list.Title = strings.TrimSpace(*req.Title)
	}
	if req.IsPublic != nil {
		list.IsPublic = *req.IsPublic
	}
	if req.AIAnswer != nil {
		list.AIAnswer = req.AIAnswer
	}
	if req.AIPrompt != nil {
		list.AIPrompt = req.AIPrompt
		if hasText(req.AIPrompt) {
			if err := s.userService.RecordAIPrompt(ctx, tx, userID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.listRepo.Update(tx, list); err != nil {
		return nil, handleShoppingListError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	list.UpdatedAt = time.Now()
	return dto.NewShoppingListResponse(list), nil
}

func (s *shoppingListService) Delete(ctx context.Context, db *gorm.DB, userID, listID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.listRepo.SoftDelete(tx, listID, userID); err != nil {
		return handleShoppingListError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func toShoppingListResponses(lists []models.ShoppingList) []*dto.ShoppingListResponse {
	out := make([]*dto.ShoppingListResponse, 0, len(lists))
	for i := range lists {
		out = append(out, dto.NewShoppingListResponse(&lists[i]))
	}
	return out
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

func handleShoppingListError(err error) error {
	if errors.Is(err, repositories.ErrShoppingListNotFound) {
		return apperrors.ErrShoppingListNotFound
	}
	return apperrors.InternalError(err)
}
