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

type ShoppingListItemService interface {
	Add(ctx context.Context, db *gorm.DB, userID, listID string, req *dto.CreateShoppingListItemRequest) (*dto.ShoppingListItemResponse, error)
	Update(ctx context.Context, db *gorm.DB, userID, listID, itemID string, req *dto.UpdateShoppingListItemRequest) (*dto.ShoppingListItemResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID, listID, itemID string) error
	ListMine(ctx context.Context, db *gorm.DB, userID string) ([]*dto.ShoppingListItemResponse, error)
}

type shoppingListItemService struct {
	listRepo repositories.ShoppingListRepository
	itemRepo repositories.ShoppingListItemRepository
	now      func() time.Time
}

func NewShoppingListItemService(listRepo repositories.ShoppingListRepository, itemRepo repositories.ShoppingListItemRepository) ShoppingListItemService {
	return &shoppingListItemService{listRepo: listRepo, itemRepo: itemRepo, now: time.Now}
}

func (s *shoppingListItemService) Add(ctx context.Context, db *gorm.DB, userID, listID string, req *dto.CreateShoppingListItemRequest) (*dto.ShoppingListItemResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.writableList(tx, userID, listID); err != nil {
		return nil, err
	}

	item := &models.ShoppingListItem{
		ShoppingListID: listID,
		ProductAPIID:   req.ProductAPIID,
		ProductName:    req.ProductName,
		Amount:         1,
	}
	if req.Amount != nil {
		item.Amount = *req.Amount
	}
	if req.IsChecked != nil {
		item.IsChecked = *req.IsChecked
	}

	if err := s.itemRepo.Create(tx, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.listRepo.Touch(tx, listID, s.now()); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewShoppingListItemResponse(item), nil
}

func (s *shoppingListItemService) Update(ctx context.Context, db *gorm.DB, userID, listID, itemID string, req *dto.UpdateShoppingListItemRequest) (*dto.ShoppingListItemResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.writableList(tx, userID, listID); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.FindInList(tx, listID, itemID)
	if err != nil {
		return nil, handleShoppingListItemError(err)
	}
	if req.ProductAPIID != nil {
		item.ProductAPIID = *req.ProductAPIID
	}
	if req.ProductName != nil {
		item.ProductName = *req.ProductName
	}
	if req.Amount != nil {
		item.Amount = *req.Amount
	}
	if req.IsChecked != nil {
		item.IsChecked = *req.IsChecked
	}

	if err := s.itemRepo.Update(tx, item); err != nil {
		return nil, handleShoppingListItemError(err)
	}
	if err := s.listRepo.Touch(tx, listID, s.now()); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewShoppingListItemResponse(item), nil
}

func (s *shoppingListItemService) Delete(ctx context.Context, db *gorm.DB, userID, listID, itemID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.writableList(tx, userID, listID); err != nil {
		return err
	}
	if err := s.itemRepo.SoftDelete(tx, listID, itemID); err != nil {
		return handleShoppingListItemError(err)
	}
	if err := s.listRepo.Touch(tx, listID, s.now()); err != nil {
		return apperrors.InternalError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *shoppingListItemService) ListMine(ctx context.Context, db *gorm.DB, userID string) ([]*dto.ShoppingListItemResponse, error) {
	items, err := s.itemRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.ShoppingListItemResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewShoppingListItemResponse(&items[i]))
	}
	return out, nil
}

// writableList returns the list when the user owns it or it is public.
func (s *shoppingListItemService) writableList(tx *gorm.DB, userID, listID string) (*models.ShoppingList, error) {
	list, err := s.listRepo.FindByID(tx, listID)
	if err != nil {
		return nil, handleShoppingListError(err)
	}
	if list.UserID != userID && !list.IsPublic {
		return nil, apperrors.ErrShoppingListNotFound
	}
	return list, nil
}

func handleShoppingListItemError(err error) error {
	if errors.Is(err, repositories.ErrShoppingListItemNotFound) {
		return apperrors.ErrShoppingListItemNotFound
	}
	return apperrors.InternalError(err)
}
