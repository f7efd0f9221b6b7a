package repositories

import (
	"errors"
	"time"

	"disccount_backend/internal/models"

	"gorm.io/gorm"
)

var ErrShoppingListItemNotFound = errors.New("shopping list item not found")

type ShoppingListItemRepository interface {
	Create(db *gorm.DB, item *models.ShoppingListItem) error
	// FindInList returns the item only when it belongs to listID.
	FindInList(db *gorm.DB, listID, itemID string) (*models.ShoppingListItem, error)
	FindByUser(db *gorm.DB, userID string) ([]models.ShoppingListItem, error)
	Update(db *gorm.DB, item *models.ShoppingListItem) error
	SoftDelete(db *gorm.DB, listID, itemID string) error
}

type shoppingListItemRepository struct{}

func NewShoppingListItemRepository() ShoppingListItemRepository {
	return &shoppingListItemRepository{}
}

func (r *shoppingListItemRepository) Create(db *gorm.DB, item *models.ShoppingListItem) error {
	return db.Omit("ShoppingList").Create(item).Error
}

func (r *shoppingListItemRepository) FindInList(db *gorm.DB, listID, itemID string) (*models.ShoppingListItem, error) {
	var item models.ShoppingListItem
	err := db.Where("id = ? AND shopping_list_id = ?", itemID, listID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingListItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByUser returns active items of every active list owned by userID.
func (r *shoppingListItemRepository) FindByUser(db *gorm.DB, userID string) ([]models.ShoppingListItem, error) {
	var items []models.ShoppingListItem
	err := db.Joins("JOIN shopping_lists ON shopping_lists.id = shopping_list_items.shopping_list_id").
		Where("shopping_lists.user_id = ? AND shopping_lists.deleted_at IS NULL", userID).
		Order("shopping_list_items.created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *shoppingListItemRepository) Update(db *gorm.DB, item *models.ShoppingListItem) error {
	result := db.Model(item).Updates(map[string]interface{}{
		"product_api_id": item.ProductAPIID,
		"product_name":   item.ProductName,
		"amount":         item.Amount,
		"is_checked":     item.IsChecked,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShoppingListItemNotFound
	}
	return nil
}

func (r *shoppingListItemRepository) SoftDelete(db *gorm.DB, listID, itemID string) error {
	result := db.Where("id = ? AND shopping_list_id = ?", itemID, listID).Delete(&models.ShoppingListItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShoppingListItemNotFound
	}
	return nil
}
