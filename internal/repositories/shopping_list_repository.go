package repositories

import (
	"errors"
	"time"

	"disccount_backend/internal/models"

	"gorm.io/gorm"
)

var ErrShoppingListNotFound = errors.New("shopping list not found")

type ShoppingListRepository interface {
	Create(db *gorm.DB, list *models.ShoppingList) error
	FindByID(db *gorm.DB, id string) (*models.ShoppingList, error)
	FindByUser(db *gorm.DB, userID string) ([]models.ShoppingList, error)
	FindPublic(db *gorm.DB) ([]models.ShoppingList, error)
	Update(db *gorm.DB, list *models.ShoppingList) error
	Touch(db *gorm.DB, id string, at time.Time) error
	SoftDelete(db *gorm.DB, id, userID string) error
}

type shoppingListRepository struct{}

func NewShoppingListRepository() ShoppingListRepository {
	return &shoppingListRepository{}
}

func (r *shoppingListRepository) Create(db *gorm.DB, list *models.ShoppingList) error {
	return db.Omit("Items").Create(list).Error
}

// FindByID loads the list with its active items.
func (r *shoppingListRepository) FindByID(db *gorm.DB, id string) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := db.Preload("Items", orderItems).First(&list, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShoppingListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r *shoppingListRepository) FindByUser(db *gorm.DB, userID string) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	err := db.Preload("Items", orderItems).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&lists).Error
	return lists, err
}

func (r *shoppingListRepository) FindPublic(db *gorm.DB) ([]models.ShoppingList, error) {
	var lists []models.ShoppingList
	err := db.Preload("Items", orderItems).
		Where("is_public = ?", true).
		Order("updated_at DESC").
		Find(&lists).Error
	return lists, err
}

func (r *shoppingListRepository) Update(db *gorm.DB, list *models.ShoppingList) error {
	result := db.Model(list).Updates(map[string]interface{}{
		"title":      list.Title,
		"is_public":  list.IsPublic,
		"ai_prompt":  list.AIPrompt,
		"ai_answer":  list.AIAnswer,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShoppingListNotFound
	}
	return nil
}

// Touch bumps updated_at after an item of the list changed.
func (r *shoppingListRepository) Touch(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.ShoppingList{}).Where("id = ?", id).UpdateColumn("updated_at", at).Error
}

func (r *shoppingListRepository) SoftDelete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.ShoppingList{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShoppingListNotFound
	}
	return nil
}

func orderItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}
