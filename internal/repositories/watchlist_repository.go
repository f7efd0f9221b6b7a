package repositories

import (
	"errors"
	"time"

	"disccount_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrWatchlistItemNotFound = errors.New("watchlist item not found")
	ErrWatchlistDuplicate    = errors.New("product already in watchlist")
)

type WatchlistRepository interface {
	Create(db *gorm.DB, item *models.WatchlistItem) error
	FindByUser(db *gorm.DB, userID string) ([]models.WatchlistItem, error)
	FindByProduct(db *gorm.DB, userID, productAPIID string) (*models.WatchlistItem, error)
	ExistsByProduct(db *gorm.DB, userID, productAPIID string) (bool, error)
	SoftDelete(db *gorm.DB, id, userID string) error
	MarkNotified(db *gorm.DB, id, userID string, at time.Time) error
}

type watchlistRepository struct{}

func NewWatchlistRepository() WatchlistRepository {
	return &watchlistRepository{}
}

func (r *watchlistRepository) Create(db *gorm.DB, item *models.WatchlistItem) error {
	return translateWriteError(db.Create(item).Error, ErrWatchlistDuplicate)
}

func (r *watchlistRepository) FindByUser(db *gorm.DB, userID string) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *watchlistRepository) FindByProduct(db *gorm.DB, userID, productAPIID string) (*models.WatchlistItem, error) {
	var item models.WatchlistItem
	err := db.Where("user_id = ? AND product_api_id = ?", userID, productAPIID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWatchlistItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *watchlistRepository) ExistsByProduct(db *gorm.DB, userID, productAPIID string) (bool, error) {
	var count int64
	err := db.Model(&models.WatchlistItem{}).
		Where("user_id = ? AND product_api_id = ?", userID, productAPIID).
		Count(&count).Error
	return count > 0, err
}

func (r *watchlistRepository) SoftDelete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.WatchlistItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWatchlistItemNotFound
	}
	return nil
}

func (r *watchlistRepository) MarkNotified(db *gorm.DB, id, userID string, at time.Time) error {
	result := db.Model(&models.WatchlistItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumns(map[string]interface{}{"last_notified_at": at, "updated_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWatchlistItemNotFound
	}
	return nil
}
