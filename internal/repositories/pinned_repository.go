package repositories

import (
	"disccount_backend/internal/models"

	"gorm.io/gorm"
)

type PinnedStoreRepository interface {
	FindByUser(db *gorm.DB, userID string) ([]models.PinnedStore, error)
	// SoftDeleteAllByUser tombstones every active pin of the user.
	SoftDeleteAllByUser(db *gorm.DB, userID string) error
	CreateBatch(db *gorm.DB, pins []models.PinnedStore) error
}

type PinnedPlaceRepository interface {
	FindByUser(db *gorm.DB, userID string) ([]models.PinnedPlace, error)
	// DeleteAllByUser removes rows physically.
	DeleteAllByUser(db *gorm.DB, userID string) error
	CreateBatch(db *gorm.DB, pins []models.PinnedPlace) error
}

type pinnedStoreRepository struct{}

func NewPinnedStoreRepository() PinnedStoreRepository {
	return &pinnedStoreRepository{}
}

func (r *pinnedStoreRepository) FindByUser(db *gorm.DB, userID string) ([]models.PinnedStore, error) {
	var pins []models.PinnedStore
	err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&pins).Error
	return pins, err
}

func (r *pinnedStoreRepository) SoftDeleteAllByUser(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.PinnedStore{}).Error
}

func (r *pinnedStoreRepository) CreateBatch(db *gorm.DB, pins []models.PinnedStore) error {
	if len(pins) == 0 {
		return nil
	}
	return translateWriteError(db.Create(&pins).Error, ErrAlreadyExists)
}

type pinnedPlaceRepository struct{}

func NewPinnedPlaceRepository() PinnedPlaceRepository {
	return &pinnedPlaceRepository{}
}

func (r *pinnedPlaceRepository) FindByUser(db *gorm.DB, userID string) ([]models.PinnedPlace, error) {
	var pins []models.PinnedPlace
	err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&pins).Error
	return pins, err
}

func (r *pinnedPlaceRepository) DeleteAllByUser(db *gorm.DB, userID string) error {
	return db.Unscoped().Where("user_id = ?", userID).Delete(&models.PinnedPlace{}).Error
}

func (r *pinnedPlaceRepository) CreateBatch(db *gorm.DB, pins []models.PinnedPlace) error {
	if len(pins) == 0 {
		return nil
	}
	return translateWriteError(db.Create(&pins).Error, ErrAlreadyExists)
}
