package repositories

import (
	"errors"
	"time"

	"disccount_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDigitalCardNotFound = errors.New("digital card not found")

type DigitalCardRepository interface {
	Create(db *gorm.DB, card *models.DigitalCard) error
	FindByIDAndUser(db *gorm.DB, id, userID string) (*models.DigitalCard, error)
	FindByUser(db *gorm.DB, userID string) ([]models.DigitalCard, error)
	Update(db *gorm.DB, card *models.DigitalCard) error
	SoftDelete(db *gorm.DB, id, userID string) error
}

type digitalCardRepository struct{}

func NewDigitalCardRepository() DigitalCardRepository {
	return &digitalCardRepository{}
}

func (r *digitalCardRepository) Create(db *gorm.DB, card *models.DigitalCard) error {
	return db.Create(card).Error
}

func (r *digitalCardRepository) FindByIDAndUser(db *gorm.DB, id, userID string) (*models.DigitalCard, error) {
	var card models.DigitalCard
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDigitalCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

func (r *digitalCardRepository) FindByUser(db *gorm.DB, userID string) ([]models.DigitalCard, error) {
	var cards []models.DigitalCard
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&cards).Error
	return cards, err
}

func (r *digitalCardRepository) Update(db *gorm.DB, card *models.DigitalCard) error {
	result := db.Model(card).Where("user_id = ?", card.UserID).Updates(map[string]interface{}{
		"title":      card.Title,
		"type":       card.Type,
		"value":      card.Value,
		"code_type":  card.CodeType,
		"color":      card.Color,
		"note":       card.Note,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDigitalCardNotFound
	}
	return nil
}

func (r *digitalCardRepository) SoftDelete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.DigitalCard{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDigitalCardNotFound
	}
	return nil
}
