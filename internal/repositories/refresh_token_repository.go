package repositories

import (
	"errors"
	"time"

	"disccount_backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrRefreshTokenNotFound is returned when no row carries the given hash.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
)

// RefreshTokenRepository is the refresh token store. It only ever sees token
// hashes, never raw tokens.
type RefreshTokenRepository interface {
	Create(db *gorm.DB, token *models.RefreshToken) error

	// FindByTokenHash returns the row regardless of expiry.
	FindByTokenHash(db *gorm.DB, hash string) (*models.RefreshToken, error)

	// FindActiveByTokenHash ignores rows that expired at or before now.
	FindActiveByTokenHash(db *gorm.DB, hash string, now time.Time) (*models.RefreshToken, error)

	DeleteByTokenHash(db *gorm.DB, hash string) error
	DeleteAllByUser(db *gorm.DB, userID string) (int64, error)
	DeleteExpiredByUser(db *gorm.DB, userID string, now time.Time) (int64, error)
	CountActiveByUser(db *gorm.DB, userID string, now time.Time) (int64, error)
}

type refreshTokenRepository struct{}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

func (r *refreshTokenRepository) Create(db *gorm.DB, token *models.RefreshToken) error {
	return translateWriteError(db.Create(token).Error, ErrAlreadyExists)
}

func (r *refreshTokenRepository) FindByTokenHash(db *gorm.DB, hash string) (*models.RefreshToken, error) {
	return r.first(db.Where("token_hash = ?", hash))
}

func (r *refreshTokenRepository) FindActiveByTokenHash(db *gorm.DB, hash string, now time.Time) (*models.RefreshToken, error) {
	return r.first(db.Where("token_hash = ? AND expires_at > ?", hash, now))
}

func (r *refreshTokenRepository) first(query *gorm.DB) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := query.First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *refreshTokenRepository) DeleteByTokenHash(db *gorm.DB, hash string) error {
	result := db.Where("token_hash = ?", hash).Delete(&models.RefreshToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

func (r *refreshTokenRepository) DeleteAllByUser(db *gorm.DB, userID string) (int64, error) {
	result := db.Where("user_id = ?", userID).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

func (r *refreshTokenRepository) DeleteExpiredByUser(db *gorm.DB, userID string, now time.Time) (int64, error) {
	result := db.Where("user_id = ? AND expires_at <= ?", userID, now).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

func (r *refreshTokenRepository) CountActiveByUser(db *gorm.DB, userID string, now time.Time) (int64, error) {
	var count int64
	err := db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Count(&count).Error
	return count, err
}
