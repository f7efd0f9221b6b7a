package mocks

import (
	"time"

	"disccount_backend/internal/models"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type RefreshTokenRepository struct{ mock.Mock }

func (m *RefreshTokenRepository) token(args mock.Arguments) (*models.RefreshToken, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *RefreshTokenRepository) Create(_ *gorm.DB, token *models.RefreshToken) error {
	return m.Called(token).Error(0)
}

func (m *RefreshTokenRepository) FindByTokenHash(_ *gorm.DB, hash string) (*models.RefreshToken, error) {
	return m.token(m.Called(hash))
}

func (m *RefreshTokenRepository) FindActiveByTokenHash(_ *gorm.DB, hash string, now time.Time) (*models.RefreshToken, error) {
	return m.token(m.Called(hash, now))
}

func (m *RefreshTokenRepository) DeleteByTokenHash(_ *gorm.DB, hash string) error {
	return m.Called(hash).Error(0)
}

func (m *RefreshTokenRepository) DeleteAllByUser(_ *gorm.DB, userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RefreshTokenRepository) DeleteExpiredByUser(_ *gorm.DB, userID string, now time.Time) (int64, error) {
	args := m.Called(userID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RefreshTokenRepository) CountActiveByUser(_ *gorm.DB, userID string, now time.Time) (int64, error) {
	args := m.Called(userID, now)
	return args.Get(0).(int64), args.Error(1)
}
