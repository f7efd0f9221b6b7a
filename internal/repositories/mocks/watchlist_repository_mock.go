package mocks

import (
	"time"

	"disccount_backend/internal/models"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type WatchlistRepository struct{ mock.Mock }

func (m *WatchlistRepository) Create(_ *gorm.DB, item *models.WatchlistItem) error {
	return m.Called(item).Error(0)
}

func (m *WatchlistRepository) FindByUser(_ *gorm.DB, userID string) ([]models.WatchlistItem, error) {
	args := m.Called(userID)
	items, _ := args.Get(0).([]models.WatchlistItem)
	return items, args.Error(1)
}

func (m *WatchlistRepository) FindByProduct(_ *gorm.DB, userID, productAPIID string) (*models.WatchlistItem, error) {
	args := m.Called(userID, productAPIID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchlistItem), args.Error(1)
}

func (m *WatchlistRepository) ExistsByProduct(_ *gorm.DB, userID, productAPIID string) (bool, error) {
	args := m.Called(userID, productAPIID)
	return args.Bool(0), args.Error(1)
}

func (m *WatchlistRepository) SoftDelete(_ *gorm.DB, id, userID string) error {
	return m.Called(id, userID).Error(0)
}

func (m *WatchlistRepository) MarkNotified(_ *gorm.DB, id, userID string, at time.Time) error {
	return m.Called(id, userID, at).Error(0)
}
