package mocks

import (
	"time"

	"disccount_backend/internal/models"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// UserRepository records calls without the *gorm.DB argument.
type UserRepository struct{ mock.Mock }

func (m *UserRepository) user(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	return m.user(m.Called(id))
}

func (m *UserRepository) FindByIDUnscoped(_ *gorm.DB, id string) (*models.User, error) {
	return m.user(m.Called(id))
}

func (m *UserRepository) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	return m.user(m.Called(email))
}

func (m *UserRepository) FindByUsername(_ *gorm.DB, username string) (*models.User, error) {
	return m.user(m.Called(username))
}

func (m *UserRepository) FindDeletedByEmail(_ *gorm.DB, email string) (*models.User, error) {
	return m.user(m.Called(email))
}

func (m *UserRepository) FindDeletedByUsername(_ *gorm.DB, username string) (*models.User, error) {
	return m.user(m.Called(username))
}

func (m *UserRepository) FindAll(_ *gorm.DB) ([]models.User, error) {
	args := m.Called()
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *UserRepository) ExistsByEmail(_ *gorm.DB, email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ExistsByUsername(_ *gorm.DB, username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Create(_ *gorm.DB, user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *UserRepository) Update(_ *gorm.DB, user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *UserRepository) UpdateLastLogin(_ *gorm.DB, userID string, at time.Time) error {
	return m.Called(userID, at).Error(0)
}

func (m *UserRepository) IncrementAIPrompts(_ *gorm.DB, userID string, at time.Time) error {
	return m.Called(userID, at).Error(0)
}

func (m *UserRepository) SoftDelete(_ *gorm.DB, userID string) error {
	return m.Called(userID).Error(0)
}

func (m *UserRepository) Purge(_ *gorm.DB, userID string) error {
	return m.Called(userID).Error(0)
}
