package repositories

import (
	"errors"
	"time"

	"disccount_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository is the credential store. Every finder except the Unscoped and
// Deleted variants sees active (not soft-deleted) users only.
type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByIDUnscoped(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindDeletedByEmail(db *gorm.DB, email string) (*models.User, error)
	FindDeletedByUsername(db *gorm.DB, username string) (*models.User, error)
	FindAll(db *gorm.DB) ([]models.User, error)
	ExistsByEmail(db *gorm.DB, email string) (bool, error)
	ExistsByUsername(db *gorm.DB, username string) (bool, error)

	Create(db *gorm.DB, user *models.User) error
	Update(db *gorm.DB, user *models.User) error
	UpdateLastLogin(db *gorm.DB, userID string, at time.Time) error
	IncrementAIPrompts(db *gorm.DB, userID string, at time.Time) error
	SoftDelete(db *gorm.DB, userID string) error
	// Purge removes the row physically, including tombstoned rows.
	Purge(db *gorm.DB, userID string) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return r.first(db, "id = ?", id)
}

func (r *userRepository) FindByIDUnscoped(db *gorm.DB, id string) (*models.User, error) {
	return r.first(db.Unscoped(), "id = ?", id)
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.first(db, "email = ?", email)
}

func (r *userRepository) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	return r.first(db, "username = ?", username)
}

func (r *userRepository) FindDeletedByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.first(db.Unscoped(), "email = ? AND deleted_at IS NOT NULL", email)
}

func (r *userRepository) FindDeletedByUsername(db *gorm.DB, username string) (*models.User, error) {
	return r.first(db.Unscoped(), "username = ? AND deleted_at IS NOT NULL", username)
}

func (r *userRepository) first(db *gorm.DB, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	if err := db.Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	return r.exists(db, "email = ?", email)
}

func (r *userRepository) ExistsByUsername(db *gorm.DB, username string) (bool, error) {
	return r.exists(db, "username = ?", username)
}

func (r *userRepository) exists(db *gorm.DB, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	return translateWriteError(db.Create(user).Error, ErrUserAlreadyExists)
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"username":            user.Username,
		"stay_logged_in_days": user.StayLoggedInDays,
		"notifications_push":  user.NotificationsPush,
		"notifications_email": user.NotificationsEmail,
		"updated_at":          time.Now(),
	})
	if result.Error != nil {
		return translateWriteError(result.Error, ErrUserAlreadyExists)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(db *gorm.DB, userID string, at time.Time) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"last_login_at": at,
		"updated_at":    at,
	})
}

func (r *userRepository) IncrementAIPrompts(db *gorm.DB, userID string, at time.Time) error {
	return r.updateColumns(db, userID, map[string]interface{}{
		"number_of_ai_prompts": gorm.Expr("number_of_ai_prompts + 1"),
		"last_ai_prompt_at":    at,
	})
}

func (r *userRepository) updateColumns(db *gorm.DB, userID string, columns map[string]interface{}) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).UpdateColumns(columns)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SoftDelete(db *gorm.DB, userID string) error {
	result := db.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Purge(db *gorm.DB, userID string) error {
	return db.Unscoped().Where("id = ?", userID).Delete(&models.User{}).Error
}
