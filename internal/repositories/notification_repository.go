package repositories

import (
	"errors"
	"time"

	"disccount_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationCriteria pages a user's notifications.
type NotificationCriteria struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	FindByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(db *gorm.DB, id, userID string) (*models.Notification, error)
	MarkAllAsRead(db *gorm.DB, userID string) (int64, error)
	SoftDelete(db *gorm.DB, id, userID string) error
	CountUnread(db *gorm.DB, userID string) (int64, error)
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByUser(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	query := db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (criteria.Page - 1) * criteria.PageSize
	err := query.Order("created_at DESC").
		Limit(criteria.PageSize).
		Offset(offset).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *notificationRepository) MarkAsRead(db *gorm.DB, id, userID string) (*models.Notification, error) {
	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	now := time.Now()
	err := db.Model(&notification).Updates(map[string]interface{}{
		"is_read":    true,
		"updated_at": now,
	}).Error
	if err != nil {
		return nil, err
	}
	notification.IsRead = true
	notification.UpdatedAt = now
	return &notification, nil
}

func (r *notificationRepository) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read":    true,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) SoftDelete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) CountUnread(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
