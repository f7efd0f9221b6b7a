package services

import (
	"context"
	"errors"

	"disccount_backend/internal/email"
	"disccount_backend/internal/logger"
	"disccount_backend/internal/models"
	"disccount_backend/internal/repositories"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type NotificationService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) (*dto.NotificationResponse, error)
	MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, userID, notificationID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	sender           email.Sender
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	sender email.Sender,
) NotificationService {
	if sender == nil {
		sender = email.NoopSender{}
	}
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		sender:           sender,
	}
}

func (s *notificationService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	notification := &models.Notification{
		UserID:              userID,
		Message:             req.Message,
		RelatedProductAPIID: req.RelatedProductAPIID,
		RelatedStoreAPIID:   req.RelatedStoreAPIID,
	}
	if len(req.Payload) > 0 {
		notification.Payload = datatypes.JSON(req.Payload)
	}

	if err := s.notificationRepo.Create(db, notification); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if user.NotificationsEmail {
		s.mail(ctx, user, notification)
	}
	return dto.NewNotificationResponse(notification), nil
}

// mail never fails the request; delivery problems are only logged.
func (s *notificationService) mail(ctx context.Context, user *models.User, n *models.Notification) {
	msg := &email.Email{
		To:      []string{user.Email},
		Subject: "New notification",
		Body:    n.Message,
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		logger.CtxWarn(ctx, "notification e-mail not sent", "user_id", user.ID, "notification_id", n.ID, "error", err)
	}
}

func (s *notificationService) List(ctx context.Context, db *gorm.DB, userID string, page, pageSize int) (*dto.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	notifications, total, err := s.notificationRepo.FindByUser(db, userID, repositories.NotificationCriteria{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NewNotificationResponse(&notifications[i]))
	}

	return &dto.NotificationListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) (*dto.NotificationResponse, error) {
	n, err := s.notificationRepo.MarkAsRead(db, notificationID, userID)
	if err != nil {
		return nil, handleNotificationError(err)
	}
	return dto.NewNotificationResponse(n), nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	updated, err := s.notificationRepo.MarkAllAsRead(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return updated, nil
}

func (s *notificationService) Delete(ctx context.Context, db *gorm.DB, userID, notificationID string) error {
	if err := s.notificationRepo.SoftDelete(db, notificationID, userID); err != nil {
		return handleNotificationError(err)
	}
	return nil
}

func handleNotificationError(err error) error {
	if errors.Is(err, repositories.ErrNotificationNotFound) {
		return apperrors.ErrNotificationNotFound
	}
	return apperrors.InternalError(err)
}
