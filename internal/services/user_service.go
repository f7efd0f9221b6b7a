package services

import (
	"context"
	"errors"
	"time"

	"disccount_backend/internal/logger"
	"disccount_backend/internal/repositories"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]*dto.PublicUserResponse, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	// SoftDelete tombstones the account and revokes all of its refresh tokens.
	SoftDelete(ctx context.Context, db *gorm.DB, userID string) error
	ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error)
	ExistsByUsername(ctx context.Context, db *gorm.DB, username string) (bool, error)
	RecordAIPrompt(ctx context.Context, db *gorm.DB, userID string) error
}

type userService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	now              func() time.Time
}

func NewUserService(userRepo repositories.UserRepository, refreshTokenRepo repositories.RefreshTokenRepository) UserService {
	return &userService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		now:              time.Now,
	}
}

func (s *userService) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) ListActive(ctx context.Context, db *gorm.DB) ([]*dto.PublicUserResponse, error) {
	users, err := s.userRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.PublicUserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewPublicUserResponse(&users[i]))
	}
	return out, nil
}

func (s *userService) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleUserError(err)
	}

	if username := normalizeUsername(req.Username); username != nil && *username != user.UsernameValue() {
		taken, err := s.userRepo.ExistsByUsername(tx, *username)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		user.Username = username
	}
	if req.StayLoggedInDays != nil {
		user.StayLoggedInDays = *req.StayLoggedInDays
	}
	if req.NotificationsPush != nil {
		user.NotificationsPush = *req.NotificationsPush
	}
	if req.NotificationsEmail != nil {
		user.NotificationsEmail = *req.NotificationsEmail
	}

	if err := s.userRepo.Update(tx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
		return nil, handleUserError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) SoftDelete(ctx context.Context, db *gorm.DB, userID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.SoftDelete(tx, userID); err != nil {
		return handleUserError(err)
	}
	if _, err := s.refreshTokenRepo.DeleteAllByUser(tx, userID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user soft-deleted", "user_id", userID)
	return nil
}

func (s *userService) ExistsByEmail(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	exists, err := s.userRepo.ExistsByEmail(db, normalizeEmail(email))
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return exists, nil
}

func (s *userService) ExistsByUsername(ctx context.Context, db *gorm.DB, username string) (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(db, username)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	return exists, nil
}

// RecordAIPrompt runs on the caller's transaction.
func (s *userService) RecordAIPrompt(ctx context.Context, db *gorm.DB, userID string) error {
	if err := s.userRepo.IncrementAIPrompts(db, userID, s.now()); err != nil {
		return handleUserError(err)
	}
	return nil
}
