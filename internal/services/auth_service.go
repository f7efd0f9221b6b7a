package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"disccount_backend/internal/auth"
	"disccount_backend/internal/logger"
	"disccount_backend/internal/models"
	"disccount_backend/internal/repositories"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	tokenTypeBearer         = "Bearer"
	expiredCleanupSavepoint = "expired_cleanup"
)

// TokenGenerator mints signed access and refresh tokens.
type TokenGenerator interface {
	GenerateAccessToken(subject, userID string) (string, error)
	GenerateRefreshToken(subject, userID string) (string, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

// AuthService manages the session lifecycle. Each method runs in a single
// transaction on db.
type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, db *gorm.DB, rawRefreshToken string) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, db *gorm.DB, rawRefreshToken string) error
	// LogoutAll revokes every refresh token of the user. Access tokens already
	// issued stay valid until they expire.
	LogoutAll(ctx context.Context, db *gorm.DB, userID string) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokens           TokenGenerator
	hasher           auth.PasswordHasher
	policy           auth.PasswordPolicy
	now              func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokens TokenGenerator,
	hasher auth.PasswordHasher,
	policy auth.PasswordPolicy,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokens:           tokens,
		hasher:           hasher,
		policy:           policy,
		now:              time.Now,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.policy.ValidateOrError(req.Password); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	username := normalizeUsername(req.Username)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// A tombstoned account releases its email and username.
	if err := s.purgeDeleted(ctx, tx, s.userRepo.FindDeletedByEmail, email); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if username != nil {
		if err := s.purgeDeleted(ctx, tx, s.userRepo.FindDeletedByUsername, *username); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	exists, err := s.userRepo.ExistsByEmail(tx, email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}
	if username != nil {
		exists, err = s.userRepo.ExistsByUsername(tx, *username)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if exists {
			return nil, apperrors.ErrUsernameAlreadyExists
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := s.now()
	user := &models.User{
		Username:           username,
		Email:              email,
		PasswordHash:       &hash,
		LastLoginAt:        &now,
		StayLoggedInDays:   models.DefaultStayLoggedInDays,
		NotificationsPush:  true,
		NotificationsEmail: true,
		SubscriptionTier:   models.SubscriptionTierFree,
		NumberOfAIPrompts:  0,
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

	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleUserError(err)
	}

	resp, err := s.issueSession(tx, user, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)
	return resp, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.findByUsernameOrEmail(tx, strings.TrimSpace(req.UsernameOrEmail))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Spend the same bcrypt work as for a known account.
			s.hasher.Compare(s.dummyPasswordHash(), req.Password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.HasPassword() {
		s.hasher.Compare(s.dummyPasswordHash(), req.Password)
		return nil, apperrors.ErrInvalidCredentials
	}
	if !s.hasher.Compare(*user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := s.now()
	s.deleteExpiredTokens(ctx, tx, user.ID, now)

	if err := s.userRepo.UpdateLastLogin(tx, user.ID, now); err != nil {
		return nil, handleUserError(err)
	}
	user.LastLoginAt = &now

	resp, err := s.issueSession(tx, user, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID)
	return resp, nil
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, db *gorm.DB, rawRefreshToken string) (*dto.RefreshResponse, error) {
	if rawRefreshToken == "" {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	hash := auth.HashRefreshToken(rawRefreshToken)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	stored, err := s.refreshTokenRepo.FindActiveByTokenHash(tx, hash, s.now())
	if err != nil {
		return nil, handleRefreshTokenError(err)
	}

	user, err := s.userRepo.FindByID(tx, stored.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.InternalError(err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.RefreshResponse{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

func (s *AuthServiceImpl) Logout(ctx context.Context, db *gorm.DB, rawRefreshToken string) error {
	if rawRefreshToken == "" {
		return apperrors.ErrInvalidRefreshToken
	}
	hash := auth.HashRefreshToken(rawRefreshToken)

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// Expired rows are still revocable here.
	stored, err := s.refreshTokenRepo.FindByTokenHash(tx, hash)
	if err != nil {
		return handleRefreshTokenError(err)
	}
	if err := s.refreshTokenRepo.DeleteByTokenHash(tx, hash); err != nil {
		return handleRefreshTokenError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "refresh token revoked", "user_id", stored.UserID)
	return nil
}

func (s *AuthServiceImpl) LogoutAll(ctx context.Context, db *gorm.DB, userID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.userRepo.FindByID(tx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUnknownUser
		}
		return apperrors.InternalError(err)
	}

	revoked, err := s.refreshTokenRepo.DeleteAllByUser(tx, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "all refresh tokens revoked", "user_id", userID, "count", revoked)
	return nil
}

// issueSession mints both tokens and stores the refresh token digest.
func (s *AuthServiceImpl) issueSession(tx *gorm.DB, user *models.User, now time.Time) (*dto.AuthResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	record := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt: now.Add(s.tokens.RefreshTTL()),
	}
	if err := s.refreshTokenRepo.Create(tx, record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
		User:         dto.NewUserResponse(user),
		RefreshToken: refreshToken,
	}, nil
}

// deleteExpiredTokens is best effort. A failure is rolled back to a savepoint
// and logged so the login itself still commits.
func (s *AuthServiceImpl) deleteExpiredTokens(ctx context.Context, tx *gorm.DB, userID string, now time.Time) {
	if err := tx.SavePoint(expiredCleanupSavepoint).Error; err != nil {
		logger.CtxWithError(ctx, "expired token cleanup skipped", err, "user_id", userID)
		return
	}

	removed, err := s.refreshTokenRepo.DeleteExpiredByUser(tx, userID, now)
	if err != nil {
		tx.RollbackTo(expiredCleanupSavepoint)
		logger.CtxWarn(ctx, "expired token cleanup failed", "user_id", userID, "error", err)
		return
	}
	if removed > 0 {
		logger.CtxDebug(ctx, "expired refresh tokens removed", "user_id", userID, "count", removed)
	}
}

func (s *AuthServiceImpl) findByUsernameOrEmail(tx *gorm.DB, identifier string) (*models.User, error) {
	if identifier == "" {
		return nil, repositories.ErrUserNotFound
	}
	user, err := s.userRepo.FindByUsername(tx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}
	return s.userRepo.FindByEmail(tx, normalizeEmail(identifier))
}

func (s *AuthServiceImpl) purgeDeleted(ctx context.Context, tx *gorm.DB, find func(*gorm.DB, string) (*models.User, error), key string) error {
	deleted, err := find(tx, key)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if _, err := s.refreshTokenRepo.DeleteAllByUser(tx, deleted.ID); err != nil {
		return err
	}
	if err := s.userRepo.Purge(tx, deleted.ID); err != nil {
		return err
	}
	logger.CtxInfo(ctx, "purged soft-deleted account", "user_id", deleted.ID)
	return nil
}

func (s *AuthServiceImpl) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("dummy-password-for-timing")
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeUsername(username *string) *string {
	if username == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*username)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func handleRefreshTokenError(err error) error {
	if errors.Is(err, repositories.ErrRefreshTokenNotFound) {
		return apperrors.ErrInvalidRefreshToken
	}
	return apperrors.InternalError(err)
}

func handleUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	if errors.Is(err, repositories.ErrUserAlreadyExists) {
		return apperrors.ErrConflict(err, "user", "User already exists")
	}
	return apperrors.InternalError(err)
}
