package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"disccount_backend/internal/auth"
	"disccount_backend/internal/models"
	"disccount_backend/internal/repositories"
	"disccount_backend/internal/repositories/mocks"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const validPassword = "ValidPass123!"

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type authFixture struct {
	svc    *AuthServiceImpl
	users  *fakeUserRepo
	tokens *fakeRefreshTokenRepo
	issuer *auth.TokenIssuer
}

func newAuthFixture() *authFixture {
	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	issuer := auth.NewTokenIssuer("test-secret", "disccount", 15*time.Minute, 30*24*time.Hour)

	svc := NewAuthService(users, tokens, issuer, &auth.BcryptHasher{Cost: bcrypt.MinCost}, auth.NewPasswordPolicy(12))
	svc.now = func() time.Time { return fixedNow }

	return &authFixture{svc: svc, users: users, tokens: tokens, issuer: issuer}
}

func (f *authFixture) register(t *testing.T, db *gorm.DB, mock sqlmock.Sqlmock, email string) *dto.AuthResponse {
	t.Helper()
	expectTx(mock)
	resp, err := f.svc.Register(context.Background(), db, &dto.RegisterRequest{Email: email, Password: validPassword})
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register_CreatesFreeUserWithOneSession(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()

	resp := f.register(t, db, mock, "Ana@Example.com ")

	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, string(models.SubscriptionTierFree), resp.User.SubscriptionTier)
	assert.Equal(t, 0, resp.User.NumberOfAIPrompts)
	assert.Equal(t, models.DefaultStayLoggedInDays, resp.User.StayLoggedInDays)
	assert.True(t, resp.User.NotificationsPush)
	assert.True(t, resp.User.NotificationsEmail)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.Equal(t, fixedNow, *resp.User.LastLoginAt)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(900), resp.ExpiresIn)

	active, _ := f.tokens.CountActiveByUser(nil, resp.User.ID, fixedNow)
	assert.Equal(t, int64(1), active)

	stored, err := f.tokens.FindByTokenHash(nil, auth.HashRefreshToken(resp.RefreshToken))
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(30*24*time.Hour), stored.ExpiresAt)

	claims, err := f.issuer.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.Subject)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_AppliesProfilePreferences(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	expectTx(mock)

	off, days, name := false, 7, "  ana  "
	resp, err := f.svc.Register(context.Background(), db, &dto.RegisterRequest{
		Email:              "ana@example.com",
		Password:           validPassword,
		Username:           &name,
		StayLoggedInDays:   &days,
		NotificationsEmail: &off,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.User.Username)
	assert.Equal(t, "ana", *resp.User.Username)
	assert.Equal(t, 7, resp.User.StayLoggedInDays)
	assert.False(t, resp.User.NotificationsEmail)
	assert.True(t, resp.User.NotificationsPush)
}

func TestAuthService_Register_DuplicateActiveEmail(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	f.register(t, db, mock, "ana@example.com")

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := f.svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "ana@example.com", Password: validPassword})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	users, _ := f.users.FindAll(nil)
	assert.Len(t, users, 1)
}

func TestAuthService_Register_ReclaimsSoftDeletedEmail(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	old := f.register(t, db, mock, "ana@example.com")
	require.NoError(t, f.users.SoftDelete(nil, old.User.ID))

	fresh := f.register(t, db, mock, "ana@example.com")

	assert.NotEqual(t, old.User.ID, fresh.User.ID)
	assert.Equal(t, 0, f.tokens.countByUser(old.User.ID))
	_, err := f.users.FindByIDUnscoped(nil, old.User.ID)
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	name := "ana"
	expectTx(mock)
	_, err := f.svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "a@example.com", Password: validPassword, Username: &name})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = f.svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "b@example.com", Password: validPassword, Username: &name})

	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
}

func TestAuthService_Register_WeakPasswordListsEveryRule(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "ana@example.com", Password: "short"})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeWeakPassword, appErr.Code)
	assert.Len(t, appErr.Details, 4)
	// the policy rejects before any transaction starts
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Register_PasswordOverBcryptLimitIsWeak(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	long := validPassword + strings.Repeat("a", 70)

	_, err := f.svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "ana@example.com", Password: long})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeWeakPassword, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Equal(t, []string{auth.RuleMaxBytes}, appErr.Details)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Login_ByUsernameAndEmail(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	name := "ana"
	expectTx(mock)
	reg, err := f.svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "ana@example.com", Password: validPassword, Username: &name})
	require.NoError(t, err)

	for _, identifier := range []string{"ana", "ana@example.com", "ANA@example.com"} {
		expectLoginTx(mock)
		resp, err := f.svc.Login(context.Background(), db, &dto.LoginRequest{UsernameOrEmail: identifier, Password: validPassword})
		require.NoError(t, err, identifier)
		assert.Equal(t, reg.User.ID, resp.User.ID)
		assert.NotEqual(t, reg.RefreshToken, resp.RefreshToken)
	}

	assert.Equal(t, 4, f.tokens.countByUser(reg.User.ID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	name := "ana"
	expectTx(mock)
	_, err := f.svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "ana@example.com", Password: validPassword, Username: &name})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, wrongPassword := f.svc.Login(context.Background(), db, &dto.LoginRequest{UsernameOrEmail: "ana", Password: "WrongPass123!"})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, unknownUser := f.svc.Login(context.Background(), db, &dto.LoginRequest{UsernameOrEmail: "nobody", Password: validPassword})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_IgnoresSoftDeletedAccount(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	reg := f.register(t, db, mock, "ana@example.com")
	require.NoError(t, f.users.SoftDelete(nil, reg.User.ID))

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := f.svc.Login(context.Background(), db, &dto.LoginRequest{UsernameOrEmail: "ana@example.com", Password: validPassword})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_Login_RemovesExpiredTokens(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	reg := f.register(t, db, mock, "ana@example.com")
	f.tokens.expire(reg.User.ID, fixedNow.Add(-time.Minute))

	expectLoginTx(mock)
	_, err := f.svc.Login(context.Background(), db, &dto.LoginRequest{UsernameOrEmail: "ana@example.com", Password: validPassword})

	require.NoError(t, err)
	assert.Equal(t, 1, f.tokens.countByUser(reg.User.ID))
}

func TestAuthService_Refresh_IssuesOnlyAccessToken(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	reg := f.register(t, db, mock, "ana@example.com")
	before, _ := f.users.FindByID(nil, reg.User.ID)

	f.svc.now = func() time.Time { return fixedNow.Add(time.Hour) }
	expectTx(mock)
	resp, err := f.svc.Refresh(context.Background(), db, reg.RefreshToken)

	require.NoError(t, err)
	claims, err := f.issuer.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	after, _ := f.users.FindByID(nil, reg.User.ID)
	assert.Equal(t, before.LastLoginAt, after.LastLoginAt)
	assert.Equal(t, 1, f.tokens.countByUser(reg.User.ID))
	_, err = f.tokens.FindByTokenHash(nil, auth.HashRefreshToken(reg.RefreshToken))
	assert.NoError(t, err, "refresh token is not rotated")
}

func TestAuthService_Refresh_ExpiredRowIsRejected(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	reg := f.register(t, db, mock, "ana@example.com")
	f.tokens.expire(reg.User.ID, fixedNow.Add(-time.Second))

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := f.svc.Refresh(context.Background(), db, reg.RefreshToken)

	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	assert.Equal(t, 1, f.tokens.countByUser(reg.User.ID), "row stays until cleanup")
}

func TestAuthService_Refresh_UnknownOrEmpty(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()

	_, err := f.svc.Refresh(context.Background(), db, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = f.svc.Refresh(context.Background(), db, "never-issued")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestAuthService_Logout_RevokesSingleToken(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	reg := f.register(t, db, mock, "ana@example.com")
	expectLoginTx(mock)
	second, err := f.svc.Login(context.Background(), db, &dto.LoginRequest{UsernameOrEmail: "ana@example.com", Password: validPassword})
	require.NoError(t, err)

	expectTx(mock)
	require.NoError(t, f.svc.Logout(context.Background(), db, reg.RefreshToken))

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = f.svc.Refresh(context.Background(), db, reg.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)

	expectTx(mock)
	_, err = f.svc.Refresh(context.Background(), db, second.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_Logout_UnknownToken(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := f.svc.Logout(context.Background(), db, "never-issued")

	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestAuthService_LogoutAll_OnlyAffectsThatUser(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()
	ana := f.register(t, db, mock, "ana@example.com")
	expectLoginTx(mock)
	anaSecond, err := f.svc.Login(context.Background(), db, &dto.LoginRequest{UsernameOrEmail: "ana@example.com", Password: validPassword})
	require.NoError(t, err)
	ivo := f.register(t, db, mock, "ivo@example.com")

	expectTx(mock)
	require.NoError(t, f.svc.LogoutAll(context.Background(), db, ana.User.ID))

	for _, raw := range []string{ana.RefreshToken, anaSecond.RefreshToken} {
		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := f.svc.Refresh(context.Background(), db, raw)
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	}

	expectTx(mock)
	_, err = f.svc.Refresh(context.Background(), db, ivo.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_LogoutAll_UnknownUser(t *testing.T) {
	db, mock := newTxDB(t)
	f := newAuthFixture()

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := f.svc.LogoutAll(context.Background(), db, "missing")

	assert.ErrorIs(t, err, apperrors.ErrUnknownUser)
	assert.Equal(t, 401, err.(*apperrors.AppError).HTTPCode)
}

// The tests below script repository failures with testify mocks.

func newMockedAuthService() (*AuthServiceImpl, *mocks.UserRepository, *mocks.RefreshTokenRepository) {
	users := &mocks.UserRepository{}
	tokens := &mocks.RefreshTokenRepository{}
	issuer := auth.NewTokenIssuer("test-secret", "disccount", 15*time.Minute, 30*24*time.Hour)
	svc := NewAuthService(users, tokens, issuer, &auth.BcryptHasher{Cost: bcrypt.MinCost}, auth.NewPasswordPolicy(12))
	svc.now = func() time.Time { return fixedNow }
	return svc, users, tokens
}

func TestAuthService_Login_CleanupFailureDoesNotFailLogin(t *testing.T) {
	db, sqlMock := newTxDB(t)
	svc, users, tokens := newMockedAuthService()

	hash, err := auth.HashPassword(validPassword, bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Email: "ana@example.com", PasswordHash: &hash}
	user.ID = "u-1"

	users.On("FindByUsername", "ana@example.com").Return(nil, repositories.ErrUserNotFound)
	users.On("FindByEmail", "ana@example.com").Return(user, nil)
	users.On("UpdateLastLogin", "u-1", fixedNow).Return(nil)
	tokens.On("DeleteExpiredByUser", "u-1", fixedNow).Return(int64(0), errors.New("lock timeout"))
	tokens.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec(`SAVEPOINT expired_cleanup`).WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec(`ROLLBACK TO SAVEPOINT expired_cleanup`).WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectCommit()

	resp, err := svc.Login(context.Background(), db, &dto.LoginRequest{UsernameOrEmail: "ana@example.com", Password: validPassword})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.RefreshToken)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

// countingHasher records how often a password comparison ran.
type countingHasher struct {
	auth.BcryptHasher
	compares int
}

func (h *countingHasher) Compare(hash, password string) bool {
	h.compares++
	return h.BcryptHasher.Compare(hash, password)
}

func TestAuthService_Login_AccountWithoutPassword(t *testing.T) {
	db, sqlMock := newTxDB(t)
	svc, users, tokens := newMockedAuthService()
	hasher := &countingHasher{BcryptHasher: auth.BcryptHasher{Cost: bcrypt.MinCost}}
	svc.hasher = hasher

	external := "google|123"
	user := &models.User{Email: "ana@example.com", ExternalAuthID: &external}
	user.ID = "u-1"
	users.On("FindByUsername", "ana@example.com").Return(nil, repositories.ErrUserNotFound)
	users.On("FindByEmail", "ana@example.com").Return(user, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	_, err := svc.Login(context.Background(), db, &dto.LoginRequest{UsernameOrEmail: "ana@example.com", Password: validPassword})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Equal(t, 1, hasher.compares, "a password comparison still runs")
	tokens.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Register_PurgesTokensBeforeRow(t *testing.T) {
	db, sqlMock := newTxDB(t)
	svc, users, tokens := newMockedAuthService()

	old := &models.User{Email: "ana@example.com"}
	old.ID = "old"
	var order []string

	users.On("FindDeletedByEmail", "ana@example.com").Return(old, nil)
	tokens.On("DeleteAllByUser", "old").Return(int64(2), nil).Run(func(mock.Arguments) { order = append(order, "tokens") })
	users.On("Purge", "old").Return(nil).Run(func(mock.Arguments) { order = append(order, "user") })
	users.On("ExistsByEmail", "ana@example.com").Return(false, nil)
	users.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = "new"
	})
	tokens.On("Create", mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	resp, err := svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "ana@example.com", Password: validPassword})

	require.NoError(t, err)
	assert.Equal(t, "new", resp.User.ID)
	assert.Equal(t, []string{"tokens", "user"}, order)
	tokens.AssertNumberOfCalls(t, "Create", 1)
}

func TestAuthService_Register_DatabaseFailureIsInternal(t *testing.T) {
	db, sqlMock := newTxDB(t)
	svc, users, _ := newMockedAuthService()

	users.On("FindDeletedByEmail", "ana@example.com").Return(nil, errors.New("connection reset"))

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	_, err := svc.Register(context.Background(), db, &dto.RegisterRequest{Email: "ana@example.com", Password: validPassword})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInternalError, appErr.Code)
	assert.Equal(t, 500, appErr.HTTPCode)
}
