package services

import (
	"sync"
	"testing"
	"time"

	"disccount_backend/internal/models"
	"disccount_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTxDB returns a gorm handle whose transactions are scripted through mock.
func newTxDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func expectTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectCommit()
}

func expectLoginTx(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(`SAVEPOINT expired_cleanup`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
}

// fakeUserRepo mimics the app_users table: email is unique across live and
// tombstoned rows, like the database index.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (r *fakeUserRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func active(u *models.User) bool { return !u.DeletedAt.Valid }

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id && active(u) })
}

func (r *fakeUserRepo) FindByIDUnscoped(_ *gorm.DB, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email && active(u) })
}

func (r *fakeUserRepo) FindByUsername(_ *gorm.DB, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.UsernameValue() == username && active(u) })
}

func (r *fakeUserRepo) FindDeletedByEmail(_ *gorm.DB, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email && !active(u) })
}

func (r *fakeUserRepo) FindDeletedByUsername(_ *gorm.DB, username string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.UsernameValue() == username && !active(u) })
}

func (r *fakeUserRepo) FindAll(_ *gorm.DB) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if active(u) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByEmail(db *gorm.DB, email string) (bool, error) {
	_, err := r.FindByEmail(db, email)
	return err == nil, nil
}

func (r *fakeUserRepo) ExistsByUsername(db *gorm.DB, username string) (bool, error) {
	_, err := r.FindByUsername(db, username)
	return err == nil, nil
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ *gorm.DB, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ *gorm.DB, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (r *fakeUserRepo) IncrementAIPrompts(_ *gorm.DB, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.NumberOfAIPrompts++
	u.LastAIPromptAt = &at
	return nil
}

func (r *fakeUserRepo) SoftDelete(_ *gorm.DB, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok || !active(u) {
		return repositories.ErrUserNotFound
	}
	u.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return nil
}

func (r *fakeUserRepo) Purge(_ *gorm.DB, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]models.RefreshToken{}}
}

func (r *fakeRefreshTokenRepo) Create(_ *gorm.DB, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token.TokenHash]; ok {
		return repositories.ErrAlreadyExists
	}
	token.ID = uuid.NewString()
	r.tokens[token.TokenHash] = *token
	return nil
}

func (r *fakeRefreshTokenRepo) FindByTokenHash(_ *gorm.DB, hash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[hash]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	return &t, nil
}

func (r *fakeRefreshTokenRepo) FindActiveByTokenHash(db *gorm.DB, hash string, now time.Time) (*models.RefreshToken, error) {
	t, err := r.FindByTokenHash(db, hash)
	if err != nil {
		return nil, err
	}
	if !t.IsActive(now) {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	return t, nil
}

func (r *fakeRefreshTokenRepo) DeleteByTokenHash(_ *gorm.DB, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[hash]; !ok {
		return repositories.ErrRefreshTokenNotFound
	}
	delete(r.tokens, hash)
	return nil
}

func (r *fakeRefreshTokenRepo) deleteWhere(match func(models.RefreshToken) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for h, t := range r.tokens {
		if match(t) {
			delete(r.tokens, h)
			n++
		}
	}
	return n
}

func (r *fakeRefreshTokenRepo) DeleteAllByUser(_ *gorm.DB, userID string) (int64, error) {
	return r.deleteWhere(func(t models.RefreshToken) bool { return t.UserID == userID }), nil
}

func (r *fakeRefreshTokenRepo) DeleteExpiredByUser(_ *gorm.DB, userID string, now time.Time) (int64, error) {
	return r.deleteWhere(func(t models.RefreshToken) bool { return t.UserID == userID && !t.IsActive(now) }), nil
}

func (r *fakeRefreshTokenRepo) CountActiveByUser(_ *gorm.DB, userID string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsActive(now) {
			n++
		}
	}
	return n, nil
}

func (r *fakeRefreshTokenRepo) countByUser(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, t := range r.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

// expire moves every token of userID into the past without deleting it.
func (r *fakeRefreshTokenRepo) expire(userID string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for h, t := range r.tokens {
		if t.UserID == userID {
			t.ExpiresAt = at
			r.tokens[h] = t
		}
	}
}
