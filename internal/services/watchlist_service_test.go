package services

import (
	"context"
	"testing"

	"disccount_backend/internal/repositories"
	"disccount_backend/internal/repositories/mocks"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWatchlistService_Add(t *testing.T) {
	db, sqlMock := newTxDB(t)
	repo := &mocks.WatchlistRepository{}
	svc := NewWatchlistService(repo)

	repo.On("ExistsByProduct", "u-1", "p-1").Return(false, nil)
	repo.On("Create", mock.AnythingOfType("*models.WatchlistItem")).Return(nil)
	expectTx(sqlMock)

	resp, err := svc.Add(context.Background(), db, "u-1", &dto.AddWatchlistItemRequest{ProductAPIID: "p-1", ProductName: "Milk"})

	require.NoError(t, err)
	assert.Equal(t, "p-1", resp.ProductAPIID)
	repo.AssertExpectations(t)
}

func TestWatchlistService_Add_Duplicate(t *testing.T) {
	db, sqlMock := newTxDB(t)
	repo := &mocks.WatchlistRepository{}
	svc := NewWatchlistService(repo)

	repo.On("ExistsByProduct", "u-1", "p-1").Return(true, nil)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	_, err := svc.Add(context.Background(), db, "u-1", &dto.AddWatchlistItemRequest{ProductAPIID: "p-1", ProductName: "Milk"})

	assert.ErrorIs(t, err, apperrors.ErrWatchlistDuplicate)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestWatchlistService_Add_RaceOnUniqueIndex(t *testing.T) {
	db, sqlMock := newTxDB(t)
	repo := &mocks.WatchlistRepository{}
	svc := NewWatchlistService(repo)

	repo.On("ExistsByProduct", "u-1", "p-1").Return(false, nil)
	repo.On("Create", mock.Anything).Return(repositories.ErrWatchlistDuplicate)
	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	_, err := svc.Add(context.Background(), db, "u-1", &dto.AddWatchlistItemRequest{ProductAPIID: "p-1", ProductName: "Milk"})

	assert.ErrorIs(t, err, apperrors.ErrWatchlistDuplicate)
}

func TestWatchlistService_RemoveForeignItem(t *testing.T) {
	db, _ := newTxDB(t)
	repo := &mocks.WatchlistRepository{}
	svc := NewWatchlistService(repo)

	repo.On("SoftDelete", "w-1", "u-2").Return(repositories.ErrWatchlistItemNotFound)

	err := svc.Remove(context.Background(), db, "u-2", "w-1")

	assert.ErrorIs(t, err, apperrors.ErrWatchlistItemNotFound)
	assert.Equal(t, 404, err.(*apperrors.AppError).HTTPCode)
}

func TestWatchlistService_GetByProduct_Missing(t *testing.T) {
	db, _ := newTxDB(t)
	repo := &mocks.WatchlistRepository{}
	svc := NewWatchlistService(repo)

	repo.On("FindByProduct", "u-1", "p-9").Return(nil, repositories.ErrWatchlistItemNotFound)

	_, err := svc.GetByProduct(context.Background(), db, "u-1", "p-9")

	assert.ErrorIs(t, err, apperrors.ErrWatchlistItemNotFound)
}
