package services

import (
	"context"
	"errors"

	"disccount_backend/internal/models"
	"disccount_backend/internal/repositories"
	"disccount_backend/internal/services/dto"
	"disccount_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type DigitalCardService interface {
	Create(ctx context.Context, db *gorm.DB, userID string, req *dto.DigitalCardRequest) (*dto.DigitalCardResponse, error)
	List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.DigitalCardResponse, error)
	Get(ctx context.Context, db *gorm.DB, userID, cardID string) (*dto.DigitalCardResponse, error)
	Update(ctx context.Context, db *gorm.DB, userID, cardID string, req *dto.DigitalCardRequest) (*dto.DigitalCardResponse, error)
	Delete(ctx context.Context, db *gorm.DB, userID, cardID string) error
}

type digitalCardService struct {
	cardRepo repositories.DigitalCardRepository
}

func NewDigitalCardService(cardRepo repositories.DigitalCardRepository) DigitalCardService {
	return &digitalCardService{cardRepo: cardRepo}
}

func (s *digitalCardService) Create(ctx context.Context, db *gorm.DB, userID string, req *dto.DigitalCardRequest) (*dto.DigitalCardResponse, error) {
	card := &models.DigitalCard{UserID: userID}
	applyCardRequest(card, req)

	if err := s.cardRepo.Create(db, card); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewDigitalCardResponse(card), nil
}

func (s *digitalCardService) List(ctx context.Context, db *gorm.DB, userID string) ([]*dto.DigitalCardResponse, error) {
	cards, err := s.cardRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.DigitalCardResponse, 0, len(cards))
	for i := range cards {
		out = append(out, dto.NewDigitalCardResponse(&cards[i]))
	}
	return out, nil
}

func (s *digitalCardService) Get(ctx context.Context, db *gorm.DB, userID, cardID string) (*dto.DigitalCardResponse, error) {
	card, err := s.cardRepo.FindByIDAndUser(db, cardID, userID)
	if err != nil {
		return nil, handleDigitalCardError(err)
	}
	return dto.NewDigitalCardResponse(card), nil
}

func (s *digitalCardService) Update(ctx context.Context, db *gorm.DB, userID, cardID string, req *dto.DigitalCardRequest) (*dto.DigitalCardResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	card, err := s.cardRepo.FindByIDAndUser(tx, cardID, userID)
	if err != nil {
		return nil, handleDigitalCardError(err)
	}
	applyCardRequest(card, req)

	if err := s.cardRepo.Update(tx, card); err != nil {
		return nil, handleDigitalCardError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewDigitalCardResponse(card), nil
}

func (s *digitalCardService) Delete(ctx context.Context, db *gorm.DB, userID, cardID string) error {
	if err := s.cardRepo.SoftDelete(db, cardID, userID); err != nil {
		return handleDigitalCardError(err)
	}
	return nil
}

func applyCardRequest(card *models.DigitalCard, req *dto.DigitalCardRequest) {
	card.Title = req.Title
	card.Type = req.Type
	card.Value = req.Value
	card.CodeType = req.CodeType
	card.Color = req.Color
	card.Note = req.Note
}

func handleDigitalCardError(err error) error {
	if errors.Is(err, repositories.ErrDigitalCardNotFound) {
		return apperrors.ErrCardNotFound
	}
	return apperrors.InternalError(err)
}
