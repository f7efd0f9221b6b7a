package dto

import (
	"time"

	"disccount_backend/internal/models"
)

// DigitalCardRequest is used for create and for full update.
type DigitalCardRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Type     string  `json:"type" validate:"required,max=50"`
	Value    string  `json:"value" validate:"required,max=255"`
	CodeType string  `json:"code_type" validate:"required,max=50"`
	Color    *string `json:"color,omitempty" validate:"omitempty,max=20"`
	Note     *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type DigitalCardResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	Value     string    `json:"value"`
	CodeType  string    `json:"code_type"`
	Color     *string   `json:"color"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDigitalCardResponse(c *models.DigitalCard) *DigitalCardResponse {
	return &DigitalCardResponse{
		ID:        c.ID,
		Title:     c.Title,
		Type:      c.Type,
		Value:     c.Value,
		CodeType:  c.CodeType,
		Color:     c.Color,
		Note:      c.Note,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
