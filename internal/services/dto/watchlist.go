package dto

import (
	"time"

	"disccount_backend/internal/models"
)

type AddWatchlistItemRequest struct {
	ProductAPIID string `json:"product_api_id" validate:"required,max=255"`
	ProductName  string `json:"product_name" validate:"required,max=255"`
}

type WatchlistItemResponse struct {
	ID             string     `json:"id"`
	ProductAPIID   string     `json:"product_api_id"`
	ProductName    string     `json:"product_name"`
	LastNotifiedAt *time.Time `json:"last_notified_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

func NewWatchlistItemResponse(w *models.WatchlistItem) *WatchlistItemResponse {
	return &WatchlistItemResponse{
		ID:             w.ID,
		ProductAPIID:   w.ProductAPIID,
		ProductName:    w.ProductName,
		LastNotifiedAt: w.LastNotifiedAt,
		CreatedAt:      w.CreatedAt,
	}
}
