package dto

import (
	"encoding/json"
	"time"

	"disccount_backend/internal/models"
)

type CreateNotificationRequest struct {
	Message             string          `json:"message" validate:"required,max=2000"`
	RelatedProductAPIID *string         `json:"related_product_api_id,omitempty" validate:"omitempty,max=255"`
	RelatedStoreAPIID   *string         `json:"related_store_api_id,omitempty" validate:"omitempty,max=100"`
	Payload             json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
}

type NotificationResponse struct {
	ID                  string          `json:"id"`
	Message             string          `json:"message"`
	IsRead              bool            `json:"is_read"`
	RelatedProductAPIID *string         `json:"related_product_api_id"`
	RelatedStoreAPIID   *string         `json:"related_store_api_id"`
	Payload             json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
	CreatedAt           time.Time       `json:"created_at"`
}

type NotificationListResponse struct {
	Items      []*NotificationResponse `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	TotalPages int                     `json:"total_pages"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:                  n.ID,
		Message:             n.Message,
		IsRead:              n.IsRead,
		RelatedProductAPIID: n.RelatedProductAPIID,
		RelatedStoreAPIID:   n.RelatedStoreAPIID,
		CreatedAt:           n.CreatedAt,
	}
	if len(n.Payload) > 0 {
		resp.Payload = json.RawMessage(n.Payload)
	}
	return resp
}
