package dto

import (
	"time"

	"disccount_backend/internal/models"
)

type CreateShoppingListRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	IsPublic *bool   `json:"is_public,omitempty"`
	AIPrompt *string `json:"ai_prompt,omitempty" validate:"omitempty,max=4000"`
	AIAnswer *string `json:"ai_answer,omitempty"`
}

type UpdateShoppingListRequest struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	IsPublic *bool   `json:"is_public,omitempty"`
	AIPrompt *string `json:"ai_prompt,omitempty" validate:"omitempty,max=4000"`
	AIAnswer *string `json:"ai_answer,omitempty"`
}

type ShoppingListResponse struct {
	ID        string                      `json:"id"`
	UserID    string                      `json:"user_id"`
	Title     string                      `json:"title"`
	IsPublic  bool                        `json:"is_public"`
	AIPrompt  *string                     `json:"ai_prompt"`
	AIAnswer  *string                     `json:"ai_answer"`
	Items     []*ShoppingListItemResponse `json:"items"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
}

type CreateShoppingListItemRequest struct {
	ProductAPIID string `json:"product_api_id" validate:"required,max=255"`
	ProductName  string `json:"product_name" validate:"required,max=255"`
	Amount       *int   `json:"amount,omitempty" validate:"omitempty,min=1"`
	IsChecked    *bool  `json:"is_checked,omitempty"`
}

type UpdateShoppingListItemRequest struct {
	ProductAPIID *string `json:"product_api_id,omitempty" validate:"omitempty,min=1,max=255"`
	ProductName  *string `json:"product_name,omitempty" validate:"omitempty,min=1,max=255"`
	Amount       *int    `json:"amount,omitempty" validate:"omitempty,min=1"`
	IsChecked    *bool   `json:"is_checked,omitempty"`
}

type ShoppingListItemResponse struct {
	ID             string    `json:"id"`
	ShoppingListID string    `json:"shopping_list_id"`
	ProductAPIID   string    `json:"product_api_id"`
	ProductName    string    `json:"product_name"`
	Amount         int       `json:"amount"`
	IsChecked      bool      `json:"is_checked"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewShoppingListResponse(l *models.ShoppingList) *ShoppingListResponse {
	items := make([]*ShoppingListItemResponse, 0, len(l.Items))
	for i := range l.Items {
		items = append(items, NewShoppingListItemResponse(&l.Items[i]))
	}
	return &ShoppingListResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Title:     l.Title,
		IsPublic:  l.IsPublic,
		AIPrompt:  l.AIPrompt,
		AIAnswer:  l.AIAnswer,
		Items:     items,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func NewShoppingListItemResponse(i *models.ShoppingListItem) *ShoppingListItemResponse {
	return &ShoppingListItemResponse{
		ID:             i.ID,
		ShoppingListID: i.ShoppingListID,
		ProductAPIID:   i.ProductAPIID,
		ProductName:    i.ProductName,
		Amount:         i.Amount,
		IsChecked:      i.IsChecked,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
