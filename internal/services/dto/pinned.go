package dto

import (
	"time"

	"disccount_backend/internal/models"
)

type PinnedStoreRequest struct {
	StoreAPIID string `json:"store_api_id" validate:"required,store_chain"`
	StoreName  string `json:"store_name" validate:"required,max=255"`
}

// BulkPinnedStoresRequest replaces the whole set; an empty list clears it.
type BulkPinnedStoresRequest struct {
	Stores []PinnedStoreRequest `json:"stores" validate:"max=50,dive"`
}

type PinnedStoreResponse struct {
	ID         string    `json:"id"`
	StoreAPIID string    `json:"store_api_id"`
	StoreName  string    `json:"store_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type PinnedPlaceRequest struct {
	PlaceAPIID string `json:"place_api_id" validate:"required,max=255"`
	PlaceName  string `json:"place_name" validate:"required,max=255"`
}

type BulkPinnedPlacesRequest struct {
	Places []PinnedPlaceRequest `json:"places" validate:"max=50,dive"`
}

type PinnedPlaceResponse struct {
	ID         string    `json:"id"`
	PlaceAPIID string    `json:"place_api_id"`
	PlaceName  string    `json:"place_name"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewPinnedStoreResponse(p *models.PinnedStore) *PinnedStoreResponse {
	return &PinnedStoreResponse{ID: p.ID, StoreAPIID: p.StoreAPIID, StoreName: p.StoreName, CreatedAt: p.CreatedAt}
}

func NewPinnedPlaceResponse(p *models.PinnedPlace) *PinnedPlaceResponse {
	return &PinnedPlaceResponse{ID: p.ID, PlaceAPIID: p.PlaceAPIID, PlaceName: p.PlaceName, CreatedAt: p.CreatedAt}
}
