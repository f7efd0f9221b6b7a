package models

// PinnedStore is unique per (user, store) among active rows.
type PinnedStore struct {
	BaseModelWithDeleted
	UserID     string `gorm:"type:uuid;not null;index"`
	StoreAPIID string `gorm:"column:store_api_id;size:100;not null"`
	StoreName  string `gorm:"size:255;not null"`
}

type PinnedPlace struct {
	BaseModelWithDeleted
	UserID     string `gorm:"type:uuid;not null;index"`
	PlaceAPIID string `gorm:"column:place_api_id;size:255;not null"`
	PlaceName  string `gorm:"size:255;not null"`
}
