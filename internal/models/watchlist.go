package models

import "time"

type WatchlistItem struct {
	BaseModelWithDeleted
	UserID         string `gorm:"type:uuid;not null;index"`
	ProductAPIID   string `gorm:"column:product_api_id;size:255;not null"`
	ProductName    string `gorm:"size:255;not null"`
	LastNotifiedAt *time.Time
}
