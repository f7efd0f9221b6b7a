package models

import "gorm.io/datatypes"

type Notification struct {
	BaseModelWithDeleted
	UserID              string  `gorm:"type:uuid;not null;index"`
	Message             string  `gorm:"type:text;not null"`
	IsRead              bool    `gorm:"not null"`
	RelatedProductAPIID *string `gorm:"column:related_product_api_id"`
	RelatedStoreAPIID   *string `gorm:"column:related_store_api_id"`
	Payload             datatypes.JSON
}
