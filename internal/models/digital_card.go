package models

type DigitalCard struct {
	BaseModelWithDeleted
	UserID   string `gorm:"type:uuid;not null;index"`
	Title    string `gorm:"size:255;not null"`
	Type     string `gorm:"size:50;not null"`
	Value    string `gorm:"size:255;not null"`
	CodeType string `gorm:"size:50;not null"`
	Color    *string
	Note     *string
}
