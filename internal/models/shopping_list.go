package models

type ShoppingList struct {
	BaseModelWithDeleted
	UserID   string `gorm:"type:uuid;not null;index"`
	Title    string `gorm:"size:255;not null"`
	IsPublic bool   `gorm:"not null;index"`
	AIPrompt *string
	AIAnswer *string

	Items []ShoppingListItem `gorm:"foreignKey:ShoppingListID"`
}

type ShoppingListItem struct {
	BaseModelWithDeleted
	ShoppingListID string `gorm:"type:uuid;not null;index"`
	ProductAPIID   string `gorm:"column:product_api_id;size:255;not null"`
	ProductName    string `gorm:"size:255;not null"`
	Amount         int    `gorm:"not null"`
	IsChecked      bool   `gorm:"not null"`

	ShoppingList *ShoppingList `gorm:"foreignKey:ShoppingListID"`
}
