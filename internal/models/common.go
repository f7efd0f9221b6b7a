package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

// BeforeCreate assigns the id on the application side so inserts never depend
// on a database extension for uuid generation.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// BaseModelWithDeleted adds the soft-delete tombstone. gorm applies
// "deleted_at IS NULL" to every query unless Unscoped is used.
type BaseModelWithDeleted struct {
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
