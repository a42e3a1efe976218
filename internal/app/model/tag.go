package model

import (
	"time"

	"gorm.io/gorm"
)

// Tag represents a label that can be attached to products
type Tag struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(50);not null" json:"name"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Products []ProductTag `gorm:"foreignKey:TagID" json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}
