package model

import (
	"time"

	"gorm.io/gorm"
)

// Product is a sellable item. Its relationship slices are filled only by the
// relation manager and are never serialized.
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	ShelfLife int            `gorm:"not null;default:0" json:"shelfLife"` // time-to-perish units
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Stores []StoreProduct `gorm:"foreignKey:ProductID" json:"-"`
	Tags   []ProductTag   `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
