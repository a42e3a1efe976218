package model

import (
	"time"

	"gorm.io/gorm"
)

const DefaultCurrency = "EUR"

type Store struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Currency  string         `gorm:"type:varchar(8);not null;default:'EUR'" json:"currency"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Products sold by this store, via the store_products join table
	Products []StoreProduct `gorm:"foreignKey:StoreID" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}
