package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StoreProduct is one row of the store/product many-to-many relation. The
// (StoreID, ProductID) pair is indexed from both sides; the surrogate ID keeps
// rows addressable when the same pair is associated more than once.
type StoreProduct struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	StoreID   uint            `gorm:"not null;index:idx_store_products_store;index:idx_store_products_pair,priority:1" json:"storeId"`
	ProductID uint            `gorm:"not null;index:idx_store_products_product;index:idx_store_products_pair,priority:2" json:"productId"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	CreatedAt time.Time       `json:"-"`
}

func (StoreProduct) TableName() string {
	return "store_products"
}
