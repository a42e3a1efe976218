package model

import "time"

// ProductTag is one row of the product/tag many-to-many relation.
type ProductTag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	ProductID uint      `gorm:"not null;index:idx_product_tags_product;index:idx_product_tags_pair,priority:1" json:"productId"`
	TagID     uint      `gorm:"not null;index:idx_product_tags_tag;index:idx_product_tags_pair,priority:2" json:"tagId"`
	CreatedAt time.Time `json:"-"`
}

func (ProductTag) TableName() string {
	return "product_tags"
}
