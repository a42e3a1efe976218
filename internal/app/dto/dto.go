// Package dto holds the external representations of catalog entities.
//
// Projections copy scalar fields only. Relationship slices stay behind so the
// Product -> Store -> Product graph can never reach the JSON encoder.
package dto

import (
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/shopspring/decimal"
)

type ProductDTO struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	ShelfLife int    `json:"shelfLife"`
}

type StoreDTO struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type TagDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// StoreProductDTO is the payload view of one store/product association.
type StoreProductDTO struct {
	StoreID   uint            `json:"storeId"`
	ProductID uint            `json:"productId"`
	Price     decimal.Decimal `json:"price"`
}

type ProductTagDTO struct {
	ProductID uint `json:"productId"`
	TagID     uint `json:"tagId"`
}

// AssociationRequest is the body of the AddStore/AddProduct/AddTag
// endpoints. ID must repeat the counterpart id from the URL.
type AssociationRequest struct {
	ID    uint            `json:"id"`
	Price decimal.Decimal `json:"price"`
}

func FromProduct(p *model.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		ShelfLife: p.ShelfLife,
	}
}

func FromStore(s *model.Store) StoreDTO {
	return StoreDTO{
		ID:       s.ID,
		Name:     s.Name,
		Currency: s.Currency,
	}
}

func FromTag(t *model.Tag) TagDTO {
	return TagDTO{
		ID:   t.ID,
		Name: t.Name,
	}
}

func FromStoreProduct(sp *model.StoreProduct) StoreProductDTO {
	return StoreProductDTO{
		StoreID:   sp.StoreID,
		ProductID: sp.ProductID,
		Price:     sp.Price,
	}
}

func FromProductTag(pt *model.ProductTag) ProductTagDTO {
	return ProductTagDTO{
		ProductID: pt.ProductID,
		TagID:     pt.TagID,
	}
}

func FromProducts(products []model.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, FromProduct(&products[i]))
	}
	return out
}

func FromStores(stores []model.Store) []StoreDTO {
	out := make([]StoreDTO, 0, len(stores))
	for i := range stores {
		out = append(out, FromStore(&stores[i]))
	}
	return out
}

func FromTags(tags []model.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(tags))
	for i := range tags {
		out = append(out, FromTag(&tags[i]))
	}
	return out
}
