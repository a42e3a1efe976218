package repository

import (
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/ikkim/marketplace-api/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RelationRepository persists the two association tables. Lookups go through
// the per-side indexes and return rows in insertion order.
type RelationRepository interface {
	CreateStoreProduct(sp *model.StoreProduct) error
	FindStoreProduct(storeID, productID uint) (*model.StoreProduct, error)
	FindStoreProductsByProduct(productID uint) ([]model.StoreProduct, error)
	FindStoreProductsByStore(storeID uint) ([]model.StoreProduct, error)
	UpdateStoreProductPrice(id uint, price decimal.Decimal) (UpdateOutcome, error)
	DeleteStoreProduct(storeID, productID uint) (int64, error)

	CreateProductTag(pt *model.ProductTag) error
	FindProductTag(productID, tagID uint) (*model.ProductTag, error)
	FindProductTagsByProduct(productID uint) ([]model.ProductTag, error)
	FindProductTagsByTag(tagID uint) ([]model.ProductTag, error)
	DeleteProductTag(productID, tagID uint) (int64, error)

	CountDanglingStoreProducts() (int64, error)
	CountDanglingProductTags() (int64, error)
}

type relationRepository struct {
	db            *gorm.DB
	storeProducts table[model.StoreProduct]
	productTags   table[model.ProductTag]
}

func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{
		db:            db,
		storeProducts: newTable[model.StoreProduct](db, "store_product"),
		productTags:   newTable[model.ProductTag](db, "product_tag"),
	}
}

func (r *relationRepository) CreateStoreProduct(sp *model.StoreProduct) error {
	logger.Debug("Creating store/product association", map[string]interface{}{
		"store_id":   sp.StoreID,
		"product_id": sp.ProductID,
		"price":      sp.Price.String(),
	})
	return r.storeProducts.create(sp)
}

// FindStoreProduct returns the oldest row for the pair.
func (r *relationRepository) FindStoreProduct(storeID, productID uint) (*model.StoreProduct, error) {
	if err := r.storeProducts.ready(); err != nil {
		return nil, err
	}

	var sp model.StoreProduct
	err := r.db.Where("store_id = ? AND product_id = ?", storeID, productID).
		Order("id ASC").
		First(&sp).Error
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *relationRepository) FindStoreProductsByProduct(productID uint) ([]model.StoreProduct, error) {
	return findRows[model.StoreProduct](r.storeProducts, "product_id = ?", productID)
}

func (r *relationRepository) FindStoreProductsByStore(storeID uint) ([]model.StoreProduct, error) {
	return findRows[model.StoreProduct](r.storeProducts, "store_id = ?", storeID)
}

func (r *relationRepository) UpdateStoreProductPrice(id uint, price decimal.Decimal) (UpdateOutcome, error) {
	logger.Debug("Updating store/product price", map[string]interface{}{
		"association_id": id,
		"price":          price.String(),
	})
	return r.storeProducts.updateColumns(id, map[string]interface{}{
		"price": price,
	})
}

// DeleteStoreProduct removes every row for the pair and reports how many
// were removed.
func (r *relationRepository) DeleteStoreProduct(storeID, productID uint) (int64, error) {
	return deleteRows[model.StoreProduct](r.storeProducts, "store_id = ? AND product_id = ?", storeID, productID)
}

func (r *relationRepository) CreateProductTag(pt *model.ProductTag) error {
	logger.Debug("Creating product/tag association", map[string]interface{}{
		"product_id": pt.ProductID,
		"tag_id":     pt.TagID,
	})
	return r.productTags.create(pt)
}

func (r *relationRepository) FindProductTag(productID, tagID uint) (*model.ProductTag, error) {
	if err := r.productTags.ready(); err != nil {
		return nil, err
	}

	var pt model.ProductTag
	err := r.db.Where("product_id = ? AND tag_id = ?", productID, tagID).
		Order("id ASC").
		First(&pt).Error
	if err != nil {
		return nil, err
	}
	return &pt, nil
}

func (r *relationRepository) FindProductTagsByProduct(productID uint) ([]model.ProductTag, error) {
	return findRows[model.ProductTag](r.productTags, "product_id = ?", productID)
}

func (r *relationRepository) FindProductTagsByTag(tagID uint) ([]model.ProductTag, error) {
	return findRows[model.ProductTag](r.productTags, "tag_id = ?", tagID)
}

func (r *relationRepository) DeleteProductTag(productID, tagID uint) (int64, error) {
	return deleteRows[model.ProductTag](r.productTags, "product_id = ? AND tag_id = ?", productID, tagID)
}

// CountDanglingStoreProducts counts rows whose store or product no longer
// resolves (hard or soft deleted).
func (r *relationRepository) CountDanglingStoreProducts() (int64, error) {
	if err := r.storeProducts.ready(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.Table("store_products AS sp").
		Joins("LEFT JOIN stores s ON s.id = sp.store_id AND s.deleted_at IS NULL").
		Joins("LEFT JOIN products p ON p.id = sp.product_id AND p.deleted_at IS NULL").
		Where("s.id IS NULL OR p.id IS NULL").
		Count(&count).Error
	return count, err
}

func (r *relationRepository) CountDanglingProductTags() (int64, error) {
	if err := r.productTags.ready(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.Table("product_tags AS pt").
		Joins("LEFT JOIN products p ON p.id = pt.product_id AND p.deleted_at IS NULL").
		Joins("LEFT JOIN tags t ON t.id = pt.tag_id AND t.deleted_at IS NULL").
		Where("p.id IS NULL OR t.id IS NULL").
		Count(&count).Error
	return count, err
}

func findRows[T any](t table[T], query string, args ...interface{}) ([]T, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}

	var rows []T
	if err := t.db.Where(query, args...).Order("id ASC").Find(&rows).Error; err != nil {
		logger.Error("Failed to find association rows", err, map[string]interface{}{
			"kind":  t.kind,
			"query": query,
		})
		return nil, err
	}
	return rows, nil
}

func deleteRows[T any](t table[T], query string, args ...interface{}) (int64, error) {
	if err := t.ready(); err != nil {
		return 0, err
	}

	result := t.db.Where(query, args...).Delete(new(T))
	if result.Error != nil {
		logger.Error("Failed to delete association rows", result.Error, map[string]interface{}{
			"kind":  t.kind,
			"query": query,
		})
		return 0, result.Error
	}

	logger.Debug("Association rows deleted", map[string]interface{}{
		"kind":  t.kind,
		"count": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
