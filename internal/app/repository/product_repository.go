package repository

import (
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/ikkim/marketplace-api/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) (UpdateOutcome, error)
	Delete(id uint) error
	Exists(id uint) (bool, error)
}

type productRepository struct {
	table table[model.Product]
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{table: newTable[model.Product](db, "product")}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":       product.Name,
		"shelf_life": product.ShelfLife,
	})

	if err := r.table.create(product); err != nil {
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.table.findAll()
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})
	return r.table.findByID(id)
}

// Update rewrites the scalar columns only; relationship rows are untouched.
func (r *productRepository) Update(product *model.Product) (UpdateOutcome, error) {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"shelf_life": product.ShelfLife,
	})

	return r.table.updateColumns(product.ID, map[string]interface{}{
		"name":       product.Name,
		"shelf_life": product.ShelfLife,
	})
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})
	return r.table.delete(id)
}

func (r *productRepository) Exists(id uint) (bool, error) {
	return r.table.exists(id)
}
