package service

import (
	"errors"

	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/ikkim/marketplace-api/internal/app/repository"
	"github.com/ikkim/marketplace-api/pkg/logger"
)

var ErrProductNotFound = errors.New("product not found")

type ProductService interface {
	ListProducts() ([]dto.ProductDTO, error)
	GetProduct(id uint) (dto.ProductDTO, error)
	CreateProduct(in dto.ProductDTO) (dto.ProductDTO, error)
	UpdateProduct(id uint, in dto.ProductDTO) error
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts() ([]dto.ProductDTO, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, translateLookup(err, ErrProductNotFound)
	}

	logger.Debug("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return dto.FromProducts(products), nil
}

func (s *productService) GetProduct(id uint) (dto.ProductDTO, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		err = translateLookup(err, ErrProductNotFound)
		if errors.Is(err, ErrProductNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
		}
		return dto.ProductDTO{}, err
	}
	return dto.FromProduct(product), nil
}

// CreateProduct ignores in.ID; the id is assigned by the store.
func (s *productService) CreateProduct(in dto.ProductDTO) (dto.ProductDTO, error) {
	product := &model.Product{
		Name:      in.Name,
		ShelfLife: in.ShelfLife,
		Stores:    []model.StoreProduct{},
		Tags:      []model.ProductTag{},
	}

	logger.Info("Creating new product", map[string]interface{}{
		"name":       product.Name,
		"shelf_life": product.ShelfLife,
	})

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return dto.ProductDTO{}, translateLookup(err, ErrProductNotFound)
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return dto.FromProduct(product), nil
}

func (s *productService) UpdateProduct(id uint, in dto.ProductDTO) error {
	if in.ID != id {
		logger.Warn("Product update id mismatch", map[string]interface{}{
			"path_id": id,
			"body_id": in.ID,
		})
		return ErrIDMismatch
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return translateLookup(err, ErrProductNotFound)
	}

	product.Name = in.Name
	product.ShelfLife = in.ShelfLife

	outcome, err := s.productRepo.Update(product)
	if err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return translateLookup(err, ErrProductNotFound)
	}
	if outcome == repository.UpdateConflict {
		return resolveConflict("product", id, s.productRepo.Exists, ErrProductNotFound)
	}

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": id,
		"name":       product.Name,
	})
	return nil
}

// DeleteProduct leaves association rows in place; traversals skip them.
func (s *productService) DeleteProduct(id uint) error {
	if err := s.productRepo.Delete(id); err != nil {
		err = translateLookup(err, ErrProductNotFound)
		if !errors.Is(err, ErrProductNotFound) {
			logger.Error("Failed to delete product", err, map[string]interface{}{
				"product_id": id,
			})
		}
		return err
	}

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
