package service

import (
	"errors"

	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/model"
	"github.com/ikkim/marketplace-api/internal/app/repository"
	"github.com/ikkim/marketplace-api/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrAssociationNotFound = errors.New("association not found")

// StoreProductLink is the result of one store/product association: the row
// and both parents, each with the row present in its collection.
type StoreProductLink struct {
	Association *model.StoreProduct
	Product     *model.Product
	Store       *model.Store
}

// ProductTagLink is the product/tag counterpart of StoreProductLink.
type ProductTagLink struct {
	Association *model.ProductTag
	Product     *model.Product
	Tag         *model.Tag
}

// DanglingReport counts association rows whose parent no longer resolves.
type DanglingReport struct {
	StoreProducts int64
	ProductTags   int64
}

func (r DanglingReport) Total() int64 {
	return r.StoreProducts + r.ProductTags
}

type RelationOptions struct {
	// UpsertStoreProducts updates the price of an existing store/product row
	// instead of inserting a second row for the same pair.
	UpsertStoreProducts bool
}

// RelationService manages the many-to-many associations between products
// and stores and between products and tags.
type RelationService interface {
	AddStoreToProduct(productID, storeID uint, price decimal.Decimal) (*StoreProductLink, error)
	AddProductToStore(storeID, productID uint, price decimal.Decimal) (*StoreProductLink, error)
	AddTagToProduct(productID, tagID uint) (*ProductTagLink, error)
	RemoveStoreFromProduct(productID, storeID uint) error
	RemoveTagFromProduct(productID, tagID uint) error

	ListProductStores(productID uint) ([]dto.StoreDTO, error)
	ListStoreProducts(storeID uint) ([]dto.ProductDTO, error)
	ListProductTags(productID uint) ([]dto.TagDTO, error)
	ListTagProducts(tagID uint) ([]dto.ProductDTO, error)
	ListProductOffers(productID uint) ([]dto.StoreProductDTO, error)

	AuditDangling() (DanglingReport, error)
}

type relationService struct {
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
	tagRepo      repository.TagRepository
	relationRepo repository.RelationRepository
	opts         RelationOptions
}

func NewRelationService(
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	tagRepo repository.TagRepository,
	relationRepo repository.RelationRepository,
	opts RelationOptions,
) RelationService {
	return &relationService{
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		tagRepo:      tagRepo,
		relationRepo: relationRepo,
		opts:         opts,
	}
}

// AddStoreToProduct resolves the product, then the store. Nothing is written
// unless both exist.
func (s *relationService) AddStoreToProduct(productID, storeID uint, price decimal.Decimal) (*StoreProductLink, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, translateLookup(err, ErrProductNotFound)
	}
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		return nil, translateLookup(err, ErrStoreNotFound)
	}
	return s.linkStoreProduct(product, store, price)
}

// AddProductToStore is AddStoreToProduct resolved from the store side.
func (s *relationService) AddProductToStore(storeID, productID uint, price decimal.Decimal) (*StoreProductLink, error) {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		return nil, translateLookup(err, ErrStoreNotFound)
	}
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, translateLookup(err, ErrProductNotFound)
	}
	return s.linkStoreProduct(product, store, price)
}

func (s *relationService) linkStoreProduct(product *model.Product, store *model.Store, price decimal.Decimal) (*StoreProductLink, error) {
	var err error
	if product.Stores, err = s.relationRepo.FindStoreProductsByProduct(product.ID); err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}
	if store.Products, err = s.relationRepo.FindStoreProductsByStore(store.ID); err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	if s.opts.UpsertStoreProducts {
		link, err := s.repriceStoreProduct(product, store, price)
		if link != nil || err != nil {
			return link, err
		}
	}

	sp := &model.StoreProduct{
		StoreID:   store.ID,
		ProductID: product.ID,
		Price:     price,
	}
	if err := s.relationRepo.CreateStoreProduct(sp); err != nil {
		logger.Error("Failed to associate store and product", err, map[string]interface{}{
			"store_id":   store.ID,
			"product_id": product.ID,
		})
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	product.Stores = append(product.Stores, *sp)
	store.Products = append(store.Products, *sp)

	logger.Info("Store and product associated", map[string]interface{}{
		"association_id": sp.ID,
		"store_id":       store.ID,
		"product_id":     product.ID,
		"price":          price.String(),
	})
	return &StoreProductLink{Association: sp, Product: product, Store: store}, nil
}

// repriceStoreProduct updates the oldest row of the pair in place. A nil link
// with a nil error means there is no row yet.
func (s *relationService) repriceStoreProduct(product *model.Product, store *model.Store, price decimal.Decimal) (*StoreProductLink, error) {
	existing, err := s.relationRepo.FindStoreProduct(store.ID, product.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	outcome, err := s.relationRepo.UpdateStoreProductPrice(existing.ID, price)
	if err != nil {
		return nil, err
	}
	if outcome == repository.UpdateConflict {
		// removed between lookup and update; fall back to inserting
		return nil, nil
	}

	existing.Price = price
	replacePrice(product.Stores, existing.ID, price)
	replacePrice(store.Products, existing.ID, price)

	logger.Info("Store/product price updated", map[string]interface{}{
		"association_id": existing.ID,
		"store_id":       store.ID,
		"product_id":     product.ID,
		"price":          price.String(),
	})
	return &StoreProductLink{Association: existing, Product: product, Store: store}, nil
}

func replacePrice(rows []model.StoreProduct, id uint, price decimal.Decimal) {
	for i := range rows {
		if rows[i].ID == id {
			rows[i].Price = price
		}
	}
}

func (s *relationService) AddTagToProduct(productID, tagID uint) (*ProductTagLink, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, translateLookup(err, ErrProductNotFound)
	}
	tag, err := s.tagRepo.FindByID(tagID)
	if err != nil {
		return nil, translateLookup(err, ErrTagNotFound)
	}

	if product.Tags, err = s.relationRepo.FindProductTagsByProduct(product.ID); err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}
	if tag.Products, err = s.relationRepo.FindProductTagsByTag(tag.ID); err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	pt := &model.ProductTag{ProductID: product.ID, TagID: tag.ID}
	if err := s.relationRepo.CreateProductTag(pt); err != nil {
		logger.Error("Failed to associate product and tag", err, map[string]interface{}{
			"product_id": product.ID,
			"tag_id":     tag.ID,
		})
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	product.Tags = append(product.Tags, *pt)
	tag.Products = append(tag.Products, *pt)

	logger.Info("Product and tag associated", map[string]interface{}{
		"association_id": pt.ID,
		"product_id":     product.ID,
		"tag_id":         tag.ID,
	})
	return &ProductTagLink{Association: pt, Product: product, Tag: tag}, nil
}

func (s *relationService) RemoveStoreFromProduct(productID, storeID uint) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return translateLookup(err, ErrProductNotFound)
	}

	removed, err := s.relationRepo.DeleteStoreProduct(storeID, productID)
	if err != nil {
		return translateLookup(err, ErrAssociationNotFound)
	}
	if removed == 0 {
		return ErrAssociationNotFound
	}

	logger.Info("Store and product dissociated", map[string]interface{}{
		"store_id":   storeID,
		"product_id": productID,
		"rows":       removed,
	})
	return nil
}

func (s *relationService) RemoveTagFromProduct(productID, tagID uint) error {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return translateLookup(err, ErrProductNotFound)
	}

	removed, err := s.relationRepo.DeleteProductTag(productID, tagID)
	if err != nil {
		return translateLookup(err, ErrAssociationNotFound)
	}
	if removed == 0 {
		return ErrAssociationNotFound
	}
	return nil
}

// ListProductStores returns the stores selling a product in association
// order. Rows pointing at a store that no longer resolves are skipped.
func (s *relationService) ListProductStores(productID uint) ([]dto.StoreDTO, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, translateLookup(err, ErrProductNotFound)
	}

	rows, err := s.relationRepo.FindStoreProductsByProduct(productID)
	if err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	stores := make([]dto.StoreDTO, 0, len(rows))
	for _, row := range rows {
		store, err := s.storeRepo.FindByID(row.StoreID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("Skipping dangling store association", map[string]interface{}{
				"association_id": row.ID,
				"store_id":       row.StoreID,
			})
			continue
		}
		if err != nil {
			return nil, translateLookup(err, ErrStoreNotFound)
		}
		stores = append(stores, dto.FromStore(store))
	}
	return stores, nil
}

func (s *relationService) ListStoreProducts(storeID uint) ([]dto.ProductDTO, error) {
	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		return nil, translateLookup(err, ErrStoreNotFound)
	}

	rows, err := s.relationRepo.FindStoreProductsByStore(storeID)
	if err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	return s.resolveProducts(ids)
}

func (s *relationService) ListProductTags(productID uint) ([]dto.TagDTO, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, translateLookup(err, ErrProductNotFound)
	}

	rows, err := s.relationRepo.FindProductTagsByProduct(productID)
	if err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	tags := make([]dto.TagDTO, 0, len(rows))
	for _, row := range rows {
		tag, err := s.tagRepo.FindByID(row.TagID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, translateLookup(err, ErrTagNotFound)
		}
		tags = append(tags, dto.FromTag(tag))
	}
	return tags, nil
}

func (s *relationService) ListTagProducts(tagID uint) ([]dto.ProductDTO, error) {
	if _, err := s.tagRepo.FindByID(tagID); err != nil {
		return nil, translateLookup(err, ErrTagNotFound)
	}

	rows, err := s.relationRepo.FindProductTagsByTag(tagID)
	if err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	return s.resolveProducts(ids)
}

// ListProductOffers returns the association rows of a product, price
// included, whose store still resolves.
func (s *relationService) ListProductOffers(productID uint) ([]dto.StoreProductDTO, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, translateLookup(err, ErrProductNotFound)
	}

	rows, err := s.relationRepo.FindStoreProductsByProduct(productID)
	if err != nil {
		return nil, translateLookup(err, ErrAssociationNotFound)
	}

	offers := make([]dto.StoreProductDTO, 0, len(rows))
	for i := range rows {
		ok, err := s.storeRepo.Exists(rows[i].StoreID)
		if err != nil {
			return nil, translateLookup(err, ErrStoreNotFound)
		}
		if ok {
			offers = append(offers, dto.FromStoreProduct(&rows[i]))
		}
	}
	return offers, nil
}

// resolveProducts re-fetches each product by id, dropping ids that no longer
// resolve.
func (s *relationService) resolveProducts(ids []uint) ([]dto.ProductDTO, error) {
	products := make([]dto.ProductDTO, 0, len(ids))
	for _, id := range ids {
		product, err := s.productRepo.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("Skipping dangling product association", map[string]interface{}{
				"product_id": id,
			})
			continue
		}
		if err != nil {
			return nil, translateLookup(err, ErrProductNotFound)
		}
		products = append(products, dto.FromProduct(product))
	}
	return products, nil
}

func (s *relationService) AuditDangling() (DanglingReport, error) {
	var report DanglingReport
	var err error

	if report.StoreProducts, err = s.relationRepo.CountDanglingStoreProducts(); err != nil {
		return report, translateLookup(err, ErrAssociationNotFound)
	}
	if report.ProductTags, err = s.relationRepo.CountDanglingProductTags(); err != nil {
		return report, translateLookup(err, ErrAssociationNotFound)
	}
	return report, nil
}
