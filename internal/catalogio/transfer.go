package catalogio

import (
	"fmt"

	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/service"
	"github.com/ikkim/marketplace-api/pkg/logger"
)

// Services is the subset of the catalog a transfer goes through. Nothing
// here touches the database directly.
type Services struct {
	Products  service.ProductService
	Stores    service.StoreService
	Tags      service.TagService
	Relations service.RelationService
}

// ImportResult counts what Import created.
type ImportResult struct {
	Stores        int
	Products      int
	Tags          int
	StoreProducts int
	ProductTags   int
	Skipped       int // association rows naming an id absent from the workbook
}

// Export snapshots the live catalog. Association rows whose counterpart no
// longer resolves are left out.
func Export(svc Services) (Catalog, error) {
	var cat Catalog
	var err error

	if cat.Stores, err = svc.Stores.ListStores(); err != nil {
		return Catalog{}, fmt.Errorf("failed to list stores: %w", err)
	}
	if cat.Products, err = svc.Products.ListProducts(); err != nil {
		return Catalog{}, fmt.Errorf("failed to list products: %w", err)
	}
	if cat.Tags, err = svc.Tags.ListTags(); err != nil {
		return Catalog{}, fmt.Errorf("failed to list tags: %w", err)
	}

	for _, p := range cat.Products {
		offers, err := svc.Relations.ListProductOffers(p.ID)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to list offers of product %d: %w", p.ID, err)
		}
		cat.StoreProducts = append(cat.StoreProducts, offers...)

		tags, err := svc.Relations.ListProductTags(p.ID)
		if err != nil {
			return Catalog{}, fmt.Errorf("failed to list tags of product %d: %w", p.ID, err)
		}
		for _, t := range tags {
			cat.ProductTags = append(cat.ProductTags, dto.ProductTagDTO{ProductID: p.ID, TagID: t.ID})
		}
	}
	return cat, nil
}

// Import creates every entity of cat through the services, then links the
// associations using the ids the database assigned. It stops at the first
// error; rows already created stay.
func Import(svc Services, cat Catalog) (ImportResult, error) {
	var result ImportResult

	storeIDs := make(map[uint]uint, len(cat.Stores))
	for _, s := range cat.Stores {
		created, err := svc.Stores.CreateStore(s)
		if err != nil {
			return result, fmt.Errorf("failed to create store %q: %w", s.Name, err)
		}
		storeIDs[s.ID] = created.ID
		result.Stores++
	}

	productIDs := make(map[uint]uint, len(cat.Products))
	for _, p := range cat.Products {
		created, err := svc.Products.CreateProduct(p)
		if err != nil {
			return result, fmt.Errorf("failed to create product %q: %w", p.Name, err)
		}
		productIDs[p.ID] = created.ID
		result.Products++
	}

	tagIDs := make(map[uint]uint, len(cat.Tags))
	for _, t := range cat.Tags {
		created, err := svc.Tags.CreateTag(t)
		if err != nil {
			return result, fmt.Errorf("failed to create tag %q: %w", t.Name, err)
		}
		tagIDs[t.ID] = created.ID
		result.Tags++
	}

	for _, sp := range cat.StoreProducts {
		storeID, okStore := storeIDs[sp.StoreID]
		productID, okProduct := productIDs[sp.ProductID]
		if !okStore || !okProduct {
			logger.Warn("Skipping store/product row with unknown id", map[string]interface{}{
				"store_id":   sp.StoreID,
				"product_id": sp.ProductID,
			})
			result.Skipped++
			continue
		}
		if _, err := svc.Relations.AddStoreToProduct(productID, storeID, sp.Price); err != nil {
			return result, fmt.Errorf("failed to link store %d and product %d: %w", sp.StoreID, sp.ProductID, err)
		}
		result.StoreProducts++
	}

	for _, pt := range cat.ProductTags {
		productID, okProduct := productIDs[pt.ProductID]
		tagID, okTag := tagIDs[pt.TagID]
		if !okProduct || !okTag {
			logger.Warn("Skipping product/tag row with unknown id", map[string]interface{}{
				"product_id": pt.ProductID,
				"tag_id":     pt.TagID,
			})
			result.Skipped++
			continue
		}
		if _, err := svc.Relations.AddTagToProduct(productID, tagID); err != nil {
			return result, fmt.Errorf("failed to link product %d and tag %d: %w", pt.ProductID, pt.TagID, err)
		}
		result.ProductTags++
	}

	logger.Info("Catalog imported", map[string]interface{}{
		"stores":         result.Stores,
		"products":       result.Products,
		"tags":           result.Tags,
		"store_products": result.StoreProducts,
		"product_tags":   result.ProductTags,
		"skipped":        result.Skipped,
	})
	return result, nil
}
