package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/service"
	apperrors "github.com/ikkim/marketplace-api/internal/errors"
	"github.com/ikkim/marketplace-api/internal/middleware"
)

type ProductController struct {
	productService  service.ProductService
	relationService service.RelationService
}

func NewProductController(productService service.ProductService, relationService service.RelationService) *ProductController {
	return &ProductController{
		productService:  productService,
		relationService: relationService,
	}
}

// ListProducts returns every product
// GET /ProductItems
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	products, err := ctrl.productService.ListProducts()
	if err != nil {
		respondServiceError(c, err, "list products", nil)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product
// GET /ProductItems/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProduct(id)
	if err != nil {
		respondServiceError(c, err, "get product", map[string]interface{}{"product_id": id})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product; the body id is ignored
// POST /ProductItems
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req dto.ProductDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product payload", map[string]interface{}{"error": err.Error()})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	product, err := ctrl.productService.CreateProduct(req)
	if err != nil {
		respondCreateError(c, err, "product")
		return
	}

	log.Info("Product created", map[string]interface{}{"product_id": product.ID})
	created(c, "ProductItems", product.ID, product)
}

// UpdateProduct overwrites the scalar fields of a product
// PUT /ProductItems/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ProductDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	if err := ctrl.productService.UpdateProduct(id, req); err != nil {
		respondServiceError(c, err, "update product", map[string]interface{}{"product_id": id})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProduct removes a product. Its association rows are left in place.
// DELETE /ProductItems/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		respondServiceError(c, err, "delete product", map[string]interface{}{"product_id": id})
		return
	}

	middleware.GetLoggerFromContext(c).Info("Product deleted", map[string]interface{}{"product_id": id})
	c.Status(http.StatusNoContent)
}

// ListStores returns the stores selling a product
// GET /ProductItems/:id/stores
func (ctrl *ProductController) ListStores(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stores, err := ctrl.relationService.ListProductStores(id)
	if err != nil {
		respondServiceError(c, err, "list product stores", map[string]interface{}{"product_id": id})
		return
	}
	c.JSON(http.StatusOK, stores)
}

// ListTags returns the tags attached to a product
// GET /ProductItems/:id/tags
func (ctrl *ProductController) ListTags(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	tags, err := ctrl.relationService.ListProductTags(id)
	if err != nil {
		respondServiceError(c, err, "list product tags", map[string]interface{}{"product_id": id})
		return
	}
	c.JSON(http.StatusOK, tags)
}

// AddStore offers the product in a store at the body price
// PUT /ProductItems/:id/AddStore/:storeId
func (ctrl *ProductController) AddStore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	storeID, ok := parseID(c, "storeId")
	if !ok {
		return
	}
	req, ok := bindAssociation(c, storeID)
	if !ok {
		return
	}

	fields := map[string]interface{}{"product_id": id, "store_id": storeID}
	if _, err := ctrl.relationService.AddStoreToProduct(id, storeID, req.Price); err != nil {
		respondServiceError(c, err, "add store to product", fields)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddTag attaches a tag to the product
// PUT /ProductItems/:id/AddTag/:tagId
func (ctrl *ProductController) AddTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseID(c, "tagId")
	if !ok {
		return
	}
	if _, ok := bindAssociation(c, tagID); !ok {
		return
	}

	fields := map[string]interface{}{"product_id": id, "tag_id": tagID}
	if _, err := ctrl.relationService.AddTagToProduct(id, tagID); err != nil {
		respondServiceError(c, err, "add tag to product", fields)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveStore stops offering the product in a store
// DELETE /ProductItems/:id/RemoveStore/:storeId
func (ctrl *ProductController) RemoveStore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	storeID, ok := parseID(c, "storeId")
	if !ok {
		return
	}

	if err := ctrl.relationService.RemoveStoreFromProduct(id, storeID); err != nil {
		respondServiceError(c, err, "remove store from product", map[string]interface{}{
			"product_id": id,
			"store_id":   storeID,
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveTag detaches a tag from the product
// DELETE /ProductItems/:id/RemoveTag/:tagId
func (ctrl *ProductController) RemoveTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseID(c, "tagId")
	if !ok {
		return
	}

	if err := ctrl.relationService.RemoveTagFromProduct(id, tagID); err != nil {
		respondServiceError(c, err, "remove tag from product", map[string]interface{}{
			"product_id": id,
			"tag_id":     tagID,
		})
		return
	}
	c.Status(http.StatusNoContent)
}
