package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/service"
	apperrors "github.com/ikkim/marketplace-api/internal/errors"
	"github.com/ikkim/marketplace-api/internal/middleware"
)

type StoreController struct {
	storeService    service.StoreService
	relationService service.RelationService
}

func NewStoreController(storeService service.StoreService, relationService service.RelationService) *StoreController {
	return &StoreController{
		storeService:    storeService,
		relationService: relationService,
	}
}

// ListStores GET /StoreItems
func (ctrl *StoreController) ListStores(c *gin.Context) {
	stores, err := ctrl.storeService.ListStores()
	if err != nil {
		respondServiceError(c, err, "list stores", nil)
		return
	}
	c.JSON(http.StatusOK, stores)
}

// GetStore GET /StoreItems/:id
func (ctrl *StoreController) GetStore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	store, err := ctrl.storeService.GetStore(id)
	if err != nil {
		respondServiceError(c, err, "get store", map[string]interface{}{"store_id": id})
		return
	}
	c.JSON(http.StatusOK, store)
}

// CreateStore POST /StoreItems
// An empty currency falls back to the configured default.
func (ctrl *StoreController) CreateStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req dto.StoreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid store payload", map[string]interface{}{"error": err.Error()})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	store, err := ctrl.storeService.CreateStore(req)
	if err != nil {
		respondCreateError(c, err, "store")
		return
	}

	log.Info("Store created", map[string]interface{}{
		"store_id": store.ID,
		"currency": store.Currency,
	})
	created(c, "StoreItems", store.ID, store)
}

// UpdateStore PUT /StoreItems/:id
func (ctrl *StoreController) UpdateStore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.StoreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	if err := ctrl.storeService.UpdateStore(id, req); err != nil {
		respondServiceError(c, err, "update store", map[string]interface{}{"store_id": id})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteStore DELETE /StoreItems/:id
func (ctrl *StoreController) DeleteStore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.storeService.DeleteStore(id); err != nil {
		respondServiceError(c, err, "delete store", map[string]interface{}{"store_id": id})
		return
	}

	middleware.GetLoggerFromContext(c).Info("Store deleted", map[string]interface{}{"store_id": id})
	c.Status(http.StatusNoContent)
}

// ListProducts returns the products sold in a store
// GET /StoreItems/:id/products
func (ctrl *StoreController) ListProducts(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	products, err := ctrl.relationService.ListStoreProducts(id)
	if err != nil {
		respondServiceError(c, err, "list store products", map[string]interface{}{"store_id": id})
		return
	}
	c.JSON(http.StatusOK, products)
}

// AddProduct PUT /StoreItems/:id/AddProduct/:productId
func (ctrl *StoreController) AddProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}
	req, ok := bindAssociation(c, productID)
	if !ok {
		return
	}

	if _, err := ctrl.relationService.AddProductToStore(id, productID, req.Price); err != nil {
		respondServiceError(c, err, "add product to store", map[string]interface{}{
			"store_id":   id,
			"product_id": productID,
		})
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveProduct DELETE /StoreItems/:id/RemoveProduct/:productId
func (ctrl *StoreController) RemoveProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	if _, err := ctrl.storeService.GetStore(id); err != nil {
		respondServiceError(c, err, "remove product from store", map[string]interface{}{"store_id": id})
		return
	}
	if err := ctrl.relationService.RemoveStoreFromProduct(productID, id); err != nil {
		respondServiceError(c, err, "remove product from store", map[string]interface{}{
			"store_id":   id,
			"product_id": productID,
		})
		return
	}
	c.Status(http.StatusNoContent)
}
