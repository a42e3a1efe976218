package controller

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/app/service"
	apperrors "github.com/ikkim/marketplace-api/internal/errors"
	"github.com/ikkim/marketplace-api/internal/middleware"
)

// parseID reads a positive integer path parameter. On failure it writes a
// 400 and returns false.
func parseID(c *gin.Context, param string) (uint, bool) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+param+": "+raw)
		return 0, false
	}
	return uint(id), true
}

// bindAssociation reads the optional AddStore/AddProduct/AddTag body. An
// empty body associates at price zero; a present body must repeat the
// counterpart id from the URL.
func bindAssociation(c *gin.Context, counterpartID uint) (dto.AssociationRequest, bool) {
	var req dto.AssociationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return dto.AssociationRequest{ID: counterpartID}, true
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return req, false
	}
	if req.ID != counterpartID {
		apperrors.BadRequest(c, apperrors.ValidationIDMismatch, "Body id does not match the id in the URL")
		return req, false
	}
	return req, true
}

// respondServiceError maps a service error onto the HTTP contract.
// action names the failed operation for the log and the parsed message.
func respondServiceError(c *gin.Context, err error, action string, fields map[string]interface{}) {
	log := middleware.GetLoggerFromContext(c)

	switch {
	case errors.Is(err, service.ErrProductNotFound):
		log.Warn(action+": product not found", fields)
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrStoreNotFound):
		log.Warn(action+": store not found", fields)
		apperrors.NotFound(c, apperrors.StoreNotFound, "Store not found")
	case errors.Is(err, service.ErrTagNotFound):
		log.Warn(action+": tag not found", fields)
		apperrors.NotFound(c, apperrors.TagNotFound, "Tag not found")
	case errors.Is(err, service.ErrAssociationNotFound):
		log.Warn(action+": association not found", fields)
		apperrors.NotFound(c, apperrors.AssociationNotFound, "Association not found")
	case errors.Is(err, service.ErrIDMismatch):
		log.Warn(action+": id mismatch", fields)
		apperrors.BadRequest(c, apperrors.ValidationIDMismatch, "Body id does not match the id in the URL")
	case errors.Is(err, service.ErrTableUnavailable):
		log.Error(action+": catalog table unavailable", err, fields)
		apperrors.NotFound(c, apperrors.CatalogUnavailable, "Catalog table is not available")
	case errors.Is(err, service.ErrConcurrencyConflict):
		log.Error(action+": concurrency conflict", err, fields)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalConcurrency, "The record was modified concurrently")
	default:
		log.Error(action+" failed", err, fields)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, action)
	}
}

// respondCreateError is respondServiceError for POST: an unavailable table
// answers with a 500 problem body instead of a 404.
func respondCreateError(c *gin.Context, err error, kind string) {
	if errors.Is(err, service.ErrTableUnavailable) {
		middleware.GetLoggerFromContext(c).Error("Create "+kind+": catalog table unavailable", err)
		apperrors.Problem(c, http.StatusInternalServerError,
			"Entity set '"+kind+"' is null.", "The "+kind+" table is not available")
		return
	}
	respondServiceError(c, err, "create "+kind, nil)
}

// created writes 201 with a Location header pointing at the new resource.
func created(c *gin.Context, collection string, id uint, body interface{}) {
	c.Header("Location", "/"+collection+"/"+strconv.FormatUint(uint64(id), 10))
	c.JSON(http.StatusCreated, body)
}
