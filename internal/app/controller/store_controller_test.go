package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ikkim/marketplace-api/internal/app/dto"
	"github.com/ikkim/marketplace-api/internal/catalogio"
	apperrors "github.com/ikkim/marketplace-api/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestStoreController_CreateStore_DefaultCurrency(t *testing.T) {
	router := newCatalogRouter(t)

	w := doRequest(router, http.MethodPost, "/StoreItems", map[string]interface{}{"name": "Market1"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/StoreItems/1", w.Header().Get("Location"))
	assert.JSONEq(t, `{"id":1,"name":"Market1","currency":"EUR"}`, w.Body.String())
}

func TestStoreController_CRUD(t *testing.T) {
	router := newCatalogRouter(t)
	doRequest(router, http.MethodPost, "/StoreItems", dto.StoreDTO{Name: "Market1", Currency: "USD"})

	w := doRequest(router, http.MethodPut, "/StoreItems/1", dto.StoreDTO{ID: 1, Name: "Market One", Currency: "GBP"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/StoreItems/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"Market One","currency":"GBP"}`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/StoreItems", nil)
	assert.JSONEq(t, `[{"id":1,"name":"Market One","currency":"GBP"}]`, w.Body.String())

	w = doRequest(router, http.MethodPut, "/StoreItems/1", dto.StoreDTO{ID: 2, Name: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodDelete, "/StoreItems/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/StoreItems/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.StoreNotFound, decodeError(t, w).Error)
}

func TestStoreController_AddAndRemoveProduct(t *testing.T) {
	router := newCatalogRouter(t)
	doRequest(router, http.MethodPost, "/StoreItems", dto.StoreDTO{Name: "Market1"})
	createProduct(t, router, "Milk", 7)

	w := doRequest(router, http.MethodPut, "/StoreItems/1/AddProduct/1", dto.AssociationRequest{ID: 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPut, "/StoreItems/1/AddProduct/1", dto.AssociationRequest{ID: 1, Price: mustDecimal(t, "0.99")})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/ProductItems/1/stores", nil)
	assert.JSONEq(t, `[{"id":1,"name":"Market1","currency":"EUR"}]`, w.Body.String())

	w = doRequest(router, http.MethodPut, "/StoreItems/7/AddProduct/1", dto.AssociationRequest{ID: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.StoreNotFound, decodeError(t, w).Error)

	w = doRequest(router, http.MethodDelete, "/StoreItems/1/RemoveProduct/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/StoreItems/1/products", nil)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doRequest(router, http.MethodDelete, "/StoreItems/7/RemoveProduct/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.StoreNotFound, decodeError(t, w).Error)
}

func TestStoreController_ListProducts_SkipsDeletedProduct(t *testing.T) {
	router := newCatalogRouter(t)
	doRequest(router, http.MethodPost, "/StoreItems", dto.StoreDTO{Name: "Market1"})
	createProduct(t, router, "Milk", 7)
	createProduct(t, router, "Bread", 3)
	doRequest(router, http.MethodPut, "/StoreItems/1/AddProduct/1", nil)
	doRequest(router, http.MethodPut, "/StoreItems/1/AddProduct/2", nil)

	w := doRequest(router, http.MethodDelete, "/ProductItems/1", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/StoreItems/1/products", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":2,"name":"Bread","shelfLife":3}]`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/StoreItems/5/products", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagController_CRUD(t *testing.T) {
	router := newCatalogRouter(t)

	w := doRequest(router, http.MethodPost, "/TagItems", dto.TagDTO{ID: 5, Name: "dairy"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/TagItems/1", w.Header().Get("Location"))

	w = doRequest(router, http.MethodPut, "/TagItems/1", dto.TagDTO{ID: 1, Name: "fresh"})
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/TagItems", nil)
	assert.JSONEq(t, `[{"id":1,"name":"fresh"}]`, w.Body.String())

	w = doRequest(router, http.MethodPut, "/TagItems/1", dto.TagDTO{ID: 3, Name: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ValidationIDMismatch, decodeError(t, w).Error)

	w = doRequest(router, http.MethodDelete, "/TagItems/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/TagItems/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.TagNotFound, decodeError(t, w).Error)

	w = doRequest(router, http.MethodPost, "/TagItems", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportController_ExportCatalog(t *testing.T) {
	router := newCatalogRouter(t)
	doRequest(router, http.MethodPost, "/StoreItems", dto.StoreDTO{Name: "Market1", Currency: "USD"})
	createProduct(t, router, "Milk", 7)
	doRequest(router, http.MethodPut, "/ProductItems/1/AddStore/1", dto.AssociationRequest{ID: 1, Price: mustDecimal(t, "2.50")})

	w := doRequest(router, http.MethodGet, "/export.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	cat, err := catalogio.Read(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []dto.StoreDTO{{ID: 1, Name: "Market1", Currency: "USD"}}, cat.Stores)
	require.Len(t, cat.StoreProducts, 1)
	assert.True(t, cat.StoreProducts[0].Price.Equal(mustDecimal(t, "2.5")))
}

func TestExportController_TableUnavailable(t *testing.T) {
	router := setupCatalogControllerTest(t, nil)

	w := doRequest(router, http.MethodGet, "/export.xlsx", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apperrors.CatalogUnavailable, body.Error)
}
