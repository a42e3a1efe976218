package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		context  string
		wantCode string
	}{
		{"nil error", nil, "product", InternalServerError},
		{"product not found", gorm.ErrRecordNotFound, "get product", ProductNotFound},
		{"wrapped store not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), "store", StoreNotFound},
		{"tag not found", gorm.ErrRecordNotFound, "tag", TagNotFound},
		{"association not found", gorm.ErrRecordNotFound, "store product", AssociationNotFound},
		{"unknown resource not found", gorm.ErrRecordNotFound, "", ResourceNotFound},
		{"postgres unique", stderrors.New(`ERROR: duplicate key value violates unique constraint "stores_pkey" (SQLSTATE 23505)`), "create store", ResourceAlreadyExists},
		{"sqlite unique", stderrors.New("UNIQUE constraint failed: tags.id"), "create tag", ResourceAlreadyExists},
		{"postgres fk store", stderrors.New(`insert or update on table "store_products" violates foreign key constraint "fk_store_products_store_id"`), "associate", StoreNotFound},
		{"sqlite fk", stderrors.New("FOREIGN KEY constraint failed"), "associate", ResourceNotFound},
		{"fk still referenced", stderrors.New(`update or delete on table "products" violates foreign key constraint on table "product_tags" ... is still referenced`), "delete product", ResourceConflict},
		{"sqlite not null", stderrors.New("NOT NULL constraint failed: stores.currency"), "create store", ValidationRequired},
		{"postgres not null", stderrors.New(`null value in column "name" of relation "products" violates not-null constraint`), "create product", ValidationRequired},
		{"connection refused", stderrors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), "product", InternalDatabaseError},
		{"unknown", stderrors.New("boom"), "update product", InternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.Message)
			if tt.err != nil {
				assert.NotContains(t, info.Message, "SQLSTATE")
			}
		})
	}
}

func TestParseError_Messages(t *testing.T) {
	assert.Equal(t, "The product was not found", ParseError(gorm.ErrRecordNotFound, "product").Message)
	assert.Equal(t, "currency is required", ParseError(stderrors.New("NOT NULL constraint failed: stores.currency"), "").Message)
	assert.Equal(t, "Failed to update the store. Please try again later", ParseError(stderrors.New("boom"), "update store").Message)
}

func TestParseAndRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ParseAndRespond(c, http.StatusNotFound, gorm.ErrRecordNotFound, "tag")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TagNotFound, body.Error)
}
