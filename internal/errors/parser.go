package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a code and a client-safe message.
type ErrorInfo struct {
	Code    string // see codes.go
	Message string
}

// ParseError turns a persistence error into an ErrorInfo without leaking
// driver details. context names the resource or action ("product", "create
// store") and picks the wording.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM sentinels
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: getNotFoundMessage(context),
		}
	}

	// 2. Constraint violations. Postgres and sqlite word them differently.

	// 2-1. unique (postgres 23505 / sqlite "UNIQUE constraint failed")
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "The " + resourceName(context) + " already exists",
		}
	}

	// 2-2. foreign key (postgres 23503 / sqlite "FOREIGN KEY constraint failed")
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower, context)
	}

	// 2-3. not null (postgres 23502 / sqlite "NOT NULL constraint failed")
	if strings.Contains(errStrLower, "not-null constraint") || strings.Contains(errStrLower, "not null constraint") {
		return parseNotNullError(errStrLower)
	}

	// 3. connectivity
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "database is locked") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The database is temporarily unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseForeignKeyError(errLower string, context string) ErrorInfo {
	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The " + resourceName(context) + " is still referenced and cannot be deleted",
		}
	}

	switch {
	case strings.Contains(errLower, "store_id"):
		return ErrorInfo{Code: StoreNotFound, Message: "The referenced store does not exist"}
	case strings.Contains(errLower, "product_id"):
		return ErrorInfo{Code: ProductNotFound, Message: "The referenced product does not exist"}
	case strings.Contains(errLower, "tag_id"):
		return ErrorInfo{Code: TagNotFound, Message: "The referenced tag does not exist"}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record does not exist",
	}
}

func parseNotNullError(errLower string) ErrorInfo {
	// sqlite: "not null constraint failed: stores.name"
	// postgres: `null value in column "name" of relation "stores" violates not-null constraint`
	for _, column := range []string{"currency", "name", "price"} {
		if strings.Contains(errLower, "."+column) || strings.Contains(errLower, `"`+column+`"`) {
			return ErrorInfo{Code: ValidationRequired, Message: column + " is required"}
		}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "A required field is missing",
	}
}

func notFoundCode(context string) string {
	switch resourceName(context) {
	case "product":
		return ProductNotFound
	case "store":
		return StoreNotFound
	case "tag":
		return TagNotFound
	case "association":
		return AssociationNotFound
	}
	return ResourceNotFound
}

func getNotFoundMessage(context string) string {
	name := resourceName(context)
	if name == "record" {
		return "The requested record was not found"
	}
	return "The " + name + " was not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)
	name := resourceName(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create the " + name + ". Please try again later"
	case strings.Contains(contextLower, "update"):
		return "Failed to update the " + name + ". Please try again later"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete the " + name + ". Please try again later"
	}
	return "An internal error occurred. Please try again later"
}

// resourceName picks the catalog resource named in context. Association
// wins over its parents so "store product" reads as an association.
func resourceName(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "association"),
		strings.Contains(contextLower, "store product"),
		strings.Contains(contextLower, "product tag"):
		return "association"
	case strings.Contains(contextLower, "product"):
		return "product"
	case strings.Contains(contextLower, "store"):
		return "store"
	case strings.Contains(contextLower, "tag"):
		return "tag"
	}
	return "record"
}

// ParseAndRespond parses err and writes it with statusCode.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}
