package errors

// Error codes returned in the "error" field of every error response.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map messages from these codes.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed body
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // path id is not a positive integer
	ValidationIDMismatch   = "VALIDATION_ID_MISMATCH"   // body id differs from path id
	ValidationRequired     = "VALIDATION_REQUIRED"      // required column missing

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	ProductNotFound     = "PRODUCT_NOT_FOUND"
	StoreNotFound       = "STORE_NOT_FOUND"
	TagNotFound         = "TAG_NOT_FOUND"
	AssociationNotFound = "ASSOCIATION_NOT_FOUND"
	CatalogUnavailable  = "CATALOG_UNAVAILABLE" // backing table not initialized

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalConcurrency   = "INTERNAL_CONCURRENCY_CONFLICT" // row changed under an update
)
