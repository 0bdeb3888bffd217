package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The admin frontend maps these codes to
// its own copy; the Message field carries the default Spanish text.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // session required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // bad username/password
	AuthSessionExpired     = "AUTH_SESSION_EXPIRED"     // session token expired
	AuthSessionInvalid     = "AUTH_SESSION_INVALID"     // malformed or forged token

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidSlug   = "VALIDATION_INVALID_SLUG"   // slug fails ^[a-z0-9-]+$
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationRequired      = "VALIDATION_REQUIRED"
	ValidationInvalidStatus = "VALIDATION_INVALID_STATUS"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"
	ProductSlugExists      = "PRODUCT_SLUG_EXISTS"      // duplicate slug
	ProductInvalidCategory = "PRODUCT_INVALID_CATEGORY" // category not in taxonomy

	// ==================== Clients (CLIENT_) ====================
	ClientNotFound      = "CLIENT_NOT_FOUND"
	ClientInvalidStatus = "CLIENT_INVALID_STATUS" // not pending/contacted/converted

	// ==================== Images (IMAGE_) ====================
	ImageInvalidFile   = "IMAGE_INVALID_FILE"   // undecodable upload
	ImageInvalidOrder  = "IMAGE_INVALID_ORDER"  // reorder list is not a permutation
	ImageStorageFailed = "IMAGE_STORAGE_FAILED" // file system operation failed

	// ==================== Config (CONFIG_) ====================
	ConfigNotFound = "CONFIG_NOT_FOUND"
	ConfigTimeout  = "CONFIG_TIMEOUT" // bounded read exceeded its budget

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalConfigError   = "INTERNAL_CONFIG_ERROR" // required env value missing
)
