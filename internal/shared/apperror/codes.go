package apperror

const (
	// Client errors (4xx)
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeCrossTenant         = "CROSS_TENANT"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInvalidState        = "INVALID_STATE"
	CodeValidation          = "VALIDATION_ERROR"
	CodeAllocationMissing   = "ALLOCATION_MISSING"
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeNoCheckIn           = "NO_CHECK_IN"
	CodeOnApprovedLeave     = "ON_APPROVED_LEAVE"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"

	// Server errors (5xx)
	CodeStore    = "STORE_ERROR"
	CodeInternal = "INTERNAL_ERROR"
)
