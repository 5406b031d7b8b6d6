package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_005"
)

// User error codes (USER_*)
const (
	UserNotFound      ErrorCode = "USER_001"
	UserAlreadyExists ErrorCode = "USER_002"
	UserDeleteAdmin   ErrorCode = "USER_003"
	UserInvalidID     ErrorCode = "USER_004"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound  ErrorCode = "CATEGORY_001"
	CategoryInvalidID ErrorCode = "CATEGORY_002"
)

// Expense error codes (EXPENSE_*)
const (
	ExpenseNotFound      ErrorCode = "EXPENSE_001"
	ExpenseInvalidID     ErrorCode = "EXPENSE_002"
	ExpenseInvalidAmount ErrorCode = "EXPENSE_003"
	ExpenseNoData        ErrorCode = "EXPENSE_004"
)

// AI extraction error codes (EXTRACT_*)
const (
	ExtractNotConfigured ErrorCode = "EXTRACT_001"
	ExtractUpstream      ErrorCode = "EXTRACT_002"
	ExtractEmptyInput    ErrorCode = "EXTRACT_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials:     "invalid email or password",
	AuthMissingToken:           "Authorization header is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid or expired token",
	AuthInsufficientPermission: "Admin access required",

	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationInvalidEmail:  "Invalid email address format",
	ValidationInvalidDate:   "Invalid date format or range",

	UserNotFound:      "user not found",
	UserAlreadyExists: "user with this email already exists",
	UserDeleteAdmin:   "cannot delete admin user",
	UserInvalidID:     "Invalid user ID",

	CategoryNotFound:  "category not found",
	CategoryInvalidID: "Invalid category ID",

	ExpenseNotFound:      "expense not found",
	ExpenseInvalidID:     "Invalid expense ID",
	ExpenseInvalidAmount: "Name, category_id, unit, and per_unit_cost are required and must be positive",
	ExpenseNoData:        "no expenses found",

	ExtractNotConfigured: "AI service not configured",
	ExtractUpstream:      "Failed to connect to AI service",
	ExtractEmptyInput:    "Paragraph is required",

	SystemInternalError:      "An unexpected error occurred",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemUnexpectedError:    "An unexpected error occurred",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
