package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral          ErrorCode = "VALIDATION_001"
	ValidationRequiredField    ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat    ErrorCode = "VALIDATION_003"
	ValidationOutOfRange       ErrorCode = "VALIDATION_004"
	ValidationInvalidDate      ErrorCode = "VALIDATION_005"
	ValidationInvalidDateRange ErrorCode = "VALIDATION_006"
	ValidationMalformedBody    ErrorCode = "VALIDATION_007"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionInvalidAmount    ErrorCode = "TRANSACTION_001"
	TransactionInvalidType      ErrorCode = "TRANSACTION_002"
	TransactionCategoryRequired ErrorCode = "TRANSACTION_003"
	TransactionValidationFailed ErrorCode = "TRANSACTION_004"
	TransactionStoreFailed      ErrorCode = "TRANSACTION_005"
)

// Report error codes (REPORT_*)
const (
	ReportInvalidPeriod    ErrorCode = "REPORT_001"
	ReportGenerationFailed ErrorCode = "REPORT_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
	SystemMethodNotAllowed   ErrorCode = "SYSTEM_008"
	SystemRequestTimeout     ErrorCode = "SYSTEM_009"
	SystemFeatureDisabled    ErrorCode = "SYSTEM_010"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:          "Validation failed",
	ValidationRequiredField:    "Required field is missing",
	ValidationInvalidFormat:    "Invalid field format",
	ValidationOutOfRange:       "Field value is out of allowed range",
	ValidationInvalidDate:      "Date must be a valid calendar date in YYYY-MM-DD format",
	ValidationInvalidDateRange: "The from date must not be after the to date",
	ValidationMalformedBody:    "Request body is not valid JSON",

	// Transaction errors
	TransactionInvalidAmount:    "Amount must be a positive number with at most 2 decimal places",
	TransactionInvalidType:      "Type must be INCOME or EXPENSE",
	TransactionCategoryRequired: "Category is required for expenses",
	TransactionValidationFailed: "Transaction validation failed",
	TransactionStoreFailed:      "Transaction could not be saved",

	// Report errors
	ReportInvalidPeriod:    "Year must be between 1 and 9999 and month between 1 and 12",
	ReportGenerationFailed: "Report could not be generated",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Resource not found",
	SystemMethodNotAllowed:   "Method not allowed",
	SystemRequestTimeout:     "Request timed out",
	SystemFeatureDisabled:    "This endpoint is only available in development",
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
