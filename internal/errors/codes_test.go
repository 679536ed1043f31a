package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

func allCodesByPrefix() map[string][]ErrorCode {
	return map[string][]ErrorCode{
		"VALIDATION_": {
			ValidationGeneral,
			ValidationRequiredField,
			ValidationInvalidFormat,
			ValidationOutOfRange,
			ValidationInvalidDate,
			ValidationInvalidDateRange,
			ValidationMalformedBody,
		},
		"TRANSACTION_": {
			TransactionInvalidAmount,
			TransactionInvalidType,
			TransactionCategoryRequired,
			TransactionValidationFailed,
			TransactionStoreFailed,
		},
		"REPORT_": {
			ReportInvalidPeriod,
			ReportGenerationFailed,
		},
		"SYSTEM_": {
			SystemInternalError,
			SystemDatabaseError,
			SystemServiceUnavailable,
			SystemConfigurationError,
			SystemUnexpectedError,
			SystemRateLimitExceeded,
			SystemRouteNotFound,
			SystemMethodNotAllowed,
			SystemRequestTimeout,
			SystemFeatureDisabled,
		},
	}
}

// TestGetErrorMessage_ValidCode tests getting message for valid error codes
func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Validation General",
			code:     ValidationGeneral,
			expected: "Validation failed",
		},
		{
			name:     "Invalid Date Range",
			code:     ValidationInvalidDateRange,
			expected: "The from date must not be after the to date",
		},
		{
			name:     "Transaction Invalid Amount",
			code:     TransactionInvalidAmount,
			expected: "Amount must be a positive number with at most 2 decimal places",
		},
		{
			name:     "Report Invalid Period",
			code:     ReportInvalidPeriod,
			expected: "Year must be between 1 and 9999 and month between 1 and 12",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An unexpected error occurred. Please contact support with trace ID",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

// TestGetErrorMessage_InvalidCode tests getting message for unknown error code
func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	s.Equal("An error occurred", GetErrorMessage(ErrorCode("UNKNOWN_999")))
}

func (s *CodesTestSuite) TestIsValidErrorCode() {
	s.True(IsValidErrorCode(TransactionStoreFailed))
	s.True(IsValidErrorCode(ReportGenerationFailed))
	s.False(IsValidErrorCode(ErrorCode("AUTH_001")))
	s.False(IsValidErrorCode(ErrorCode("")))
}

// TestErrorCodeConstants_Uniqueness ensures no two constants share a value
func (s *CodesTestSuite) TestErrorCodeConstants_Uniqueness() {
	seen := make(map[ErrorCode]bool)
	for _, codes := range allCodesByPrefix() {
		for _, code := range codes {
			s.False(seen[code], "Duplicate error code found: %s", code)
			seen[code] = true
		}
	}
	s.Len(seen, len(errorMessages))
}

// TestErrorCodeConstants_Format ensures all error codes follow naming convention
func (s *CodesTestSuite) TestErrorCodeConstants_Format() {
	for prefix, codes := range allCodesByPrefix() {
		for _, code := range codes {
			s.True(strings.HasPrefix(string(code), prefix), "%s should start with %s", code, prefix)
			s.Len(strings.TrimPrefix(string(code), prefix), 3, "%s should end in three digits", code)
		}
	}
}

func (s *CodesTestSuite) TestAllErrorCodesHaveMessages() {
	for _, codes := range allCodesByPrefix() {
		for _, code := range codes {
			s.NotEmpty(errorMessages[code], "missing message for %s", code)
		}
	}
}
