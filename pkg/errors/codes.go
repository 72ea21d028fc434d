package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
// Codes are grouped by module prefix so that logs and run summaries can be
// aggregated per concern.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeValidation     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeConflict       ErrorCode = "COMMON_004"
	ErrCodeTimeout        ErrorCode = "COMMON_005"
	ErrCodeCancelled      ErrorCode = "COMMON_006"
	ErrCodeNotImplemented ErrorCode = "COMMON_007"
	ErrCodeUnknown        ErrorCode = "COMMON_999"

	// CodeOK is the sentinel returned by GetCode for a nil error.
	CodeOK ErrorCode = "OK"
)

// Record-level codes.  A malformed record is skipped and reported; it never
// aborts the run.
const (
	ErrCodeMalformedRecord ErrorCode = "REC_001"
	ErrCodeDuplicateRecord ErrorCode = "REC_002"
)

// Configuration codes.  Configuration failures are fatal and abort the run
// before any matching starts.
const (
	ErrCodeConfigInvalid  ErrorCode = "CFG_001"
	ErrCodeConfigNotFound ErrorCode = "CFG_002"
)

// Ingestion (tabular feed boundary) codes.
const (
	ErrCodeFeedParseError    ErrorCode = "FEED_001"
	ErrCodeFeedSchemaInvalid ErrorCode = "FEED_002"
)

// Watch pipeline codes.
const (
	ErrCodeMatchFailed   ErrorCode = "WATCH_001"
	ErrCodeIndexRequired ErrorCode = "WATCH_002"
)

// Licensing codes.
const (
	ErrCodeLicenseTermsInvalid ErrorCode = "LIC_001"
)

// errorCodeMessage maps ErrorCodes to default human-readable messages.
var errorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:       "internal error",
	ErrCodeValidation:     "validation failed",
	ErrCodeNotFound:       "resource not found",
	ErrCodeConflict:       "resource conflict",
	ErrCodeTimeout:        "operation timed out",
	ErrCodeCancelled:      "operation cancelled",
	ErrCodeNotImplemented: "not implemented",
	ErrCodeUnknown:        "unknown error",

	ErrCodeMalformedRecord: "malformed record",
	ErrCodeDuplicateRecord: "duplicate record",

	ErrCodeConfigInvalid:  "invalid configuration",
	ErrCodeConfigNotFound: "configuration not found",

	ErrCodeFeedParseError:    "failed to parse feed",
	ErrCodeFeedSchemaInvalid: "feed schema does not match required columns",

	ErrCodeMatchFailed:   "similarity matching failed",
	ErrCodeIndexRequired: "portfolio index is required",

	ErrCodeLicenseTermsInvalid: "invalid license terms",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := errorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsFatal reports whether an ErrorCode aborts the whole run rather than a
// single record.  Record-level codes are the only non-fatal category.
func IsFatal(code ErrorCode) bool {
	return ModuleForCode(code) != "REC"
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
