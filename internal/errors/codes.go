package errors

// ErrorCode represents a standardized error code used throughout the pipeline
type ErrorCode string

// Input error codes (INPUT_*)
const (
	InputGeneral            ErrorCode = "INPUT_001"
	InputMalformedRow       ErrorCode = "INPUT_002"
	InputInvalidField       ErrorCode = "INPUT_003"
	InputDegenerateTable    ErrorCode = "INPUT_004"
	InputInconsistentTotals ErrorCode = "INPUT_005"
	InputInvalidParameter   ErrorCode = "INPUT_006"
)

// Store error codes (STORE_*)
const (
	StoreConnectionFailed ErrorCode = "STORE_001"
	StoreTableMissing     ErrorCode = "STORE_002"
	StoreLoadFailed       ErrorCode = "STORE_003"
	StoreQueryFailed      ErrorCode = "STORE_004"
)

// Verification error codes (VERIFY_*)
const (
	VerifyRowCountMismatch ErrorCode = "VERIFY_001"
	VerifyYearMismatch     ErrorCode = "VERIFY_002"
)

// Configuration error codes (CONFIG_*)
const (
	ConfigMissingValue ErrorCode = "CONFIG_001"
	ConfigInvalidValue ErrorCode = "CONFIG_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError ErrorCode = "SYSTEM_001"
	SystemIOError       ErrorCode = "SYSTEM_002"
	SystemRenderError   ErrorCode = "SYSTEM_003"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Input errors
	InputGeneral:            "Invalid input",
	InputMalformedRow:       "Input row has an unexpected number of fields",
	InputInvalidField:       "Input field could not be parsed",
	InputDegenerateTable:    "Contingency table has a zero expected cell",
	InputInconsistentTotals: "Contingency totals do not match the observed counts",
	InputInvalidParameter:   "Invalid parameter value",

	// Store errors
	StoreConnectionFailed: "Could not connect to the crime store",
	StoreTableMissing:     "Crime table does not exist",
	StoreLoadFailed:       "Bulk load into the crime table failed",
	StoreQueryFailed:      "Crime store query failed",

	// Verification errors
	VerifyRowCountMismatch: "Row count differs between artifact and table",
	VerifyYearMismatch:     "Per-year distribution differs between artifact and table",

	// Configuration errors
	ConfigMissingValue: "Required configuration value is missing",
	ConfigInvalidValue: "Configuration value is invalid",

	// System errors
	SystemInternalError: "An unexpected error occurred",
	SystemIOError:       "File operation failed",
	SystemRenderError:   "Chart rendering failed",
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

// IsInputCode reports whether the code belongs to the INPUT_* group
func IsInputCode(code ErrorCode) bool {
	return len(code) > 6 && code[:6] == "INPUT_"
}
