package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Analysis errors
const (
	// ErrCodeParse indicates the input could not be read as well-formed markup.
	ErrCodeParse ErrorCode = "PARSE_ERROR"
	// ErrCodeEmptyResult indicates a readable document with nothing to report.
	ErrCodeEmptyResult ErrorCode = "EMPTY_RESULT"
)

// Input errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeNotFound indicates the requested object was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Infrastructure errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeStorage indicates the storage backend failed.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
	// ErrCodeTimeout indicates the operation was canceled or timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeUnavailable indicates the service is at capacity.
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeStorage:     true,
	ErrCodeTimeout:     true,
	ErrCodeUnavailable: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
