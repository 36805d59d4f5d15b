package errors

// ErrorCode identifies the class of an AppError
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT

	// Upload validation
	ErrorCode_UPLOAD_MISSING_FILE
	ErrorCode_UPLOAD_EMPTY_FILENAME
	ErrorCode_UPLOAD_UNSUPPORTED_TYPE
	ErrorCode_UPLOAD_TOO_LARGE

	// AI pipeline
	ErrorCode_AI_TRANSCRIPTION_FAILED
	ErrorCode_AI_SUMMARY_FAILED

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED

	// Database
	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED
	ErrorCode_DB_MIGRATION_FAILED

	ErrorCode_PROCESSING_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                    "HTTP_OK",
	ErrorCode_INTERNAL:                   "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:           "INVALID_ARGUMENT",
	ErrorCode_UPLOAD_MISSING_FILE:        "UPLOAD_MISSING_FILE",
	ErrorCode_UPLOAD_EMPTY_FILENAME:      "UPLOAD_EMPTY_FILENAME",
	ErrorCode_UPLOAD_UNSUPPORTED_TYPE:    "UPLOAD_UNSUPPORTED_TYPE",
	ErrorCode_UPLOAD_TOO_LARGE:           "UPLOAD_TOO_LARGE",
	ErrorCode_AI_TRANSCRIPTION_FAILED:    "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:          "AI_SUMMARY_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED: "INTEGRATION_STORAGE_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:       "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:            "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:      "DB_TRANSACTION_FAILED",
	ErrorCode_DB_MIGRATION_FAILED:        "DB_MIGRATION_FAILED",
	ErrorCode_PROCESSING_FAILED:          "PROCESSING_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
