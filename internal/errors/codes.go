// Package errors provides structured error handling for pump.fun operations.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Keypair store errors
	CodeIOError        Code = "IO_ERROR"
	CodeCorruptKeyFile Code = "CORRUPT_KEY_FILE"

	// Network errors
	CodeNetworkQueryFailed Code = "NETWORK_QUERY_FAILED"

	// Trading errors
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"

	// Input errors
	CodeValidation Code = "VALIDATION_ERROR"
)
