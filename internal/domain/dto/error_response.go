package dto

import "github.com/shopspring/decimal"

func init() {
	// Prices and ranges serialize as JSON numbers, matching the API contract.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorCode classifies API failures for clients.
type ErrorCode string

const (
	ErrorCodeResourceNotFound   ErrorCode = "RESOURCE_NOT_FOUND"
	ErrorCodeCryptoDataNotFound ErrorCode = "CRYPTO_DATA_NOT_FOUND"
	ErrorCodeMissingParameter   ErrorCode = "MISSING_PARAMETER"
	ErrorCodeInvalidParameter   ErrorCode = "INVALID_PARAMETER"
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON error body returned by every endpoint.
//
// Fields match the API contract: a machine-readable code and a
// human-readable message.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	ErrorCode ErrorCode `json:"errorCode" example:"CRYPTO_DATA_NOT_FOUND"`
	Message   string    `json:"message" example:"There is no data for the requested crypto: BTC"`
}

// NewErrorResponse builds an ErrorResponse with the given code and message.
func NewErrorResponse(code ErrorCode, message string) ErrorResponse {
	return ErrorResponse{ErrorCode: code, Message: message}
}

// Error implements the error interface so responses can double as errors
// in middleware chains.
func (e ErrorResponse) Error() string {
	return string(e.ErrorCode) + ": " + e.Message
}
