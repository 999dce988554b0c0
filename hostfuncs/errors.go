package hostfuncs

import (
	"encoding/json"
	"fmt"
)

// ErrorResponse is the JSON body returned to the guest when a host function
// cannot produce its normal response.
type ErrorResponse struct {
	// Error is a machine-readable identifier such as "NOT_FOUND".
	Error string `json:"error"`

	Message string `json:"message"`

	// Code mirrors the closest HTTP status.
	Code int `json:"code"`
}

// ToJSON serializes the ErrorResponse.
func (e ErrorResponse) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// NewValidationError reports a payload the handler could not accept.
func NewValidationError(message string) ErrorResponse {
	return ErrorResponse{Error: "VALIDATION_ERROR", Message: message, Code: 400}
}

// NewNotFoundError reports an unknown host function name.
func NewNotFoundError(name string) ErrorResponse {
	return ErrorResponse{Error: "NOT_FOUND", Message: "unknown host function: " + name, Code: 404}
}

// NewPanicError reports a handler that panicked.
func NewPanicError(panicValue any) ErrorResponse {
	var msg string
	switch v := panicValue.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprintf("%v", v)
	}
	return ErrorResponse{Error: "INTERNAL_ERROR", Message: "panic: " + msg, Code: 500}
}
