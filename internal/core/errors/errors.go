package errors

const (
	HttpInternalError       = "internal_error"
	HttpInvalidRequestError = "invalid_request"
	HttpItemNotFoundError   = "item_not_found"
	HttpQueryFailedError    = "query_failed"
)

// ErrorResponse is the error response body of the read API.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
