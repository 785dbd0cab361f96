package flight

import "net/http"

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION"
	ErrorCodeProviderFailure ErrorCode = "PROVIDER_FAILURE"
	ErrorCodeIncompleteOffer ErrorCode = "INCOMPLETE_OFFER"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

// AppError is the error shape surfaced at the HTTP edge. Message is always a
// human-readable instruction; raw transport errors stay in Err for logs only.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a malformed caller request. Always raised before
// any I/O.
func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    ErrorCodeValidation,
		Message: message,
	}
}

// NewProviderError wraps a flight or airport provider failure with a generic
// user-facing message.
func NewProviderError(message string, err error) *AppError {
	return &AppError{
		Status:  http.StatusBadGateway,
		Code:    ErrorCodeProviderFailure,
		Message: message,
		Err:     err,
	}
}

// NewIncompleteOfferError reports a booking attempt against an offer missing
// required leg data.
func NewIncompleteOfferError(message string) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Code:    ErrorCodeIncompleteOffer,
		Message: message,
	}
}
