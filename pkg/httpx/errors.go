package httpx

import "net/http"

// APIError is a client-facing error body. Status is not serialized; it
// drives the HTTP status line. Code carries a machine-readable tag where the
// contract defines one (token verification failures).
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e APIError) Error() string { return e.Message }

// WriteError renders the error as the response body.
func (e APIError) WriteError(w http.ResponseWriter) {
	WriteJSON(w, e.Status, e)
}

// Shared error values. Handlers construct more specific ones inline where
// the message depends on the request.
var (
	ErrNoToken = APIError{
		Status:  http.StatusUnauthorized,
		Message: "No token provided",
	}
	ErrTokenExpired = APIError{
		Status:  http.StatusUnauthorized,
		Message: "Token expired",
		Code:    "TOKEN_EXPIRED",
	}
	ErrTokenBadSignature = APIError{
		Status:  http.StatusUnauthorized,
		Message: "Invalid signature",
		Code:    "TOKEN_BAD_SIGNATURE",
	}
	ErrTokenInvalid = APIError{
		Status:  http.StatusUnauthorized,
		Message: "Invalid token",
		Code:    "TOKEN_INVALID",
	}
	ErrForbidden = APIError{
		Status:  http.StatusForbidden,
		Message: "Forbidden",
	}
	ErrServerError = APIError{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
	}
)
