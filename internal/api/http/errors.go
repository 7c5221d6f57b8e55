package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/devsphere/quizapi/internal/api/quizgen"
	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/internal/api/store"
	"github.com/devsphere/quizapi/pkg/httpx"
	"github.com/devsphere/quizapi/pkg/jwtx"
	"github.com/devsphere/quizapi/pkg/slogx"
)

// writeServiceError maps service sentinels onto client responses. Anything
// unexpected is logged with its cause and answered as a bare 500.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmailExists):
		httpx.APIError{
			Status:  http.StatusBadRequest,
			Message: "Email exists",
		}.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.APIError{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		}.WriteError(w)
	case errors.Is(err, service.ErrInvalidRefreshToken):
		httpx.APIError{
			Status:  http.StatusForbidden,
			Message: "Invalid refresh token",
		}.WriteError(w)
	case errors.Is(err, service.ErrInvalidOrExpiredOTP):
		httpx.APIError{
			Status:  http.StatusBadRequest,
			Message: "Invalid or expired OTP",
		}.WriteError(w)
	case errors.Is(err, service.ErrWeakPassword):
		httpx.APIError{
			Status:  http.StatusBadRequest,
			Message: "New password must be at least 8 characters",
		}.WriteError(w)
	case errors.Is(err, service.ErrCurrentPasswordRequired):
		httpx.APIError{
			Status:  http.StatusBadRequest,
			Message: "Current password is required to set a new password",
		}.WriteError(w)
	case errors.Is(err, service.ErrWrongPassword):
		httpx.APIError{
			Status:  http.StatusBadRequest,
			Message: "Current password is incorrect",
		}.WriteError(w)
	case errors.Is(err, quizgen.ErrUnsupportedLanguage):
		httpx.APIError{
			Status:  http.StatusBadRequest,
			Message: "Unsupported language",
		}.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		httpx.APIError{
			Status:  http.StatusNotFound,
			Message: "User not found",
		}.WriteError(w)
	case errors.Is(err, jwtx.ErrNoSecret):
		slogx.FromContext(ctx).Error("token secret not configured")
		httpx.ErrServerError.WriteError(w)
	default:
		slogx.FromContext(ctx).Error("request failed", "err", err)
		httpx.ErrServerError.WriteError(w)
	}
}

func writeBadRequest(w http.ResponseWriter, message string) {
	httpx.APIError{Status: http.StatusBadRequest, Message: message}.WriteError(w)
}
