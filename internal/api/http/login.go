package http

import (
	"net/http"

	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/pkg/httpx"
)

type LoginHandler struct {
	Accounts *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticate with email and password and receive an access/refresh token pair
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"email, password"
//	@Success		200		{object}	LoginResponse	"message, data"
//	@Failure		400		{object}	httpx.APIError	"message"
//	@Failure		401		{object}	httpx.APIError	"message"
//	@Failure		500		{object}	httpx.APIError	"message"
//	@Router			/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "Email and password are required")
		return
	}

	profile, pair, err := h.Accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "success",
		Data: LoginData{
			Email:        profile.Email,
			Roles:        profile.Roles,
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		},
	})
}
