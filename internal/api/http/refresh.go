package http

import (
	"net/http"

	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/pkg/httpx"
)

type RefreshHandler struct {
	Accounts *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Token Refresh Endpoint
//	@Description	Exchange a valid refresh token for a fresh access token. Roles on the new token reflect the current stored roles.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RefreshRequest	true	"token"
//	@Success		200		{object}	RefreshResponse	"accessToken"
//	@Failure		400		{object}	httpx.APIError	"message"
//	@Failure		403		{object}	httpx.APIError	"message"
//	@Failure		500		{object}	httpx.APIError	"message"
//	@Router			/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RefreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Token == "" {
		writeBadRequest(w, "Token required")
		return
	}

	access, err := h.Accounts.RefreshAccess(ctx, req.Token)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RefreshResponse{AccessToken: access})
}
