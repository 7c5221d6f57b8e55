package http

import (
	"net/http"

	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/pkg/httpx"
)

type MeHandler struct {
	Accounts *service.AccountService
}

// HandleGet godoc
//
//	@Summary		Profile Endpoint
//	@Description	Return the authenticated user's public profile
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	ProfileResponse	"message, data"
//	@Failure		401	{object}	httpx.APIError	"message, code"
//	@Failure		404	{object}	httpx.APIError	"message"
//	@Failure		500	{object}	httpx.APIError	"message"
//	@Security		BearerAuth
//	@Router			/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.Accounts.GetProfile(ctx, httpx.UserIDFromContext(ctx))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProfileResponse{Message: "ok", Data: profile})
}

// HandlePut godoc
//
//	@Summary		Profile Update Endpoint
//	@Description	Update profile fields. Changing the password requires currentPassword and a newPassword of at least 8 characters. Omitted fields are left unchanged.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateProfileRequest	true	"optional email, firstname, lastname, currentPassword, newPassword"
//	@Success		200		{object}	ProfileResponse			"message, data"
//	@Failure		400		{object}	httpx.APIError			"message"
//	@Failure		401		{object}	httpx.APIError			"message, code"
//	@Failure		500		{object}	httpx.APIError			"message"
//	@Security		BearerAuth
//	@Router			/me [put].
func (h *MeHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req UpdateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	profile, err := h.Accounts.UpdateProfile(ctx, httpx.UserIDFromContext(ctx), service.ProfilePatch{
		Email:           req.Email,
		Firstname:       req.Firstname,
		Lastname:        req.Lastname,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ProfileResponse{Message: "Profile updated", Data: profile})
}
