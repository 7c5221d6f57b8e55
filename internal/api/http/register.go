package http

import (
	"net/http"

	"github.com/devsphere/quizapi/internal/api/domain"
	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/pkg/httpx"
)

type RegisterHandler struct {
	Accounts *service.AccountService
}

// HandlePublic godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new user account with the USER role
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest		true	"email, password, optional firstname/lastname"
//	@Success		201		{object}	RegisterResponse	"message, data"
//	@Failure		400		{object}	httpx.APIError		"message"
//	@Failure		500		{object}	httpx.APIError		"message"
//	@Router			/register [post].
func (h *RegisterHandler) HandlePublic(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, false)
}

// HandleAdmin godoc
//
//	@Summary		Admin Register Endpoint
//	@Description	Create a new user account with an explicit role. Caller must hold the ADMIN role.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest		true	"email, password, optional role (defaults to ADMIN)"
//	@Success		201		{object}	RegisterResponse	"message, data"
//	@Failure		400		{object}	httpx.APIError		"message"
//	@Failure		401		{object}	httpx.APIError		"message, code"
//	@Failure		403		{object}	httpx.APIError		"message"
//	@Failure		500		{object}	httpx.APIError		"message"
//	@Security		BearerAuth
//	@Router			/admin/register [post].
func (h *RegisterHandler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, true)
}

func (h *RegisterHandler) register(w http.ResponseWriter, r *http.Request, admin bool) {
	ctx := r.Context()

	var req RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "Email and password are required")
		return
	}

	// The public endpoint always grants USER; only admins choose roles.
	role := domain.RoleUser
	if admin {
		role = domain.RoleAdmin
		if req.Role != "" {
			parsed, err := domain.ParseRole(req.Role)
			if err != nil {
				writeBadRequest(w, "Unknown role")
				return
			}
			role = parsed
		}
	}

	profile, err := h.Accounts.Register(ctx, req.Email, req.Password, req.Firstname, req.Lastname, role)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User registered",
		Data: RegisterData{
			Email: profile.Email,
			Roles: profile.Roles,
		},
	})
}
