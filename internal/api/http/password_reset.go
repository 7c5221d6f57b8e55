package http

import (
	"net/http"

	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/pkg/httpx"
)

// forgotAck is the fixed acknowledgement for forgot-password. Known and
// unknown emails produce the identical response.
const forgotAck = "If an account exists for this email, an OTP has been sent."

type PasswordResetHandler struct {
	Reset *service.ResetService
}

// HandleForgot godoc
//
//	@Summary		Forgot Password Endpoint
//	@Description	Request a one-time reset code by email. The response is identical whether or not the account exists.
//	@Tags			PasswordReset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ForgotPasswordRequest	true	"email"
//	@Success		200		{object}	MessageResponse			"message"
//	@Failure		400		{object}	httpx.APIError			"message"
//	@Failure		500		{object}	httpx.APIError			"message"
//	@Router			/forgot-password [post].
func (h *PasswordResetHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ForgotPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" {
		writeBadRequest(w, "Email is required")
		return
	}

	if err := h.Reset.ForgotPassword(ctx, req.Email); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: forgotAck})
}

// HandleVerify godoc
//
//	@Summary		Verify OTP Endpoint
//	@Description	Check a reset code without consuming it. The code stays valid for the subsequent reset call until it expires.
//	@Tags			PasswordReset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		VerifyOTPRequest	true	"email, otp"
//	@Success		200		{object}	MessageResponse		"message"
//	@Failure		400		{object}	httpx.APIError		"message"
//	@Failure		500		{object}	httpx.APIError		"message"
//	@Router			/verify-otp [post].
func (h *PasswordResetHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req VerifyOTPRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.OTP == "" {
		writeBadRequest(w, "Email and OTP are required")
		return
	}

	if err := h.Reset.VerifyOTP(ctx, req.Email, req.OTP); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "OTP verified successfully"})
}

// HandleReset godoc
//
//	@Summary		Reset Password Endpoint
//	@Description	Consume a valid reset code and set a new password. The code is invalidated in the same transaction as the password change.
//	@Tags			PasswordReset
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ResetPasswordRequest	true	"email, otp, password"
//	@Success		200		{object}	MessageResponse			"message"
//	@Failure		400		{object}	httpx.APIError			"message"
//	@Failure		500		{object}	httpx.APIError			"message"
//	@Router			/reset-password [post].
func (h *PasswordResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.OTP == "" || req.Password == "" {
		writeBadRequest(w, "Email, OTP, and password are required")
		return
	}

	if err := h.Reset.ResetPassword(ctx, req.Email, req.OTP, req.Password); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}
