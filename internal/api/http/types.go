package http

import "github.com/devsphere/quizapi/internal/api/domain"

// Request and response bodies for the public API. Success responses wrap
// their payload in {message, data}; errors are httpx.APIError.

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	// Role is only honored on the admin endpoint.
	Role string `json:"role,omitempty"`
}

type RegisterData struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	Data    RegisterData `json:"data"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginData struct {
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	Data    LoginData `json:"data"`
}

type RefreshRequest struct {
	Token string `json:"token"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ProfileResponse struct {
	Message string         `json:"message"`
	Data    domain.Profile `json:"data"`
}

type UpdateProfileRequest struct {
	Email           string `json:"email"`
	Firstname       string `json:"firstname"`
	Lastname        string `json:"lastname"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type QuizRequest struct {
	Language string `json:"language"`
}

type ScoreRequest struct {
	Questions []domain.Question `json:"questions"`
	Answers   []int             `json:"answers"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
