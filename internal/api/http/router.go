// Package http wires the public API surface: account, password reset and
// quiz routes plus health probes and swagger.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/internal/api/store"
	"github.com/devsphere/quizapi/pkg/httpx"
	"github.com/devsphere/quizapi/pkg/jwtx"
	"github.com/devsphere/quizapi/pkg/slogx"

	_ "github.com/devsphere/quizapi/api/quiz" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	AccountService *service.AccountService
	ResetService   *service.ResetService
	QuizService    *service.QuizService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAccounts()
	r.registerPasswordReset()
	r.registerQuiz()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Quiz API
//	@version		0.1.0
//	@description	Backend for the programming quiz app: email/password accounts with JWT
//	@description	access and refresh tokens, OTP-based password reset over email, and
//	@description	per-language quiz generation and scoring.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAccounts() {
	registerHandler := &RegisterHandler{Accounts: r.AccountService}

	// POST /register - public signup, moderate limit keeps scripted churn down
	r.Mux.Handle("POST /register",
		httpx.Chain(http.HandlerFunc(registerHandler.HandlePublic),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /admin/register - ADMIN only
	r.Mux.Handle("POST /admin/register",
		httpx.Chain(http.HandlerFunc(registerHandler.HandleAdmin),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyRole("ADMIN"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /login - strict rate limit (authentication attempts)
	loginHandler := &LoginHandler{Accounts: r.AccountService}
	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /refresh - moderate limit; the token itself is the credential
	refreshHandler := &RefreshHandler{Accounts: r.AccountService}
	r.Mux.Handle("POST /refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	meHandler := &MeHandler{Accounts: r.AccountService}
	securedGet := httpx.Chain(http.HandlerFunc(meHandler.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedPut := httpx.Chain(http.HandlerFunc(meHandler.HandlePut),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("GET /me", securedGet)
	r.Mux.Handle("PUT /me", securedPut)
}

func (r *Router) registerPasswordReset() {
	h := &PasswordResetHandler{Reset: r.ResetService}

	// All three are unauthenticated credential endpoints; strict limits
	// slow both enumeration and OTP brute force.
	r.Mux.Handle("POST /forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgot),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /verify-otp",
		httpx.Chain(http.HandlerFunc(h.HandleVerify),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerQuiz() {
	h := &QuizHandler{Quiz: r.QuizService}

	r.Mux.Handle("POST /quiz/generate",
		httpx.Chain(http.HandlerFunc(h.HandleGenerate),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /quiz/generate-one",
		httpx.Chain(http.HandlerFunc(h.HandleGenerateOne),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /quiz/score",
		httpx.Chain(http.HandlerFunc(h.HandleScore),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
