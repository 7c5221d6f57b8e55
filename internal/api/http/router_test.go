package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devsphere/quizapi/internal/api/domain"
	httpapi "github.com/devsphere/quizapi/internal/api/http"
	"github.com/devsphere/quizapi/internal/api/quizgen"
	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/internal/api/store/drivers/sqlite"
	"github.com/devsphere/quizapi/pkg/jwtx"
)

type fixture struct {
	server   *httptest.Server
	tokens   *jwtx.Tokens
	accounts *service.AccountService
}

// newFixture builds a full router over an in-memory store. Each test gets
// its own instance so rate limit buckets never bleed between tests.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens := &jwtx.Tokens{
		Issuer:        "quizapi-test",
		AccessSecret:  []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	}

	accounts := &service.AccountService{Store: st, Tokens: tokens}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := httpapi.NewRouter(tokens.AccessVerifier(), "test", st, logger)
	router.AccountService = accounts
	router.ResetService = &service.ResetService{
		Store:  st,
		Sender: &recordingSender{},
		OTPTTL: 10 * time.Minute,
	}
	router.QuizService = &service.QuizService{Generator: &quizgen.Generator{}}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &fixture{server: server, tokens: tokens, accounts: accounts}
}

type recordingSender struct{}

func (s *recordingSender) Send(ctx context.Context, to, subject, body string) error {
	return nil
}

// do sends a JSON request and decodes the body into a generic map.
func (f *fixture) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func (f *fixture) login(t *testing.T, email, password string) (string, string) {
	t.Helper()

	status, body := f.do(t, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)

	data := body["data"].(map[string]any)
	return data["accessToken"].(string), data["refreshToken"].(string)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodPost, "/register", "", map[string]string{
		"email":     "ada@example.com",
		"password":  "s3cret-pass",
		"firstname": "Ada",
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "User registered", body["message"])
	data := body["data"].(map[string]any)
	require.Equal(t, "ada@example.com", data["email"])
	require.Equal(t, []any{"USER"}, data["roles"])

	// Registering the same email again fails.
	status, body = f.do(t, http.MethodPost, "/register", "", map[string]string{
		"email":    "ada@example.com",
		"password": "another-pass",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Email exists", body["message"])

	access, _ := f.login(t, "ada@example.com", "s3cret-pass")

	status, body = f.do(t, http.MethodGet, "/me", access, nil)
	require.Equal(t, http.StatusOK, status)
	profile := body["data"].(map[string]any)
	require.Equal(t, "ada@example.com", profile["email"])
	require.Equal(t, "Ada", profile["firstname"])
	require.Equal(t, []any{"USER"}, profile["roles"])
}

func TestProfileRequiresToken(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodGet, "/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "No token provided", body["message"])
}

func TestExpiredTokenCode(t *testing.T) {
	f := newFixture(t)

	expired := &jwtx.Tokens{
		Issuer:        f.tokens.Issuer,
		AccessSecret:  f.tokens.AccessSecret,
		RefreshSecret: f.tokens.RefreshSecret,
		AccessTTL:     -time.Minute,
	}
	token, err := expired.IssueAccess("whoever", []string{"USER"})
	require.NoError(t, err)

	status, body := f.do(t, http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "TOKEN_EXPIRED", body["code"])
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPost, "/register", "", map[string]string{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, status)

	// Unknown email and wrong password answer identically.
	statusUnknown, bodyUnknown := f.do(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	statusWrong, bodyWrong := f.do(t, http.MethodPost, "/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, statusUnknown)
	require.Equal(t, statusUnknown, statusWrong)
	require.Equal(t, bodyUnknown, bodyWrong)
}

func TestForgotPasswordDoesNotLeakAccounts(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPost, "/register", "", map[string]string{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, status)

	statusKnown, bodyKnown := f.do(t, http.MethodPost, "/forgot-password", "", map[string]string{
		"email": "ada@example.com",
	})
	statusUnknown, bodyUnknown := f.do(t, http.MethodPost, "/forgot-password", "", map[string]string{
		"email": "ghost@example.com",
	})

	require.Equal(t, http.StatusOK, statusKnown)
	require.Equal(t, statusKnown, statusUnknown)
	require.Equal(t, bodyKnown, bodyUnknown)
}

func TestAdminRegisterGate(t *testing.T) {
	f := newFixture(t)

	// Seed an admin directly through the service.
	_, err := f.accounts.Register(t.Context(),
		"root@example.com", "admin-pass", "", "", domain.RoleAdmin)
	require.NoError(t, err)

	status, _ := f.do(t, http.MethodPost, "/register", "", map[string]string{
		"email":    "user@example.com",
		"password": "user-pass",
	})
	require.Equal(t, http.StatusCreated, status)

	// No token at all.
	status, _ = f.do(t, http.MethodPost, "/admin/register", "", map[string]string{
		"email":    "new@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	// A plain USER is forbidden.
	userAccess, _ := f.login(t, "user@example.com", "user-pass")
	status, _ = f.do(t, http.MethodPost, "/admin/register", userAccess, map[string]string{
		"email":    "new@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusForbidden, status)

	// An ADMIN can mint another admin.
	adminAccess, _ := f.login(t, "root@example.com", "admin-pass")
	status, body := f.do(t, http.MethodPost, "/admin/register", adminAccess, map[string]string{
		"email":    "new@example.com",
		"password": "pass1234",
	})
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	require.Equal(t, []any{"ADMIN"}, data["roles"])
}

func TestRefreshFlow(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPost, "/register", "", map[string]string{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, status)

	_, refresh := f.login(t, "ada@example.com", "s3cret-pass")

	status, body := f.do(t, http.MethodPost, "/refresh", "", map[string]string{
		"token": refresh,
	})
	require.Equal(t, http.StatusOK, status)
	access := body["accessToken"].(string)
	require.NotEmpty(t, access)

	// The refreshed access token works.
	status, _ = f.do(t, http.MethodGet, "/me", access, nil)
	require.Equal(t, http.StatusOK, status)

	// Missing and garbage tokens.
	status, _ = f.do(t, http.MethodPost, "/refresh", "", map[string]string{})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = f.do(t, http.MethodPost, "/refresh", "", map[string]string{
		"token": "garbage",
	})
	require.Equal(t, http.StatusForbidden, status)
}

func TestQuizEndpoints(t *testing.T) {
	f := newFixture(t)

	// Full quiz.
	req, err := http.NewRequest(http.MethodPost, f.server.URL+"/quiz/generate",
		bytes.NewBufferString(`{"language":"go"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quiz domain.Quiz
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quiz))
	require.Equal(t, "go", quiz.Language)
	require.Equal(t, quizgen.DefaultQuizSize, quiz.Count)
	require.Len(t, quiz.Questions, quizgen.DefaultQuizSize)
	questions := quiz.Questions

	// Unsupported language.
	status, body := f.do(t, http.MethodPost, "/quiz/generate", "", map[string]string{
		"language": "cobol",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Unsupported language", body["message"])

	// Scoring.
	status, body = f.do(t, http.MethodPost, "/quiz/score", "", map[string]any{
		"questions": questions[:2],
		"answers":   []int{questions[0].CorrectAnswer, questions[1].CorrectAnswer},
	})
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 2, body["total"])
	require.EqualValues(t, 2, body["correct"])
	require.EqualValues(t, 100, body["percentage"])

	// Missing arrays.
	status, _ = f.do(t, http.MethodPost, "/quiz/score", "", map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHealthEndpoints(t *testing.T) {
	f := newFixture(t)

	status, body := f.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])

	status, body = f.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}

func TestUpdateProfileEndpoint(t *testing.T) {
	f := newFixture(t)

	status, _ := f.do(t, http.MethodPost, "/register", "", map[string]string{
		"email":    "ada@example.com",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, status)
	access, _ := f.login(t, "ada@example.com", "s3cret-pass")

	status, body := f.do(t, http.MethodPut, "/me", access, map[string]string{
		"firstname": "Ada",
		"lastname":  "Lovelace",
	})
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	require.Equal(t, "Ada", data["firstname"])
	require.Equal(t, "Lovelace", data["lastname"])

	// Weak new password is rejected.
	status, _ = f.do(t, http.MethodPut, "/me", access, map[string]string{
		"currentPassword": "s3cret-pass",
		"newPassword":     "short",
	})
	require.Equal(t, http.StatusBadRequest, status)

	// Wrong current password is a validation failure, not an authn one.
	status, body = f.do(t, http.MethodPut, "/me", access, map[string]string{
		"currentPassword": "not-the-password",
		"newPassword":     "long-enough-pass",
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "Current password is incorrect", body["message"])
}
