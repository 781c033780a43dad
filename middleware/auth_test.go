package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bracket-pool-go/models"
	"bracket-pool-go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type singleUserRepo struct {
	user *models.User
}

func (r *singleUserRepo) GetUserByEmail(email string) (*models.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, errors.New("user not found")
}

func (r *singleUserRepo) GetUserByID(id int) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, errors.New("user not found")
}

func (r *singleUserRepo) GetUserByResetToken(token string) (*models.User, error) {
	return nil, errors.New("user not found")
}

func (r *singleUserRepo) CreateUser(user *models.User) error { return nil }
func (r *singleUserRepo) UpdateUser(user *models.User) error { return nil }

func authTestSetup(t *testing.T) (*AuthMiddleware, string, *models.User) {
	t.Helper()

	user := &models.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	authService := services.NewAuthService(&singleUserRepo{user: user}, "test-secret")

	token, err := authService.GenerateToken(user)
	require.NoError(t, err)

	return NewAuthMiddleware(authService), token, user
}

func echoUserHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := GetUserFromContext(r); user != nil {
			w.Write([]byte(user.Name))
			return
		}
		w.Write([]byte("anonymous"))
	})
}

func TestRequireAuthWithBearerToken(t *testing.T) {
	mw, token, _ := authTestSetup(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.RequireAuth(echoUserHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice", rec.Body.String())
}

func TestRequireAuthWithCookie(t *testing.T) {
	mw, token, _ := authTestSetup(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	rec := httptest.NewRecorder()

	mw.RequireAuth(echoUserHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice", rec.Body.String())
}

func TestRequireAuthRejectsMissingOrBadToken(t *testing.T) {
	mw, _, _ := authTestSetup(t)

	tests := []struct {
		name  string
		setup func(*http.Request)
	}{
		{"no credentials", func(r *http.Request) {}},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer garbage") }},
		{"malformed header", func(r *http.Request) { r.Header.Set("Authorization", "garbage") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			mw.RequireAuth(echoUserHandler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "authentication required")
		})
	}
}

func TestOptionalAuthPassesThrough(t *testing.T) {
	mw, token, _ := authTestSetup(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	mw.OptionalAuth(echoUserHandler()).ServeHTTP(rec, req)
	assert.Equal(t, "anonymous", rec.Body.String())

	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	mw.OptionalAuth(echoUserHandler()).ServeHTTP(rec, req)
	assert.Equal(t, "Alice", rec.Body.String())
}

func TestSecurityMiddlewareSetsHeaders(t *testing.T) {
	handler := SecurityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}
