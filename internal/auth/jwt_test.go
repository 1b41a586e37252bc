package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/isdelr/classmate-be/internal/auth"
	"github.com/isdelr/classmate-be/internal/models"
	"github.com/isdelr/classmate-be/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestTokenManager_IssueVerify(t *testing.T) {
	tm := auth.NewTokenManager(testSecret)

	token, err := tm.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestTokenManager_Verify_Rejections(t *testing.T) {
	tm := auth.NewTokenManager(testSecret)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &auth.Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired token", token: expired},
		{name: "token signed with a different secret", token: wrongKey},
		{name: "unsigned token", token: unsigned},
		{name: "malformed token", token: "notavalidjwt"},
		{name: "empty token", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Verify(tt.token)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
		})
	}
}

type stubResolver struct {
	user models.User
	err  error
}

func (s stubResolver) GetUserByID(id string) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	return s.user, nil
}

func TestMiddleware(t *testing.T) {
	tm := auth.NewTokenManager(testSecret)
	user := models.User{ID: "user-1", Name: "Ada", Email: "ada@example.com"}

	token, err := tm.Issue(user.ID)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		resolver   auth.UserResolver
		wantStatus int
	}{
		{
			name:       "valid token",
			authHeader: "Bearer " + token,
			resolver:   stubResolver{user: user},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			resolver:   stubResolver{user: user},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "tampered token",
			authHeader: "Bearer " + token + "x",
			resolver:   stubResolver{user: user},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token but user gone",
			authHeader: "Bearer " + token,
			resolver:   stubResolver{err: services.ErrUserNotFound},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok := auth.CurrentUser(r.Context())
				require.True(t, ok)
				assert.Equal(t, user.ID, got.ID)
				reached = true
			})

			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			tm.Middleware(tt.resolver)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}
