package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacjstriker/blockdrop/internal/config"
)

func testServer(secret string) *APIServer {
	return NewAPIServer(":0", nil, &config.Config{JWTSecret: secret, AppName: "Blockdrop"})
}

func TestJWTRoundTrip(t *testing.T) {
	s := testServer("round-trip-secret")

	token, err := createJWT(42, "casey", "round-trip-secret")
	require.NoError(t, err)

	user, err := s.validateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 42, user.UserID)
	assert.Equal(t, "casey", user.Username)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	s := testServer("server-secret")

	token, err := createJWT(1, "casey", "other-secret")
	require.NoError(t, err)

	_, err = s.validateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	s := testServer("secret")

	claims := jwt.MapClaims{
		"expiresAt": jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		"userID":    1,
		"username":  "casey",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = s.validateJWT(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	s := testServer("secret")
	_, err := s.validateJWT("not.a.token")
	assert.Error(t, err)
}

func TestValidateJWTRequiresUserID(t *testing.T) {
	s := testServer("secret")

	claims := jwt.MapClaims{"username": "casey"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = s.validateJWT(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user id")
}

func TestRequireAuthMiddleware(t *testing.T) {
	s := testServer("middleware-secret")
	var gotUser *UserInfo
	handler := requireAuth(s, func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("bad scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
		req.Header.Set("Authorization", "Basic abc")
		rr := httptest.NewRecorder()
		handler(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := createJWT(9, "casey", "middleware-secret")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		handler(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, gotUser)
		assert.Equal(t, 9, gotUser.UserID)
	})
}

func TestHandleIndex(t *testing.T) {
	s := testServer("secret")

	rr := httptest.NewRecorder()
	s.handleIndex(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Blockdrop")

	rr = httptest.NewRecorder()
	s.handleIndex(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
