package middlewares

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tandem-server/configs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	configs.Configs.Secrets.SessionPublicKey = string(pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: der,
	}))
	return key
}

func signSessionToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func runMiddleware(authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/workspaces", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, c, err
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	key := setupSessionKey(t)

	signed := signSessionToken(t, key, jwt.MapClaims{
		"sub":   "user_abc",
		"email": "grace@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, c, err := runMiddleware("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	userID, err := GetUserIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, "user_abc", userID)

	email, err := GetEmailFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", email)
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	setupSessionKey(t)

	rec, _, err := runMiddleware("")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authentication required")
}

func TestJWTMiddlewareRejectsMalformedHeader(t *testing.T) {
	setupSessionKey(t)

	rec, _, err := runMiddleware("Token abc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsExpiredToken(t *testing.T) {
	key := setupSessionKey(t)

	signed := signSessionToken(t, key, jwt.MapClaims{
		"sub": "user_abc",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	rec, _, err := runMiddleware("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsWrongKey(t *testing.T) {
	setupSessionKey(t)

	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	signed := signSessionToken(t, otherKey, jwt.MapClaims{
		"sub": "user_abc",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	rec, _, err := runMiddleware("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRejectsHMACToken(t *testing.T) {
	setupSessionKey(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user_abc"})
	signed, err := token.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	rec, _, err := runMiddleware("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareRequiresSubClaim(t *testing.T) {
	key := setupSessionKey(t)

	signed := signSessionToken(t, key, jwt.MapClaims{
		"email": "grace@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, _, err := runMiddleware("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "sub claim not found")
}
