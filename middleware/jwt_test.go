package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lms/config"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	app := fiber.New()
	app.Get("/protected", middleware.JWTMiddleware, func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	return app
}

func request(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()

	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	app := newProtectedApp(t)

	token, err := middleware.GenerateJWT(42, "Ada", "instructor", "ada@example.com")
	require.NoError(t, err)

	resp := request(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Missing, malformed, tampered and expired credentials are all
// rejected with the same status; the failure mode is not leaked.
func TestJWTMiddlewareRejectsBadCredentials(t *testing.T) {
	app := newProtectedApp(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": float64(42),
		"role":   "student",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	expiredToken, err := expired.SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)

	wrongKey := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": float64(42),
		"role":   "admin",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	tamperedToken, err := wrongKey.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	// Correctly signed, but the subject claim is not a number
	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "42",
		"role":   "student",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	badSubjectToken, err := badSubject.SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)

	cases := []string{
		"",
		"Basic abc",
		"Bearer not-a-token",
		"Bearer " + expiredToken,
		"Bearer " + tamperedToken,
		"Bearer " + badSubjectToken,
	}

	for _, header := range cases {
		resp := request(t, app, header)
		assert.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}
