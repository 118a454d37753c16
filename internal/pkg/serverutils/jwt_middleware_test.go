package serverutils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testJwtSecret = "test-secret"

func newJwtTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", JwtMiddleware, func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})
	return app
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJwtSecret))
	assert.NoError(t, err)
	return token
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestJwtMiddlewarePassesValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testJwtSecret)
	app := newJwtTestApp()
	userId := uuid.New()

	token := signToken(t, jwt.MapClaims{"user_id": userId.String(), "email": "user@example.com"})
	resp, err := app.Test(requestWithToken(token))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJwtMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", testJwtSecret)
	app := newJwtTestApp()

	resp, err := app.Test(requestWithToken(""))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareRejectsMissingUserIdClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", testJwtSecret)
	app := newJwtTestApp()

	token := signToken(t, jwt.MapClaims{"email": "user@example.com"})
	resp, err := app.Test(requestWithToken(token))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareRejectsMalformedUserIdClaim(t *testing.T) {
	t.Setenv("JWT_SECRET", testJwtSecret)
	app := newJwtTestApp()

	token := signToken(t, jwt.MapClaims{"user_id": "not-a-uuid"})
	resp, err := app.Test(requestWithToken(token))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestJwtMiddlewareRejectsBadSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", testJwtSecret)
	app := newJwtTestApp()

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.New().String(),
	}).SignedString([]byte("other-secret"))
	assert.NoError(t, err)

	resp, err := app.Test(requestWithToken(forged))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
