package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(NewJwtMiddleware(secret))
	app.Get("/ping", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"user_id": ctx.Locals("user_id")})
	})
	return app
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "u1"}).
		SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJwtMiddlewareUsesConfiguredSecret(t *testing.T) {
	app := newGuardedApp("configured-secret")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not a bearer token", "Basic abc", fiber.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other-secret"), fiber.StatusUnauthorized},
		{"valid token", "Bearer " + signToken(t, "configured-secret"), fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
