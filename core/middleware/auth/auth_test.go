package auth_test

import (
	"net/http/httptest"
	"testing"

	"atlan-sdk/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(auth.Config{ApiKey: "k3y", Skip: []string{"/health"}})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"MissingHeader", "/api/meta/entity/bulk", "", fiber.StatusUnauthorized},
		{"WrongToken", "/api/meta/entity/bulk", "Bearer nope", fiber.StatusUnauthorized},
		{"WrongScheme", "/api/meta/entity/bulk", "Basic k3y", fiber.StatusUnauthorized},
		{"ValidToken", "/api/meta/entity/bulk", "Bearer k3y", fiber.StatusOK},
		{"SkippedPath", "/health", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := newApp(auth.Config{})
	resp, err := app.Test(httptest.NewRequest("GET", "/anything", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
