package api_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"blog-service/internal/api"
	"blog-service/internal/token"
)

func newGateApp(tokens *token.Service) *fiber.App {
	app := fiber.New()
	app.Use(api.AuthGate(tokens))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		caller, ok := api.Caller(c)
		if !ok {
			return c.JSON(fiber.Map{"authenticated": false})
		}
		return c.JSON(fiber.Map{"authenticated": true, "userId": caller.UserID.String()})
	})
	return app
}

func whoami(t *testing.T, app *fiber.App, authorization string) map[string]interface{} {
	t.Helper()

	req := httptest.NewRequest("GET", "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "the gate never rejects")

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	return decoded
}

func TestAuthGate_NoHeader(t *testing.T) {
	app := newGateApp(token.NewService("test-secret", time.Hour))

	body := whoami(t, app, "")
	require.Equal(t, false, body["authenticated"])
}

func TestAuthGate_InvalidToken(t *testing.T) {
	app := newGateApp(token.NewService("test-secret", time.Hour))

	for _, header := range []string{"Bearer garbage", "garbage", "Bearer "} {
		body := whoami(t, app, header)
		require.Equal(t, false, body["authenticated"], "header %q", header)
	}
}

func TestAuthGate_ExpiredToken(t *testing.T) {
	expired := token.NewService("test-secret", -time.Minute)
	signed, err := expired.Issue(uuid.New(), "a@b.com")
	require.NoError(t, err)

	app := newGateApp(token.NewService("test-secret", time.Hour))
	body := whoami(t, app, "Bearer "+signed)
	require.Equal(t, false, body["authenticated"])
}

func TestAuthGate_ValidToken(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	userID := uuid.New()
	signed, err := tokens.Issue(userID, "a@b.com")
	require.NoError(t, err)

	app := newGateApp(tokens)

	body := whoami(t, app, "Bearer "+signed)
	require.Equal(t, true, body["authenticated"])
	require.Equal(t, userID.String(), body["userId"])

	// a bare token without the Bearer prefix also passes
	body = whoami(t, app, signed)
	require.Equal(t, true, body["authenticated"])
}
