package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newTestApp(check ActiveChecker, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{AuthMiddlewareWith(func() string { return testSecret }, check)}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(string)
		uid, _ := c.Locals("user_id").(string)
		return c.SendString(role + "|" + uid)
	})
	app.Get("/x", handlers...)
	return app
}

// activeAs: checker yang selalu menganggap user aktif dengan role di DB = role.
func activeAs(role string) ActiveChecker {
	return func(context.Context, uuid.UUID) (string, error) { return role, nil }
}

func doGet(t *testing.T, app *fiber.App, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	uid := uuid.New()
	tok := signToken(t, jwt.MapClaims{"id": uid.String(), "role": "admin", "exp": time.Now().Add(time.Hour).Unix()})

	resp, body := doGet(t, newTestApp(activeAs("admin")), tok)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ADMIN|"+uid.String(), body)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	uid := uuid.New()
	valid := jwt.MapClaims{"id": uid.String(), "role": "USER", "exp": time.Now().Add(time.Hour).Unix()}

	t.Run("missing token", func(t *testing.T) {
		resp, _ := doGet(t, newTestApp(activeAs("USER")), "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bad signature", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, valid).SignedString([]byte("other"))
		require.NoError(t, err)
		resp, _ := doGet(t, newTestApp(activeAs("USER")), tok)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("expired", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"id": uid.String(), "role": "USER", "exp": time.Now().Add(-time.Hour).Unix()})
		resp, _ := doGet(t, newTestApp(activeAs("USER")), tok)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		notFound := func(context.Context, uuid.UUID) (string, error) { return "", gorm.ErrRecordNotFound }
		resp, _ := doGet(t, newTestApp(notFound), signToken(t, valid))
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("inactive user", func(t *testing.T) {
		inactive := func(context.Context, uuid.UUID) (string, error) { return "", errInactiveUser }
		resp, _ := doGet(t, newTestApp(inactive), signToken(t, valid))
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestOnlyRoles(t *testing.T) {
	uid := uuid.New()
	guard := OnlyRoles("khusus admin", "ADMIN")

	userTok := signToken(t, jwt.MapClaims{"id": uid.String(), "role": "USER", "exp": time.Now().Add(time.Hour).Unix()})
	resp, body := doGet(t, newTestApp(activeAs("USER"), guard), userTok)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "khusus admin")

	adminTok := signToken(t, jwt.MapClaims{"id": uid.String(), "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()})
	resp, _ = doGet(t, newTestApp(activeAs("ADMIN"), guard), adminTok)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestOnlyRoles_UsesCurrentRoleFromDB(t *testing.T) {
	uid := uuid.New()
	guard := OnlyRoles("khusus admin", "ADMIN")
	staleAdminTok := signToken(t, jwt.MapClaims{"id": uid.String(), "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()})

	resp, body := doGet(t, newTestApp(activeAs("USER"), guard), staleAdminTok)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body, "khusus admin")

	resp, body = doGet(t, newTestApp(activeAs("USER")), staleAdminTok)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "USER|"+uid.String(), body)
}
