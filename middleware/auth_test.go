package middleware

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(UserContext())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if uid, ok := c.Locals("uid").(string); ok {
			return c.SendString(uid)
		}
		return c.SendString("anonymous")
	})
	return app
}

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestUserContextValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newAuthApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "teacher-1"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "teacher-1" {
		t.Errorf("uid = %q, want teacher-1", body)
	}
}

func TestUserContextNoToken(t *testing.T) {
	app := newAuthApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, requests without a token must pass through", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "anonymous" {
		t.Errorf("uid = %q, want anonymous", body)
	}
}

func TestUserContextBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newAuthApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", "intruder"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, invalid tokens must not reject the request", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "anonymous" {
		t.Errorf("uid = %q, want anonymous for a bad signature", body)
	}
}
