package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// UserContext extracts the user identifier from an optional bearer token.
// Requests without a token (or with an invalid one) continue as the demo
// user; this service has no enforced auth.
func UserContext() fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "secret"
	}

	return func(c *fiber.Ctx) error {
		const prefix = "Bearer "
		auth := c.Get("Authorization")
		if !strings.HasPrefix(auth, prefix) {
			return c.Next()
		}

		token, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, prefix), &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil {
			return c.Next()
		}

		if claims, ok := token.Claims.(*jwt.RegisteredClaims); ok && claims.Subject != "" {
			c.Locals("uid", claims.Subject)
		}
		return c.Next()
	}
}
