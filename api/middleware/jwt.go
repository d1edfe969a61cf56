package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sunthewhat/easy-cert-portal/common/util"
	"github.com/sunthewhat/easy-cert-portal/type/response"
	"github.com/sunthewhat/easy-cert-portal/type/shared"
)

const AuthContextKey = "auth"

// AdminJwt verifies the bearer token issued by the login route.
func AdminJwt(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		TokenLookup:   "header:Authorization",
		AuthScheme:    "Bearer",
		ContextKey:    AuthContextKey,
		Claims:        new(shared.AdminClaims),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Warn("AdminJwt: token rejected",
				"error", err,
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP())
			return response.SendUnauthorized(c, "JWT validation failure")
		},
	})
}

// RequireAdmin checks the role of the claims stored by AdminJwt.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetClaims(c)
		if !ok || claims.Role != util.AdminRole {
			return response.SendUnauthorized(c, "Admin access required")
		}
		return c.Next()
	}
}

func GetClaims(c *fiber.Ctx) (*shared.AdminClaims, bool) {
	token, ok := c.Locals(AuthContextKey).(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*shared.AdminClaims)
	return claims, ok
}
