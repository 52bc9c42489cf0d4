package middleware

import (
	"log"
	"strings"

	"bistro/internal/auth"
	"bistro/internal/services"

	"github.com/gofiber/fiber/v2"
)

// callerKey is the Locals key the resolved caller is stored under.
const callerKey = "caller"

// AuthRequired is a Fiber middleware that checks for a valid JWT token
// and resolves the caller's staff roles exactly once. Handlers read the
// resulting immutable Caller via CallerFrom.
func AuthRequired(authService *services.AuthService, roleService *services.RoleService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		tokenString := parts[1]

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		caller := auth.Caller{}
		if v, ok := claims["user_id"].(string); ok {
			caller.UserID = v
		}
		if v, ok := claims["username"].(string); ok {
			caller.Username = v
		}
		if v, ok := claims["is_admin"].(bool); ok {
			caller.IsAdmin = v
		}
		caller.Roles = roleService.RolesOf(caller.UserID)

		c.Locals(callerKey, caller)

		// Continue to the next handler
		return c.Next()
	}
}

// CallerFrom returns the caller resolved by AuthRequired. Outside of an
// authenticated route it returns the zero Caller (anonymous).
func CallerFrom(c *fiber.Ctx) auth.Caller {
	if caller, ok := c.Locals(callerKey).(auth.Caller); ok {
		return caller
	}
	return auth.Caller{}
}
