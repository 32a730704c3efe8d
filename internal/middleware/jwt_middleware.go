package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/repositories"
	"github.com/poornima-lanka/artniva/internal/services"
)

// UserKey is the Locals key under which AuthRequired stores the
// authenticated *models.User.
const UserKey = "user"

// AuthRequired is a Fiber middleware that checks for a valid bearer JWT and
// resolves it to the account it belongs to.
func AuthRequired(authService *services.AuthService, userRepo repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, no token",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, token failed",
			})
		}

		userID, _ := claims["user_id"].(string)
		user, err := userRepo.GetByID(userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, token failed",
			})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the account stored by AuthRequired, or nil when the
// request was not authenticated.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}

// AdminRequired allows only admin accounts through. Must run after
// AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized as an admin",
			})
		}
		return c.Next()
	}
}

// SellerRequired allows only verified seller accounts through. Must run
// after AuthRequired.
func SellerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleSeller || !user.IsVerifiedSeller {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Seller access denied. Wait for Admin approval.",
			})
		}
		return c.Next()
	}
}
