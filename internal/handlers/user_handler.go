package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/poornima-lanka/artniva/internal/middleware"
	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/services"
)

// UserHandler handles HTTP requests for accounts: registration, login,
// profile, password reset and the admin surface.
type UserHandler struct {
	authService *services.AuthService
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, userService *services.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	users := router.Group("/users")

	// Public
	users.Post("/register", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
	users.Post("/forgot-password", h.HandleForgotPassword)
	users.Put("/reset-password/:token", h.HandleResetPassword)

	// Authenticated
	users.Get("/profile", auth, h.HandleGetProfile)
	users.Put("/profile", auth, h.HandleUpdateProfile)

	// Admin
	admin := middleware.AdminRequired()
	users.Get("/stats", auth, admin, h.HandleStats)
	users.Get("/", auth, admin, h.HandleGetAllUsers)
	users.Put("/:id/verify", auth, admin, h.HandleVerifySeller)
	users.Delete("/:id", auth, admin, h.HandleDeleteUser)
}

// RegisterRequest is the request body for account creation.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=customer seller admin"`
}

// HandleRegister handles new account registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := h.authService.RegisterUser(&user); err != nil {
		log.Printf("Error registering user: %v", err)
		return respondServiceError(c, "Registration failed", err)
	}

	token, err := h.authService.TokenFor(&user)
	if err != nil {
		return respondServiceError(c, "Could not issue token", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	token, user, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// HandleForgotPassword starts the password-reset flow for an email address.
func (h *UserHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		log.Printf("Error starting password reset for %s: %v", req.Email, err)
		return respondServiceError(c, "Could not start password reset", err)
	}
	return c.JSON(fiber.Map{"message": "Email sent"})
}

// HandleResetPassword completes the password-reset flow with the raw token
// from the reset link.
func (h *UserHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password" validate:"required,min=6"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.authService.ResetPassword(c.Params("token"), req.Password); err != nil {
		return respondServiceError(c, "Password reset failed", err)
	}
	return c.JSON(fiber.Map{"message": "Password reset successful"})
}

// HandleGetProfile returns the authenticated user's own account.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	profile, err := h.userService.GetProfile(user.ID)
	if err != nil {
		return respondServiceError(c, "Could not retrieve profile", err)
	}
	return c.JSON(profile)
}

// HandleUpdateProfile updates the authenticated user's own account.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user := middleware.CurrentUser(c)
	updated, err := h.userService.UpdateProfile(user.ID, req)
	if err != nil {
		return respondServiceError(c, "Could not update profile", err)
	}
	return c.JSON(updated)
}

// HandleGetAllUsers returns every account (admin only).
func (h *UserHandler) HandleGetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return respondServiceError(c, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleStats returns the admin dashboard counters.
func (h *UserHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats()
	if err != nil {
		log.Printf("Error computing admin stats: %v", err)
		return respondServiceError(c, "Could not compute stats", err)
	}
	return c.JSON(stats)
}

// HandleVerifySeller marks a seller account as verified (admin only).
func (h *UserHandler) HandleVerifySeller(c *fiber.Ctx) error {
	if err := h.userService.VerifySeller(c.Params("id")); err != nil {
		return respondServiceError(c, "Could not verify seller", err)
	}
	return c.JSON(fiber.Map{"message": "Seller verified successfully"})
}

// HandleDeleteUser removes an account (admin only).
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.Params("id")); err != nil {
		return respondServiceError(c, "Could not delete user", err)
	}
	return c.JSON(fiber.Map{"message": "User removed"})
}
