package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"nodefit/internal/services"
	"nodefit/pkg/logger"
)

// AuthHandler handles HTTP requests for the local account and session.
type AuthHandler struct {
	session  *services.Session
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(session *services.Session, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		session:  session,
		validate: validator.New(),
		logger:   logger.OrNop(log),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/signup", h.HandleSignUp)
	authRoutes.Post("/signin", h.HandleSignIn)
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/session", h.HandleSession)
}

// CredentialsRequest is the body of sign-up and sign-in.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// HandleSignUp creates an account and signs it in.
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Registration failed", err)
	}

	user, err := h.session.SignUp(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.logger, "Registration failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
		"token":   h.session.Token(),
	})
}

// HandleSignIn authenticates and restores the user's profile.
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := bind(c, h.validate, &req); err != nil {
		return respondError(c, h.logger, "Authentication failed", err)
	}

	user, err := h.session.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.logger, "Authentication failed", err)
	}
	state := h.session.State()
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"profile": state.Profile,
		"token":   h.session.Token(),
	})
}

// HandleLogout signs out. Stored data is kept.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.session.Logout(c.UserContext()); err != nil {
		return respondError(c, h.logger, "Could not sign out", err)
	}
	return c.JSON(fiber.Map{"message": "Signed out"})
}

// HandleSession reports the current session state.
func (h *AuthHandler) HandleSession(c *fiber.Ctx) error {
	return c.JSON(h.session.State())
}
