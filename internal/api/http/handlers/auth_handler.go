package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apexautomovers/quote-service/internal/api/dto"
	"github.com/apexautomovers/quote-service/internal/service"
	"github.com/apexautomovers/quote-service/internal/validation"
)

// AuthHandler exposes account creation and sign-in.
type AuthHandler struct {
	accounts *service.AccountService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts *service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	in, err := validation.ParseSignup(c.Body())
	if err != nil {
		return err
	}
	result, err := h.accounts.Signup(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, dto.SignupResponse{
		ID:    result.ID,
		Email: result.Email,
		Name:  result.Name,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	in, err := validation.ParseLogin(c.Body())
	if err != nil {
		return err
	}
	session, err := h.accounts.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewSessionResponse(session))
}

// Profile handles GET /profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	profile, err := h.accounts.GetProfile(c.UserContext(), tokenOf(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewProfileResponse(profile))
}
