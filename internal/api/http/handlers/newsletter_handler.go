package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apexautomovers/quote-service/internal/api/dto"
	"github.com/apexautomovers/quote-service/internal/service"
	"github.com/apexautomovers/quote-service/internal/validation"
)

// NewsletterHandler exposes the newsletter sign-up form.
type NewsletterHandler struct {
	newsletter *service.NewsletterService
}

// NewNewsletterHandler constructs handler.
func NewNewsletterHandler(newsletter *service.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter}
}

// Subscribe POST /newsletter.
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	in, err := validation.ParseNewsletter(c.Body())
	if err != nil {
		return err
	}
	message, err := h.newsletter.Subscribe(c.UserContext(), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.MessageResponse{Message: message})
}
