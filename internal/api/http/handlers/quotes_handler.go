package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/apexautomovers/quote-service/internal/api/dto"
	"github.com/apexautomovers/quote-service/internal/auth"
	"github.com/apexautomovers/quote-service/internal/service"
	"github.com/apexautomovers/quote-service/internal/validation"
)

// QuotesHandler exposes quote submission and the admin quote desk.
type QuotesHandler struct {
	quotes *service.QuoteService
}

// NewQuotesHandler constructs handler.
func NewQuotesHandler(quotes *service.QuoteService) *QuotesHandler {
	return &QuotesHandler{quotes: quotes}
}

// Submit POST /quote.
func (h *QuotesHandler) Submit(c *fiber.Ctx) error {
	in, err := validation.ParseQuote(c.Body())
	if err != nil {
		return err
	}
	quote, err := h.quotes.SubmitQuote(c.UserContext(), tokenOf(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, dto.NewQuoteResponse(quote))
}

// ListMine GET /quotes/my.
func (h *QuotesHandler) ListMine(c *fiber.Ctx) error {
	quotes, err := h.quotes.ListMine(c.UserContext(), tokenOf(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewQuoteResponses(quotes))
}

// ListAll GET /quotes/all.
func (h *QuotesHandler) ListAll(c *fiber.Ctx) error {
	quotes, err := h.quotes.ListAll(c.UserContext(), tokenOf(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewQuoteResponses(quotes))
}

// SetStatus PATCH /quotes/:id/status.
func (h *QuotesHandler) SetStatus(c *fiber.Ctx) error {
	status, err := validation.ParseStatusChange(c.Body())
	if err != nil {
		return err
	}
	quote, err := h.quotes.SetStatus(c.UserContext(), tokenOf(c), quoteID(c), status)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewQuoteResponse(quote))
}

// UpdateDetails PATCH /quotes/:id.
func (h *QuotesHandler) UpdateDetails(c *fiber.Ctx) error {
	patch, err := validation.ParseQuoteUpdate(c.Body())
	if err != nil {
		return err
	}
	quote, err := h.quotes.UpdateDetails(c.UserContext(), tokenOf(c), quoteID(c), patch)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewQuoteResponse(quote))
}

// Send POST /quotes/:id/send.
func (h *QuotesHandler) Send(c *fiber.Ctx) error {
	in, err := validation.ParseQuoteSend(c.Body())
	if err != nil {
		return err
	}
	quote, err := h.quotes.SendQuote(c.UserContext(), tokenOf(c), quoteID(c), in)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, dto.NewQuoteResponse(quote))
}

// quoteID copies the route param out of the request buffer fiber reuses.
func quoteID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

func tokenOf(c *fiber.Ctx) string {
	return auth.TokenFromContext(c)
}
