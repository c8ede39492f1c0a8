package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/vui-gateway/internal/adapter/signature"
	"github.com/seu-repo/vui-gateway/internal/domain"
	"github.com/seu-repo/vui-gateway/internal/ports"
)

// WebhookHandler exposes one POST endpoint per platform. The raw body
// bytes go to the dispatcher untouched because the Clova signature is
// sensitive to field order.
type WebhookHandler struct {
	service ports.AssistantService
	log     *zap.Logger
}

func NewWebhookHandler(service ports.AssistantService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log,
	}
}

func (h *WebhookHandler) Google(c *fiber.Ctx) error {
	return h.respond(c, domain.PlatformGoogleAssistant)
}

func (h *WebhookHandler) Alexa(c *fiber.Ctx) error {
	return h.respond(c, domain.PlatformAlexa)
}

func (h *WebhookHandler) Clova(c *fiber.Ctx) error {
	return h.respond(c, domain.PlatformClova)
}

func (h *WebhookHandler) respond(c *fiber.Ctx, platform domain.Platform) error {
	headers := map[string]string{
		signature.HeaderSignature:        c.Get(signature.HeaderSignature),
		signature.HeaderSignatureCertURL: c.Get(signature.HeaderSignatureCertURL),
		signature.HeaderSignatureCEK:     c.Get(signature.HeaderSignatureCEK),
	}

	payload, err := h.service.Respond(c.UserContext(), platform, headers, c.Body())
	if err != nil {
		return err
	}
	if payload == nil {
		// Nothing to say on this platform.
		return c.SendStatus(fiber.StatusOK)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(payload)
}
