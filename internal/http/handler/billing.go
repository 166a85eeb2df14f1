package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"paperscan/internal/service"
)

// StripeWebhook handles POST /stripe/webhook. Verification failures answer
// a bare 400 so the payment provider retries only genuine delivery faults.
func StripeWebhook(svc service.BillingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := svc.ProcessWebhook(c.UserContext(), c.Body(), c.Get("Stripe-Signature"))
		if err != nil {
			if errors.Is(err, service.ErrInvalidSignature) || errors.Is(err, service.ErrInvalidPayload) {
				return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "webhook verification failed")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// CheckProStatus handles GET /check-pro-status/:email.
func CheckProStatus(svc service.EntitlementService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Params("email")
		if email == "" {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "email is required")
		}

		pro, err := svc.IsPro(c.UserContext(), email)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"is_pro": pro})
	}
}
