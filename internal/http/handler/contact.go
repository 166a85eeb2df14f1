package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"paperscan/internal/model"
	"paperscan/internal/service"
)

type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
	// Website is the honeypot field; humans never see it, bots fill it.
	Website string `json:"website" form:"website"`
}

// SubmitContact handles POST /api/contact.
func SubmitContact(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req contactRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid request body")
		}

		receipt, err := svc.Submit(c.UserContext(), service.ContactRequest{
			Name:      req.Name,
			Email:     req.Email,
			Subject:   model.ContactSubject(req.Subject),
			Body:      req.Message,
			Honeypot:  req.Website,
			SourceIP:  c.IP(),
			UserAgent: c.Get("User-Agent"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"status":       "received",
			"id":           receipt.ID,
			"response_eta": receipt.ResponseETA,
		})
	}
}

// ContactAnalytics handles GET /api/contact/analytics?days=N.
func ContactAnalytics(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		days, err := strconv.Atoi(c.Query("days", "30"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid days")
		}

		res, err := svc.Analytics(c.UserContext(), days)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ContactRecent handles GET /api/contact/recent?limit=N.
func ContactRecent(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid limit")
		}

		items, err := svc.Recent(c.UserContext(), limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

type updateContactStatusRequest struct {
	Status       string `json:"status" form:"status"`
	ResponseSent bool   `json:"response_sent" form:"response_sent"`
}

// UpdateContactStatus handles PUT /api/contact/:id/status.
func UpdateContactStatus(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid id")
		}

		var req updateContactStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid request body")
		}

		if err := svc.UpdateStatus(c.UserContext(), id, model.ContactStatus(req.Status), req.ResponseSent); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"status": "updated"})
	}
}

// SearchContacts handles GET /api/contact/search?q=&subject=&status=&limit=&offset=.
func SearchContacts(svc service.ContactService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid offset")
		}

		res, err := svc.Search(
			c.UserContext(),
			c.Query("q"),
			model.ContactSubject(c.Query("subject")),
			model.ContactStatus(c.Query("status")),
			limit,
			offset,
		)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
