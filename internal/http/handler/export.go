package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"paperscan/internal/export"
	"paperscan/internal/model"
)

type exportRequest struct {
	Result   string `json:"result" form:"result"`
	Language string `json:"language" form:"language"`
	Title    string `json:"title" form:"title"`
}

// ExportSummary handles POST /api/export/:format. The summary text travels
// with the request; nothing is looked up server-side because results are
// never persisted.
func ExportSummary() fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := export.Format(c.Params("format"))
		if !export.ValidFormat(format) {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "format must be one of pdf, docx, html, txt")
		}

		var req exportRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid request body")
		}
		if req.Result == "" {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "result text is required")
		}
		if req.Language == "" {
			req.Language = "fr"
		}
		title := req.Title
		if title == "" {
			title = "Analyse d'article biomédical"
		}

		doc := export.ParseSummary(req.Result, model.Language(req.Language))
		body, contentType, err := export.Render(doc, format, title)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "export rendering failed")
		}

		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="analyse.%s"`, format))
		return c.Send(body)
	}
}
