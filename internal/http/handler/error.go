package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"paperscan/internal/extract"
	"paperscan/internal/http/middleware"
	"paperscan/internal/llm"
	"paperscan/internal/quota"
	"paperscan/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "BAD_INPUT", "QUOTA_EXCEEDED", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps a service-layer error onto the wire taxonomy.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidURL):
		return writeError(c, fiber.StatusBadRequest, "INVALID_URL", "url must point to a pubmed article")
	case errors.Is(err, service.ErrTooFewFiles):
		return writeError(c, fiber.StatusBadRequest, "TOO_FEW_FILES", "batch requires at least 2 files")
	case errors.Is(err, service.ErrTooManyFiles):
		return writeError(c, fiber.StatusBadRequest, "TOO_MANY_FILES", "batch accepts at most 10 files")
	case errors.Is(err, service.ErrTooFewExtracted):
		return writeError(c, fiber.StatusBadRequest, "TOO_FEW_EXTRACTED", "fewer than 2 files yielded usable text")
	case errors.Is(err, service.ErrBadInput):
		return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid request parameters")
	case errors.Is(err, extract.ErrUnreadableDocument):
		return writeError(c, fiber.StatusBadRequest, "UNREADABLE_DOCUMENT", "file could not be read as a PDF")
	case errors.Is(err, extract.ErrEmptyText):
		return writeError(c, fiber.StatusBadRequest, "EMPTY_TEXT", "document contains no extractable text")
	case errors.Is(err, extract.ErrFetchFailed):
		return writeError(c, fiber.StatusBadGateway, "FETCH_FAILED", "article page could not be fetched")
	case errors.Is(err, quota.ErrQuotaExceeded):
		return writeError(c, fiber.StatusPaymentRequired, "QUOTA_EXCEEDED", "free analysis quota exhausted")
	case errors.Is(err, llm.ErrProviderNotConfigured):
		return writeError(c, fiber.StatusServiceUnavailable, "PROVIDER_UNAVAILABLE", "selected model is not configured")
	case errors.Is(err, service.ErrRateLimited):
		return writeError(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "too many messages, try again in a few minutes")
	case errors.Is(err, service.ErrContactNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "contact message not found")
	case isProviderError(err):
		return writeError(c, fiber.StatusBadGateway, "PROVIDER_ERROR", "model call failed")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func isProviderError(err error) bool {
	var pe *llm.ProviderError
	return errors.As(err, &pe) || errors.Is(err, llm.ErrEmptyCompletion)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
