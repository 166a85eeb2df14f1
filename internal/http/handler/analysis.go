package handler

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"paperscan/internal/model"
	"paperscan/internal/service"
)

// sessionHeader carries the opaque free-tier session id. Clients without
// one are keyed by IP so the quota still applies.
const sessionHeader = "X-Session-ID"

func sessionID(c *fiber.Ctx) string {
	if id := c.Get(sessionHeader); id != "" {
		return id
	}
	return c.IP()
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// AnalyzePaper handles POST /analyze-paper (multipart/form-data, field name: file).
func AnalyzePaper(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		data, err := readUpload(fh)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}

		res, err := svc.AnalyzePaper(c.UserContext(), service.PaperRequest{
			Filename:  fh.Filename,
			Data:      data,
			Language:  model.Language(c.FormValue("language", "fr")),
			Depth:     model.Depth(c.FormValue("summary_type", "synthetic")),
			Provider:  model.Provider(c.FormValue("model_name", "gpt-4")),
			SessionID: sessionID(c),
			Email:     c.FormValue("email"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

type analyzeURLRequest struct {
	URL         string `json:"url" form:"url"`
	Language    string `json:"language" form:"language"`
	SummaryType string `json:"summary_type" form:"summary_type"`
	ModelName   string `json:"model_name" form:"model_name"`
	Email       string `json:"email" form:"email"`
}

// AnalyzeURL handles POST /analyze-url.
func AnalyzeURL(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req analyzeURLRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_INPUT", "invalid request body")
		}
		if req.Language == "" {
			req.Language = "fr"
		}
		if req.SummaryType == "" {
			req.SummaryType = "synthetic"
		}
		if req.ModelName == "" {
			req.ModelName = "gpt-4"
		}

		res, err := svc.AnalyzeURL(c.UserContext(), service.URLRequest{
			URL:       req.URL,
			Language:  model.Language(req.Language),
			Depth:     model.Depth(req.SummaryType),
			Provider:  model.Provider(req.ModelName),
			SessionID: sessionID(c),
			Email:     req.Email,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// AnalyzeBatch handles POST /analyze-batch (multipart/form-data, field name: files).
func AnalyzeBatch(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "multipart form with files is required")
		}
		headers := form.File["files"]
		if len(headers) == 0 {
			return writeError(c, fiber.StatusBadRequest, "FILES_REQUIRED", "at least one file is required")
		}

		files := make([]service.BatchFile, 0, len(headers))
		for _, fh := range headers {
			data, err := readUpload(fh)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			files = append(files, service.BatchFile{Name: fh.Filename, Data: data})
		}

		res, err := svc.AnalyzeBatch(c.UserContext(), service.BatchRequest{
			Files:     files,
			Language:  model.Language(c.FormValue("language", "fr")),
			Mode:      model.BatchMode(c.FormValue("analysis_type", "synthesis")),
			Provider:  model.Provider(c.FormValue("model_name", "gpt-4")),
			SessionID: sessionID(c),
			Email:     c.FormValue("email"),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
