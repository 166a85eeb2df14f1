package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"paperscan/internal/extract"
	"paperscan/internal/llm"
	"paperscan/internal/model"
	"paperscan/internal/prompt"
	"paperscan/internal/quota"
)

var (
	ErrBadInput        = errors.New("invalid request")
	ErrInvalidURL      = errors.New("url is not a recognized pubmed article link")
	ErrTooFewFiles     = errors.New("batch requires at least 2 files")
	ErrTooManyFiles    = errors.New("batch accepts at most 10 files")
	ErrTooFewExtracted = errors.New("fewer than 2 files yielded text")
)

// Batch size bounds and model call deadlines.
const (
	minBatchFiles = 2
	maxBatchFiles = 10

	singleCallTimeout = 60 * time.Second
	batchCallTimeout  = 300 * time.Second
)

// PDFTextExtractor turns PDF bytes into plain text.
type PDFTextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// URLTextExtractor turns an article URL into plain text.
type URLTextExtractor interface {
	Extract(ctx context.Context, articleURL string) (string, error)
}

// ProviderRegistry resolves a provider choice to a configured backend.
type ProviderRegistry interface {
	Get(p model.Provider) (llm.Generator, error)
}

// PaperRequest is a single-PDF analysis request.
type PaperRequest struct {
	Filename  string
	Data      []byte
	Language  model.Language
	Depth     model.Depth
	Provider  model.Provider
	SessionID string
	Email     string
}

// URLRequest is a single PubMed-article analysis request.
type URLRequest struct {
	URL       string
	Language  model.Language
	Depth     model.Depth
	Provider  model.Provider
	SessionID string
	Email     string
}

// BatchFile is one uploaded PDF inside a batch request.
type BatchFile struct {
	Name string
	Data []byte
}

// BatchRequest is a multi-PDF consolidated analysis request.
type BatchRequest struct {
	Files     []BatchFile
	Language  model.Language
	Mode      model.BatchMode
	Provider  model.Provider
	SessionID string
	Email     string
}

// AnalysisService defines the use cases for turning source documents into
// model-generated summaries.
type AnalysisService interface {
	// AnalyzePaper extracts a single PDF and returns its summary.
	AnalyzePaper(ctx context.Context, req PaperRequest) (*model.AnalysisResult, error)

	// AnalyzeURL scrapes a PubMed article page and returns its summary.
	AnalyzeURL(ctx context.Context, req URLRequest) (*model.AnalysisResult, error)

	// AnalyzeBatch extracts 2-10 PDFs concurrently and returns one
	// consolidated analysis with extraction metadata.
	AnalyzeBatch(ctx context.Context, req BatchRequest) (*model.AnalysisResult, error)
}

// analysisService is a concrete implementation of AnalysisService.
type analysisService struct {
	pdf          PDFTextExtractor
	pubmed       URLTextExtractor
	registry     ProviderRegistry
	entitlements EntitlementService
	quota        *quota.SessionStore
}

// NewAnalysisService constructs a new AnalysisService.
func NewAnalysisService(
	pdf PDFTextExtractor,
	pubmed URLTextExtractor,
	registry ProviderRegistry,
	entitlements EntitlementService,
	store *quota.SessionStore,
) AnalysisService {
	return &analysisService{
		pdf:          pdf,
		pubmed:       pubmed,
		registry:     registry,
		entitlements: entitlements,
		quota:        store,
	}
}

func (s *analysisService) AnalyzePaper(ctx context.Context, req PaperRequest) (*model.AnalysisResult, error) {
	if err := validateCommon(req.Language, req.Depth, req.Provider, req.SessionID); err != nil {
		return nil, err
	}
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrBadInput)
	}

	// Resolve the backend before touching quota so an unconfigured
	// provider never consumes a free credit.
	gen, err := s.registry.Get(req.Provider)
	if err != nil {
		return nil, err
	}

	text, err := s.pdf.Extract(ctx, req.Data)
	if err != nil {
		return nil, err
	}

	p := prompt.Build(text, req.Language, req.Depth)
	return s.dispatch(ctx, gen, p, req.Email, req.SessionID, quota.CostSingle, nil)
}

func (s *analysisService) AnalyzeURL(ctx context.Context, req URLRequest) (*model.AnalysisResult, error) {
	if err := validateCommon(req.Language, req.Depth, req.Provider, req.SessionID); err != nil {
		return nil, err
	}
	if !extract.IsPubMedURL(req.URL) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, req.URL)
	}

	gen, err := s.registry.Get(req.Provider)
	if err != nil {
		return nil, err
	}

	text, err := s.pubmed.Extract(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	p := prompt.Build(text, req.Language, req.Depth)
	return s.dispatch(ctx, gen, p, req.Email, req.SessionID, quota.CostSingle, nil)
}

func (s *analysisService) AnalyzeBatch(ctx context.Context, req BatchRequest) (*model.AnalysisResult, error) {
	if !model.ValidLanguage(req.Language) || !model.ValidBatchMode(req.Mode) || !model.ValidProvider(req.Provider) {
		return nil, fmt.Errorf("%w: language, analysis_type and model_name must be valid", ErrBadInput)
	}
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrBadInput)
	}
	if len(req.Files) < minBatchFiles {
		return nil, ErrTooFewFiles
	}
	if len(req.Files) > maxBatchFiles {
		return nil, ErrTooManyFiles
	}

	gen, err := s.registry.Get(req.Provider)
	if err != nil {
		return nil, err
	}

	// Extract every file concurrently; slots are index-addressed so no
	// locking is needed and one bad PDF never aborts the group.
	docs := make([]*model.SourceDocument, len(req.Files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range req.Files {
		g.Go(func() error {
			text, err := s.pdf.Extract(gctx, f.Data)
			if err != nil {
				return nil
			}
			docs[i] = &model.SourceDocument{
				Label:  f.Name,
				Origin: model.OriginPDF,
				Text:   text,
			}
			return nil
		})
	}
	_ = g.Wait()

	extracted := make([]model.SourceDocument, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			extracted = append(extracted, *d)
		}
	}
	if len(extracted) < minBatchFiles {
		return nil, fmt.Errorf("%w: %d of %d extracted", ErrTooFewExtracted, len(extracted), len(req.Files))
	}

	meta := &model.BatchMetadata{
		TotalFiles:            len(req.Files),
		SuccessfulExtractions: len(extracted),
		FailedExtractions:     len(req.Files) - len(extracted),
		AnalysisType:          string(req.Mode),
		ModelUsed:             string(req.Provider),
	}

	p := prompt.BuildBatch(extracted, req.Language, req.Mode)
	return s.dispatch(ctx, gen, p, req.Email, req.SessionID, quota.CostBatch, meta)
}

// dispatch charges quota (unless the caller is pro), calls the backend with
// the cost-appropriate deadline, and refunds the reservation when the call
// fails so only successful analyses consume the free allowance.
func (s *analysisService) dispatch(
	ctx context.Context,
	gen llm.Generator,
	promptText string,
	email, sessionID string,
	cost int,
	meta *model.BatchMetadata,
) (*model.AnalysisResult, error) {
	pro, err := s.entitlements.IsPro(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolve entitlement: %w", err)
	}

	charged := false
	if !pro {
		if _, err := s.quota.Reserve(sessionID, cost); err != nil {
			return nil, err
		}
		charged = true
	}

	timeout := singleCallTimeout
	if cost == quota.CostBatch {
		timeout = batchCallTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := gen.Generate(callCtx, promptText)
	if err != nil {
		if charged {
			s.quota.Refund(sessionID, cost)
		}
		return nil, err
	}

	return &model.AnalysisResult{Text: out, Metadata: meta}, nil
}

func validateCommon(lang model.Language, depth model.Depth, provider model.Provider, sessionID string) error {
	if !model.ValidLanguage(lang) || !model.ValidDepth(depth) || !model.ValidProvider(provider) {
		return fmt.Errorf("%w: language, summary_type and model_name must be valid", ErrBadInput)
	}
	if sessionID == "" {
		return fmt.Errorf("%w: session id is required", ErrBadInput)
	}
	return nil
}
