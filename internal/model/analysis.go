package model

// Language selects the language the model is asked to answer in.
type Language string

const (
	LanguageFR Language = "fr"
	LanguageEN Language = "en"
)

// Depth selects the single-document summary template.
type Depth string

const (
	DepthSynthetic Depth = "synthetic"
	DepthDetailed  Depth = "detailed"
)

// BatchMode selects the multi-document analysis template. Depth and
// BatchMode are mutually exclusive axes: single requests carry a Depth,
// batch requests carry a BatchMode.
type BatchMode string

const (
	BatchSynthesis    BatchMode = "synthesis"
	BatchMetaAnalysis BatchMode = "meta_analysis"
)

// Provider identifies an LLM backend.
type Provider string

const (
	ProviderGPT4   Provider = "gpt-4"
	ProviderGemini Provider = "gemini"
)

// SourceOrigin records where a source document came from.
type SourceOrigin string

const (
	OriginPDF       SourceOrigin = "pdf"
	OriginPubMedURL SourceOrigin = "pubmed_url"
)

// SourceDocument is the ephemeral normalized form of an input document.
// It lives for the duration of a single request and is never persisted.
type SourceDocument struct {
	Label  string       `json:"label"`
	Origin SourceOrigin `json:"origin"`
	Text   string       `json:"text"`
}

// BatchMetadata describes the outcome of a batch extraction for caller-side display.
type BatchMetadata struct {
	TotalFiles            int    `json:"total_files"`
	SuccessfulExtractions int    `json:"successful_extractions"`
	FailedExtractions     int    `json:"failed_extractions"`
	AnalysisType          string `json:"analysis_type"`
	ModelUsed             string `json:"model_used"`
}

// AnalysisResult is the model output returned to the caller. Results are
// not persisted server-side; exports are rendered on demand.
type AnalysisResult struct {
	Text     string         `json:"result"`
	Metadata *BatchMetadata `json:"metadata,omitempty"`
}

// ValidLanguage reports whether l is a supported answer language.
func ValidLanguage(l Language) bool {
	return l == LanguageFR || l == LanguageEN
}

// ValidDepth reports whether d is a supported summary depth.
func ValidDepth(d Depth) bool {
	return d == DepthSynthetic || d == DepthDetailed
}

// ValidBatchMode reports whether m is a supported batch analysis mode.
func ValidBatchMode(m BatchMode) bool {
	return m == BatchSynthesis || m == BatchMetaAnalysis
}

// ValidProvider reports whether p names a known backend (configured or not).
func ValidProvider(p Provider) bool {
	return p == ProviderGPT4 || p == ProviderGemini
}
