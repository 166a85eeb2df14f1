package prompt

import (
	"strings"
	"testing"

	"paperscan/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildContainsEachLabelOnce(t *testing.T) {
	for _, depth := range []model.Depth{model.DepthSynthetic, model.DepthDetailed} {
		t.Run(string(depth), func(t *testing.T) {
			p := Build("some article text", model.LanguageFR, depth)

			for _, label := range []string{"Molécules:", "Pathologies:", "Type:", "Auteurs:"} {
				assert.Equal(t, 1, strings.Count(p, label), "label %q", label)
			}
			assert.Contains(t, p, "some article text")
		})
	}
}

func TestBuildEnglishLabels(t *testing.T) {
	p := Build("text", model.LanguageEN, model.DepthSynthetic)

	for _, label := range []string{"Summary:", "Molecules:", "Pathologies:", "Type:", "Authors:"} {
		assert.Equal(t, 1, strings.Count(p, label))
	}
	assert.Contains(t, p, "Réponds en langue : EN")
}

func TestBuildTruncatesAt3000(t *testing.T) {
	long := strings.Repeat("a", 5000)
	p := Build(long, model.LanguageFR, model.DepthSynthetic)

	assert.Contains(t, p, strings.Repeat("a", 3000))
	assert.NotContains(t, p, strings.Repeat("a", 3001))
}

func TestBuildDepthSelectsTemplate(t *testing.T) {
	synthetic := Build("x", model.LanguageFR, model.DepthSynthetic)
	detailed := Build("x", model.LanguageFR, model.DepthDetailed)

	assert.Contains(t, synthetic, "synthétique (5 à 8 lignes max)")
	assert.Contains(t, detailed, "la méthodologie, les résultats et la conclusion")
	assert.NotEqual(t, synthetic, detailed)
}

func TestBuildBatch(t *testing.T) {
	docs := []model.SourceDocument{
		{Label: "a.pdf", Origin: model.OriginPDF, Text: strings.Repeat("x", 2500)},
		{Label: "b.pdf", Origin: model.OriginPDF, Text: "short text"},
	}

	p := BuildBatch(docs, model.LanguageFR, model.BatchSynthesis)

	assert.Contains(t, p, "--- Article 1 : a.pdf ---")
	assert.Contains(t, p, "--- Article 2 : b.pdf ---")
	// Per-article cap of 2000 characters.
	assert.Contains(t, p, strings.Repeat("x", 2000))
	assert.NotContains(t, p, strings.Repeat("x", 2001))
	assert.Contains(t, p, "synthèse comparative")
}

func TestBuildBatchMetaAnalysis(t *testing.T) {
	docs := []model.SourceDocument{
		{Label: "a.pdf", Text: "one"},
		{Label: "b.pdf", Text: "two"},
	}

	p := BuildBatch(docs, model.LanguageFR, model.BatchMetaAnalysis)

	assert.Contains(t, p, "méta-analyse structurée")
	assert.Equal(t, 1, strings.Count(p, "Molécules:"))
}

func TestBuildBatchTotalCap(t *testing.T) {
	var docs []model.SourceDocument
	for i := 0; i < 10; i++ {
		docs = append(docs, model.SourceDocument{Label: "f.pdf", Text: strings.Repeat("y", 2000)})
	}

	p := BuildBatch(docs, model.LanguageEN, model.BatchSynthesis)

	// 10 articles at the per-article cap exceed the 15000 total cap, so the
	// concatenated body must be cut.
	idx := strings.Index(p, "Textes :\n")
	assert.GreaterOrEqual(t, idx, 0)
	body := p[idx+len("Textes :\n"):]
	assert.LessOrEqual(t, len([]rune(body)), 15000)
}

func TestTruncateRuneSafe(t *testing.T) {
	s := strings.Repeat("é", 10)
	out := truncate(s, 5)
	assert.Equal(t, strings.Repeat("é", 5), out)
}
