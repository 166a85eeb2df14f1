package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperscan/internal/model"
)

const sampleSummaryFR = `Résumé : L'étude évalue un nouvel inhibiteur de kinase.
Molécules mentionnées : imatinib, dasatinib
Pathologies ciblées : leucémie myéloïde chronique
Type d'étude : essai clinique de phase II
Auteurs principaux : Dupont J, Martin A`

func TestParseSummaryFrench(t *testing.T) {
	doc := ParseSummary(sampleSummaryFR, model.LanguageFR)

	require.Len(t, doc.Sections, 5)
	assert.Empty(t, doc.Body)

	assert.Equal(t, "summary", doc.Sections[0].Key)
	assert.Equal(t, "Résumé", doc.Sections[0].Title)
	assert.Equal(t, "L'étude évalue un nouvel inhibiteur de kinase.", doc.Sections[0].Content)

	assert.Equal(t, "molecules", doc.Sections[1].Key)
	assert.Equal(t, "imatinib, dasatinib", doc.Sections[1].Content)

	assert.Equal(t, "authors", doc.Sections[4].Key)
	assert.Equal(t, "Dupont J, Martin A", doc.Sections[4].Content)
}

func TestParseSummaryEnglish(t *testing.T) {
	text := "Summary: A trial of a kinase inhibitor.\nMolecules mentioned: imatinib\nStudy type: phase II trial"
	doc := ParseSummary(text, model.LanguageEN)

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "summary", doc.Sections[0].Key)
	assert.Equal(t, "Summary", doc.Sections[0].Title)
	assert.Equal(t, "study_type", doc.Sections[2].Key)
}

func TestParseSummaryCaseInsensitive(t *testing.T) {
	doc := ParseSummary("RÉSUMÉ : texte\nmolécules : aspirine", model.LanguageFR)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "summary", doc.Sections[0].Key)
	assert.Equal(t, "molecules", doc.Sections[1].Key)
}

func TestParseSummaryUnlabeledLines(t *testing.T) {
	text := "Voici l'analyse demandée.\nRésumé : texte principal\nNote finale sans étiquette."
	doc := ParseSummary(text, model.LanguageFR)

	require.Len(t, doc.Sections, 1)
	assert.Equal(t, []string{"Voici l'analyse demandée.", "Note finale sans étiquette."}, doc.Body)
}

func TestParseSummaryUnknownLanguageFallsBackToFrench(t *testing.T) {
	doc := ParseSummary("Résumé : ok", model.Language("de"))
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "summary", doc.Sections[0].Key)
}

func TestRenderText(t *testing.T) {
	doc := ParseSummary(sampleSummaryFR, model.LanguageFR)

	b, contentType, err := Render(doc, FormatTXT, "Analyse")
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", contentType)

	out := string(b)
	assert.True(t, strings.HasPrefix(out, "Analyse\n=======\n"))
	assert.Contains(t, out, "Molécules mentionnées\nimatinib, dasatinib")
}

func TestRenderHTML(t *testing.T) {
	doc := ParseSummary(sampleSummaryFR, model.LanguageFR)

	b, contentType, err := Render(doc, FormatHTML, "Analyse <test>")
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", contentType)

	out := string(b)
	assert.Contains(t, out, "<h2>Pathologies ciblées</h2>")
	assert.Contains(t, out, "leucémie myéloïde chronique")
	// Title must be escaped.
	assert.Contains(t, out, "Analyse &lt;test&gt;")
	assert.NotContains(t, out, "<test>")
}

func TestRenderPDF(t *testing.T) {
	doc := ParseSummary(sampleSummaryFR, model.LanguageFR)

	b, contentType, err := Render(doc, FormatPDF, "Analyse")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.True(t, strings.HasPrefix(string(b), "%PDF-"))
}

func TestRenderDOCX(t *testing.T) {
	doc := ParseSummary(sampleSummaryFR, model.LanguageFR)

	b, contentType, err := Render(doc, FormatDOCX, "Analyse")
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", contentType)
	// DOCX files are zip archives.
	assert.True(t, strings.HasPrefix(string(b), "PK"))
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, _, err := Render(Document{}, Format("csv"), "Analyse")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat(FormatPDF))
	assert.True(t, ValidFormat(FormatTXT))
	assert.False(t, ValidFormat(Format("csv")))
}
