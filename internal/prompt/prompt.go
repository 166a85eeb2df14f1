// Package prompt builds the instruction strings sent to the LLM backends.
//
// The produced prompts ask the model to answer with header-prefixed lines
// ("Résumé: …", "Molécules: …"). Those literal headers are load-bearing:
// export rendering parses output lines by matching these prefixes.
package prompt

import (
	"fmt"
	"strings"

	"paperscan/internal/model"
)

const (
	// Hard caps bounding token cost and latency. Truncation is silent.
	maxSingleChars       = 3000
	maxBatchArticleChars = 2000
	maxBatchTotalChars   = 15000
)

// labels holds the per-language structured-section headers the model is
// instructed to emit.
type labels struct {
	summary     string
	molecules   string
	pathologies string
	studyType   string
	authors     string
}

func labelsFor(lang model.Language) labels {
	if lang == model.LanguageEN {
		return labels{
			summary:     "Summary",
			molecules:   "Molecules",
			pathologies: "Pathologies",
			studyType:   "Type",
			authors:     "Authors",
		}
	}
	return labels{
		summary:     "Résumé",
		molecules:   "Molécules",
		pathologies: "Pathologies",
		studyType:   "Type",
		authors:     "Auteurs",
	}
}

// Build produces the single-document prompt. Source text is truncated to
// the first 3000 characters.
func Build(text string, lang model.Language, depth model.Depth) string {
	l := labelsFor(lang)

	var task string
	if depth == model.DepthDetailed {
		task = "Rédige un résumé détaillé de l'article scientifique ci-dessous, incluant : " +
			"le contexte, l'objectif, la méthodologie, les résultats et la conclusion."
	} else {
		task = "Résume le texte suivant dans un style professionnel, synthétique (5 à 8 lignes max)."
	}

	var b strings.Builder
	b.WriteString("Tu es un assistant scientifique spécialisé dans les articles biomédicaux.\n\n")
	b.WriteString(task)
	b.WriteString("\n\n")
	writeExtractionBlock(&b, l)
	fmt.Fprintf(&b, "\nRéponds en langue : %s\n", strings.ToUpper(string(lang)))
	b.WriteString("\nTexte :\n")
	b.WriteString(truncate(text, maxSingleChars))
	return b.String()
}

// BuildBatch produces the consolidated multi-article prompt. Each article is
// truncated to 2000 characters and the concatenated body to 15000 total.
func BuildBatch(docs []model.SourceDocument, lang model.Language, mode model.BatchMode) string {
	l := labelsFor(lang)

	var task string
	if mode == model.BatchMetaAnalysis {
		task = "Rédige une méta-analyse structurée des articles scientifiques ci-dessous : " +
			"population étudiée, méthodologies comparées, convergences et divergences des résultats, " +
			"limites, et conclusion globale."
	} else {
		task = "Rédige une synthèse comparative des articles scientifiques ci-dessous, " +
			"en dégageant les points communs, les différences et les apports de chaque étude."
	}

	var body strings.Builder
	for i, d := range docs {
		section := fmt.Sprintf("--- Article %d : %s ---\n%s\n\n",
			i+1, d.Label, truncate(d.Text, maxBatchArticleChars))
		body.WriteString(section)
	}

	var b strings.Builder
	b.WriteString("Tu es un assistant scientifique spécialisé dans les articles biomédicaux.\n\n")
	b.WriteString(task)
	b.WriteString("\n\n")
	writeExtractionBlock(&b, l)
	fmt.Fprintf(&b, "\nRéponds en langue : %s\n", strings.ToUpper(string(lang)))
	b.WriteString("\nTextes :\n")
	b.WriteString(truncate(body.String(), maxBatchTotalChars))
	return b.String()
}

// writeExtractionBlock appends the answer-format instruction. Every template
// requests the same trailing structured block so export parsing works
// identically for single and batch results.
func writeExtractionBlock(b *strings.Builder, l labels) {
	b.WriteString("Termine ta réponse par des lignes préfixées exactement ainsi :\n")
	fmt.Fprintf(b, "%s: <le résumé demandé>\n", l.summary)
	fmt.Fprintf(b, "%s: <molécules mentionnées>\n", l.molecules)
	fmt.Fprintf(b, "%s: <pathologies ciblées>\n", l.pathologies)
	fmt.Fprintf(b, "%s: <type d'étude (préclinique, clinique, etc.)>\n", l.studyType)
	fmt.Fprintf(b, "%s: <auteurs principaux>\n", l.authors)
}

// truncate cuts s to at most n runes without splitting a multibyte character.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
