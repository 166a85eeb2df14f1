// Package export parses the header-prefixed summary text produced by the
// analysis pipeline and renders it into downloadable formats.
package export

import (
	"strings"

	"paperscan/internal/model"
)

// Section is one labeled block recovered from a summary.
type Section struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Document is the structured form of a model answer. Lines that match no
// known header accumulate as free-text body instead of being silently
// appended to the previous section.
type Document struct {
	Body     []string  `json:"body,omitempty"`
	Sections []Section `json:"sections"`
}

// sectionKey pairs a case-insensitive line prefix with the canonical
// section it identifies.
type sectionKey struct {
	prefix string
	key    string
	title  string
}

// Recognized headers per supported language, in display order. Prefixes are
// intentionally loose ("moléc" also catches "Molécule") to tolerate model
// variation, matching what the produced prompts request.
var sectionSchemas = map[model.Language][]sectionKey{
	model.LanguageFR: {
		{prefix: "résumé", key: "summary", title: "Résumé"},
		{prefix: "moléc", key: "molecules", title: "Molécules mentionnées"},
		{prefix: "patho", key: "pathologies", title: "Pathologies ciblées"},
		{prefix: "type", key: "study_type", title: "Type d'étude"},
		{prefix: "auteur", key: "authors", title: "Auteurs principaux"},
	},
	model.LanguageEN: {
		{prefix: "summary", key: "summary", title: "Summary"},
		{prefix: "molecule", key: "molecules", title: "Molecules mentioned"},
		{prefix: "patho", key: "pathologies", title: "Targeted pathologies"},
		{prefix: "type", key: "study_type", title: "Study type"},
		{prefix: "author", key: "authors", title: "Principal authors"},
	},
}

// ParseSummary splits a summary into labeled sections using the
// per-language header schema. Header matching is case-insensitive and only
// applies to lines of the form "<Header>: <content>".
func ParseSummary(text string, lang model.Language) Document {
	schema, ok := sectionSchemas[lang]
	if !ok {
		schema = sectionSchemas[model.LanguageFR]
	}

	var doc Document
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if sec, ok := matchSection(line, schema); ok {
			doc.Sections = append(doc.Sections, sec)
			continue
		}
		doc.Body = append(doc.Body, line)
	}
	return doc
}

func matchSection(line string, schema []sectionKey) (Section, bool) {
	head, content, found := strings.Cut(line, ":")
	if !found {
		return Section{}, false
	}

	normalized := strings.ToLower(strings.TrimSpace(head))
	for _, sk := range schema {
		if strings.HasPrefix(normalized, sk.prefix) {
			return Section{
				Key:     sk.key,
				Title:   sk.title,
				Content: strings.TrimSpace(content),
			}, true
		}
	}
	return Section{}, false
}
