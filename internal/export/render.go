package export

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gingfrederik/docx"
	"github.com/go-pdf/fpdf"
)

// Format selects an output renderer.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatTXT  Format = "txt"
)

// ErrUnsupportedFormat is returned for formats Render does not know.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ValidFormat reports whether f names a supported renderer.
func ValidFormat(f Format) bool {
	switch f {
	case FormatPDF, FormatDOCX, FormatHTML, FormatTXT:
		return true
	}
	return false
}

// Render produces the document in the requested format and returns the bytes
// together with the matching Content-Type.
func Render(doc Document, format Format, title string) ([]byte, string, error) {
	switch format {
	case FormatPDF:
		b, err := renderPDF(doc, title)
		return b, "application/pdf", err
	case FormatDOCX:
		b, err := renderDOCX(doc, title)
		return b, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", err
	case FormatHTML:
		b, err := renderHTML(doc, title)
		return b, "text/html; charset=utf-8", err
	case FormatTXT:
		return renderText(doc, title), "text/plain; charset=utf-8", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func renderText(doc Document, title string) []byte {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(title)))
	b.WriteString("\n\n")

	for _, sec := range doc.Sections {
		fmt.Fprintf(&b, "%s\n%s\n\n", sec.Title, sec.Content)
	}
	if len(doc.Body) > 0 {
		b.WriteString(strings.Join(doc.Body, "\n"))
		b.WriteString("\n")
	}
	return []byte(b.String())
}

var htmlTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 52rem; margin: 2rem auto; color: #1a1a1a; }
h1 { border-bottom: 2px solid #2c5f8a; padding-bottom: .4rem; }
h2 { color: #2c5f8a; margin-bottom: .2rem; }
p { margin-top: .2rem; line-height: 1.5; }
footer { margin-top: 3rem; font-size: .8rem; color: #777; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Sections}}<h2>{{.Title}}</h2>
<p>{{.Content}}</p>
{{end}}{{range .Body}}<p>{{.}}</p>
{{end}}<footer>Généré le {{.Date}}</footer>
</body>
</html>
`))

func renderHTML(doc Document, title string) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Title    string
		Sections []Section
		Body     []string
		Date     string
	}{
		Title:    title,
		Sections: doc.Sections,
		Body:     doc.Body,
		Date:     time.Now().Format("02/01/2006"),
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPDF(doc Document, title string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252 only; translate so accented French survives.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 9, tr(title), "", "C", false)
	pdf.Ln(4)

	for _, sec := range doc.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, tr(sec.Title), "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(sec.Content), "", "J", false)
		pdf.Ln(3)
	}
	if len(doc.Body) > 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(strings.Join(doc.Body, "\n")), "", "J", false)
	}

	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 5, tr("Généré le "+time.Now().Format("02/01/2006")), "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderDOCX(doc Document, title string) ([]byte, error) {
	f := docx.NewFile()

	p := f.AddParagraph()
	p.AddText(title).Size(16)

	for _, sec := range doc.Sections {
		h := f.AddParagraph()
		h.AddText(sec.Title).Size(13)
		body := f.AddParagraph()
		body.AddText(sec.Content).Size(11)
	}
	for _, line := range doc.Body {
		p := f.AddParagraph()
		p.AddText(line).Size(11)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("render docx: %w", err)
	}
	return buf.Bytes(), nil
}
