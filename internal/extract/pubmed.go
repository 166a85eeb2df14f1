package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Fixed structural regions of a PubMed article page. PubMed gates full text
// for many articles but still exposes these.
const (
	pubmedAbstractSelector = "div.abstract-content"
	pubmedTitleSelector    = "h1.heading-title"
	pubmedAuthorSelector   = "a.full-name"

	// noAbstractPlaceholder is substituted when the abstract region is
	// absent: degrade-not-fail, a title plus authors is still worth
	// summarizing.
	noAbstractPlaceholder = "[no abstract found]"

	pubmedFetchTimeout = 10 * time.Second
)

// PubMedExtractor fetches a PubMed article page and concatenates its
// title, abstract and author names into one source text.
type PubMedExtractor struct {
	client *http.Client
}

// NewPubMedExtractor returns a PubMedExtractor with a bounded fetch timeout.
func NewPubMedExtractor() *PubMedExtractor {
	return &PubMedExtractor{client: &http.Client{Timeout: pubmedFetchTimeout}}
}

// IsPubMedURL reports whether raw points at a PubMed article page.
func IsPubMedURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "pubmed.ncbi.nlm.nih.gov" {
		return true
	}
	// Legacy URL shape still redirects to the current site.
	return host == "www.ncbi.nlm.nih.gov" && strings.HasPrefix(u.Path, "/pubmed")
}

// Extract fetches the article page and returns "Title / Abstract / Authors"
// as one newline-joined string. Returns ErrFetchFailed on transport errors
// or non-2xx responses.
func (e *PubMedExtractor) Extract(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", "paperscan/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return scrapeArticle(doc), nil
}

func scrapeArticle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find(pubmedTitleSelector).First().Text())

	abstract := noAbstractPlaceholder
	if sel := doc.Find(pubmedAbstractSelector).First(); sel.Length() > 0 {
		if t := strings.Join(strings.Fields(sel.Text()), " "); t != "" {
			abstract = t
		}
	}

	var authors []string
	seen := make(map[string]bool)
	doc.Find(pubmedAuthorSelector).Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		if name != "" && !seen[name] {
			seen[name] = true
			authors = append(authors, name)
		}
	})

	return fmt.Sprintf("Title: %s\nAbstract: %s\nAuthors: %s",
		title, abstract, strings.Join(authors, ", "))
}
