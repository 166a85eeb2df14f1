// Package extract turns heterogeneous inputs (PDF bytes, PubMed URLs) into
// plain source text for prompt construction. Extracted text is ephemeral and
// never persisted.
package extract

import "errors"

var (
	// ErrUnreadableDocument means the byte buffer could not be parsed as a document.
	ErrUnreadableDocument = errors.New("unreadable document")
	// ErrEmptyText means the document parsed but yielded no extractable text
	// layer (typical for scanned-image PDFs). Callers must treat this as a
	// failure rather than silently proceeding with an empty prompt.
	ErrEmptyText = errors.New("document contains no extractable text")
	// ErrFetchFailed wraps network or non-2xx failures while fetching a URL.
	ErrFetchFailed = errors.New("fetch failed")
)
