// Package extract turns an in-memory PDF into plain text for the model.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MinTextLength is the minimum number of extracted characters for a
// document to count as readable resume text.
const MinTextLength = 20

var (
	// ErrDocumentTooLarge means the input exceeded the configured size limit.
	ErrDocumentTooLarge = errors.New("document exceeds the size limit")
	// ErrUnreadableDocument means the bytes could not be parsed as a PDF
	// (corrupted, encrypted, or not a PDF at all).
	ErrUnreadableDocument = errors.New("unreadable document")
	// ErrNoText means the PDF parsed but yielded no usable text, e.g. a
	// scan with no text layer.
	ErrNoText = errors.New("no extractable text in document")
)

// PDFExtractor extracts text from PDF byte streams. It is stateless apart
// from its size limit and safe for concurrent use.
type PDFExtractor struct {
	maxBytes int64
}

// NewPDFExtractor returns an extractor that rejects inputs larger than
// maxBytes. A non-positive limit disables the check.
func NewPDFExtractor(maxBytes int64) *PDFExtractor {
	return &PDFExtractor{maxBytes: maxBytes}
}

// Extract produces the concatenated text of every page in order, pages
// separated by a blank line. Pages without a text layer contribute an empty
// string rather than failing the document. The size limit is enforced
// before any parsing happens.
func (e *PDFExtractor) Extract(data []byte) (text string, err error) {
	if e.maxBytes > 0 && int64(len(data)) > e.maxBytes {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrDocumentTooLarge, len(data), e.maxBytes)
	}

	// The pdf package panics on some malformed cross-reference tables
	// instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", ErrUnreadableDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(content))
	}

	text = strings.TrimSpace(strings.Join(pages, "\n\n"))
	if len(text) < MinTextLength {
		return "", ErrNoText
	}
	return text, nil
}
