package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a minimal uncompressed single-font PDF, one text line
// per page, with a correct cross-reference table.
func buildPDF(pages []string) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
	}
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", escapePDF(text))
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func escapePDF(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}

func TestExtractSinglePage(t *testing.T) {
	data := buildPDF([]string{"Jane Smith - Senior Software Engineer - jane.smith@example.com"})

	text, err := NewPDFExtractor(0).Extract(data)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}
	if !strings.Contains(text, "Jane Smith") {
		t.Errorf("extracted text %q does not contain the candidate name", text)
	}
	if !strings.Contains(text, "jane.smith@example.com") {
		t.Errorf("extracted text %q does not contain the email", text)
	}
}

func TestExtractPreservesPageOrder(t *testing.T) {
	data := buildPDF([]string{
		"Page one: professional summary and contact details",
		"Page two: education history and certifications",
	})

	text, err := NewPDFExtractor(0).Extract(data)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}

	first := strings.Index(text, "Page one")
	second := strings.Index(text, "Page two")
	if first == -1 || second == -1 {
		t.Fatalf("extracted text missing page content: %q", text)
	}
	if first > second {
		t.Errorf("page order not preserved: %q", text)
	}
}

func TestExtractSizeLimitBoundary(t *testing.T) {
	data := buildPDF([]string{"Jane Smith - Senior Software Engineer at Acme Corp"})

	t.Run("input at exactly the limit succeeds", func(t *testing.T) {
		_, err := NewPDFExtractor(int64(len(data))).Extract(data)
		if err != nil {
			t.Errorf("Extract() returned error for input at the limit: %v", err)
		}
	})

	t.Run("one byte over the limit fails fast", func(t *testing.T) {
		_, err := NewPDFExtractor(int64(len(data)) - 1).Extract(data)
		if !errors.Is(err, ErrDocumentTooLarge) {
			t.Errorf("Extract() error = %v, want ErrDocumentTooLarge", err)
		}
	})
}

func TestExtractUnreadableDocument(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "plain text bytes", data: []byte("this is definitely not a PDF document at all")},
		{name: "truncated header", data: []byte("%PDF-1.4\n1 0 obj\n<< broken")},
		{name: "empty input", data: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPDFExtractor(0).Extract(tt.data)
			if !errors.Is(err, ErrUnreadableDocument) {
				t.Errorf("Extract() error = %v, want ErrUnreadableDocument", err)
			}
		})
	}
}

func TestExtractNoUsableText(t *testing.T) {
	// A structurally valid page with no text layer, like a scan.
	data := buildPDF([]string{""})

	_, err := NewPDFExtractor(0).Extract(data)
	if !errors.Is(err, ErrNoText) {
		t.Errorf("Extract() error = %v, want ErrNoText", err)
	}
}

func TestExtractTextOnlyPagesDoNotAbortDocument(t *testing.T) {
	// An empty page between two text pages contributes nothing but must not
	// fail the document.
	data := buildPDF([]string{
		"Jane Smith, Senior Software Engineer",
		"",
		"Education: BSc Computer Science, University of Leeds",
	})

	text, err := NewPDFExtractor(0).Extract(data)
	if err != nil {
		t.Fatalf("Extract() returned error: %v", err)
	}
	if !strings.Contains(text, "Jane Smith") || !strings.Contains(text, "University of Leeds") {
		t.Errorf("extracted text missing surrounding pages: %q", text)
	}
}
