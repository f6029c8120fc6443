package reader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildPDF assembles a PDF with one page per content stream, using
// Courier at fixed widths so glyph positions are predictable. An empty
// content string produces a page without /Contents.
func buildPDF(contents ...string) []byte {
	return buildPDFWithHeader("%PDF-1.4\n", contents...)
}

// buildPDFWithHeader is buildPDF with a custom header. Anything before the
// "%PDF-" marker counts towards the cross-reference offsets.
func buildPDFWithHeader(header string, contents ...string) []byte {
	var (
		buf     bytes.Buffer
		offsets []int
	)
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString(header)

	// 1: catalog, 2: pages, 3: font, then page/content pairs
	kids := make([]string, len(contents))
	next := 4
	for i, c := range contents {
		kids[i] = fmt.Sprintf("%d 0 R", next)
		next++
		if c != "" {
			next++
		}
	}

	widths := strings.TrimSpace(strings.Repeat("600 ", 95))

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), len(contents)))
	obj(fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Courier /FirstChar 32 /LastChar 126 /Widths [%s] >>", widths))

	for _, c := range contents {
		page := len(offsets) + 1
		if c == "" {
			obj("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> >>")
			continue
		}
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", page+1))
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(c)+1, c))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}

// line returns a content stream showing s at (x, y) in 12pt Courier
func line(x, y float64, s string) string {
	return fmt.Sprintf("BT /F1 12 Tf %g %g Td (%s) Tj ET", x, y, s)
}

func writePDF(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to create temp PDF: %v", err)
	}
	return path
}
