// Package format recognizes PDF files by name and by content.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// HeaderWindow is how far into a file the %PDF- marker is looked for.
// Many readers accept junk before the header, so this matches them.
const HeaderWindow = 1024

var (
	// ErrNotPDF is returned when no PDF header is found
	ErrNotPDF = errors.New("not a PDF file")

	pdfMagic       = []byte("%PDF-")
	versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)`)
)

// Version is the PDF version declared in a file header
type Version struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// IsPDF reports whether filename has a .pdf extension.
func IsPDF(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// Header is the location and version of a "%PDF-x.y" marker
type Header struct {
	// Offset is the position of the '%' in the file. It is non-zero when
	// the file carries leading bytes.
	Offset  int64
	Version Version
}

// DetectFromMagic reports whether data holds a PDF header within the
// first HeaderWindow bytes.
func DetectFromMagic(data []byte) bool {
	_, err := parseHeader(data)
	return err == nil
}

// DetectFromHeader reads the start of r and reports whether it is a PDF.
func DetectFromHeader(r io.Reader) bool {
	_, err := ReadVersion(r)
	return err == nil
}

// ReadVersion reads the start of r and returns the declared PDF version.
func ReadVersion(r io.Reader) (Version, error) {
	h, err := ReadHeader(r)
	return h.Version, err
}

// ReadHeader reads the start of r and locates the PDF header.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderWindow+16)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return Header{}, fmt.Errorf("failed to read header: %w", err)
	}
	return parseHeader(buf[:n])
}

// DetectFile opens path and returns the declared PDF version.
func DetectFile(path string) (Version, error) {
	f, err := os.Open(path)
	if err != nil {
		return Version{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ReadVersion(f)
}

// parseHeader finds "%PDF-x.y" and parses the version
func parseHeader(data []byte) (Header, error) {
	window := data
	if len(window) > HeaderWindow {
		window = window[:HeaderWindow]
	}
	i := bytes.Index(window, pdfMagic)
	if i < 0 {
		return Header{}, ErrNotPDF
	}

	m := versionPattern.FindSubmatch(data[i+len(pdfMagic):])
	if m == nil {
		return Header{}, fmt.Errorf("%w: invalid version after header", ErrNotPDF)
	}
	major, _ := strconv.Atoi(string(m[1]))
	minor, _ := strconv.Atoi(string(m[2]))

	return Header{Offset: int64(i), Version: Version{Major: major, Minor: minor}}, nil
}
