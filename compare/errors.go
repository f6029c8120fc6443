package compare

import (
	"errors"
	"fmt"
	"os"
)

// ErrInvalidInput reports that a path is empty, missing, or not a regular
// file. Comparators turn it into a negative result rather than returning it.
var ErrInvalidInput = errors.New("invalid input file")

// ErrInvalidThreshold is returned for negative thresholds
var ErrInvalidThreshold = errors.New("threshold must not be negative")

// DocumentError reports that the PDF engine could not open or read a file.
// It means the documents could not be compared, which is distinct from the
// documents being different.
type DocumentError struct {
	Path string
	Op   string // "open", "count pages of", "extract text from", "rasterize"
	Page int    // 0 when not page specific
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("failed to %s page %d of %s: %v", e.Op, e.Page, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// IsDocumentError reports whether err is or wraps a *DocumentError
func IsDocumentError(err error) bool {
	var de *DocumentError
	return errors.As(err, &de)
}

// wrapDocumentError returns err unchanged when it already is a
// *DocumentError and wraps it otherwise.
func wrapDocumentError(path, op string, page int, err error) error {
	var de *DocumentError
	if errors.As(err, &de) {
		return err
	}
	return &DocumentError{Path: path, Op: op, Page: page, Err: err}
}

// checkInput verifies that path names an existing regular file
func checkInput(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidInput)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrInvalidInput, path)
	}
	return nil
}
