package compare

import (
	"fmt"

	"go.uber.org/zap"
)

// Kind classifies the first difference found between two documents
type Kind int

const (
	KindNone Kind = iota
	KindInvalidInput
	KindPageCount
	KindText
	KindDimensions
	KindPixel
	KindPage
	KindDocument
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidInput:
		return "invalid input"
	case KindPageCount:
		return "page count"
	case KindText:
		return "text"
	case KindDimensions:
		return "dimensions"
	case KindPixel:
		return "pixel"
	case KindPage:
		return "page"
	case KindDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Violation describes the first difference that decided a comparison.
type Violation struct {
	Kind Kind

	// Page is the 1-indexed page, 0 for document-level violations.
	Page int

	// Region is the index of the region being compared, -1 for whole-page
	// text or non-text violations.
	Region int

	// X and Y locate a pixel violation.
	X, Y int

	// Diff and Threshold are set for pixel, page and document violations.
	Diff      int64
	Threshold int64

	// Expected and Actual describe the two sides: page counts, image sizes
	// or text around the first differing position.
	Expected string
	Actual   string
}

// String renders a one-line description
func (v *Violation) String() string {
	switch v.Kind {
	case KindInvalidInput:
		return fmt.Sprintf("invalid input: %s", v.Actual)
	case KindPageCount:
		return fmt.Sprintf("page count differs: %s vs %s", v.Expected, v.Actual)
	case KindText:
		where := fmt.Sprintf("page %d", v.Page)
		if v.Region >= 0 {
			where = fmt.Sprintf("page %d region %d", v.Page, v.Region)
		}
		return fmt.Sprintf("text differs on %s: %q vs %q", where, v.Expected, v.Actual)
	case KindDimensions:
		return fmt.Sprintf("page %d size differs: %s vs %s", v.Page, v.Expected, v.Actual)
	case KindPixel:
		return fmt.Sprintf("page %d pixel %dx%d differs by %d (threshold %d)", v.Page, v.X, v.Y, v.Diff, v.Threshold)
	case KindPage:
		return fmt.Sprintf("page %d differs by %d (threshold %d)", v.Page, v.Diff, v.Threshold)
	case KindDocument:
		return fmt.Sprintf("document differs by %d (threshold %d)", v.Diff, v.Threshold)
	default:
		return v.Kind.String()
	}
}

// fields returns the structured log fields for v
func (v *Violation) fields() []zap.Field {
	fields := []zap.Field{zap.Stringer("kind", v.Kind)}
	if v.Page > 0 {
		fields = append(fields, zap.Int("page", v.Page))
	}

	switch v.Kind {
	case KindText:
		fields = append(fields,
			zap.Int("region", v.Region),
			zap.String("expected", v.Expected),
			zap.String("actual", v.Actual))
	case KindPixel:
		fields = append(fields,
			zap.Int("x", v.X),
			zap.Int("y", v.Y),
			zap.Int64("diff", v.Diff),
			zap.Int64("threshold", v.Threshold))
	case KindPage, KindDocument:
		fields = append(fields,
			zap.Int64("diff", v.Diff),
			zap.Int64("threshold", v.Threshold))
	case KindPageCount, KindDimensions, KindInvalidInput:
		fields = append(fields,
			zap.String("expected", v.Expected),
			zap.String("actual", v.Actual))
	}

	return fields
}

// Result is the outcome of a comparison
type Result struct {
	Equal bool

	// Violation is the first difference found; nil when Equal is true.
	Violation *Violation

	// Pages is the number of pages examined before the comparison ended.
	Pages int

	// DocumentDiff is the accumulated pixel difference over all examined
	// pages that passed their page threshold. Always 0 for text comparisons.
	DocumentDiff int64
}

func equalResult(pages int, diff int64) *Result {
	return &Result{Equal: true, Pages: pages, DocumentDiff: diff}
}

func differentResult(v *Violation, pages int, diff int64) *Result {
	return &Result{Violation: v, Pages: pages, DocumentDiff: diff}
}
