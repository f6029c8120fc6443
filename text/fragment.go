package text

import (
	"sort"
	"strings"
)

// Fragment is a piece of page text with its position in PDF user space.
// X and Y locate the start of the baseline.
type Fragment struct {
	Text      string
	X, Y      float64
	Width     float64
	FontName  string
	FontSize  float64
	Direction Direction
}

// NewFragment creates a fragment and detects its direction
func NewFragment(s string, x, y, width, fontSize float64, fontName string) Fragment {
	return Fragment{
		Text:      s,
		X:         x,
		Y:         y,
		Width:     width,
		FontName:  fontName,
		FontSize:  fontSize,
		Direction: DetectDirection(s),
	}
}

// Height approximates the glyph box height from the font size
func (f Fragment) Height() float64 {
	if f.FontSize <= 0 {
		return 1
	}
	return f.FontSize
}

// Assemble joins fragments into page text. Consecutive fragments whose
// baselines are within half a line height form a line; each line is ordered
// by its reading direction, words are separated by a single space where the
// gap between fragments suggests one, and lines are joined with newlines.
func Assemble(fragments []Fragment) string {
	if len(fragments) == 0 {
		return ""
	}

	lines := groupLines(fragments)

	var sb strings.Builder
	for i, line := range lines {
		dir := lineDirection(line)
		ordered := orderLine(line, dir)

		for j, frag := range ordered {
			sb.WriteString(frag.Text)
			if j < len(ordered)-1 && needsSpace(frag, ordered[j+1], dir) {
				sb.WriteByte(' ')
			}
		}

		if i < len(lines)-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// groupLines splits fragments, in content order, into lines
func groupLines(fragments []Fragment) [][]Fragment {
	lines := make([][]Fragment, 0)
	current := []Fragment{fragments[0]}

	for i := 1; i < len(fragments); i++ {
		prev := fragments[i-1]
		frag := fragments[i]

		if abs(frag.Y-prev.Y) <= prev.Height()*0.5 {
			current = append(current, frag)
			continue
		}
		lines = append(lines, current)
		current = []Fragment{frag}
	}

	return append(lines, current)
}

// orderLine returns a copy of line sorted by X, ascending for LTR lines and
// descending for RTL lines.
func orderLine(line []Fragment, dir Direction) []Fragment {
	ordered := make([]Fragment, len(line))
	copy(ordered, line)

	sort.SliceStable(ordered, func(i, j int) bool {
		if dir == RTL {
			return ordered[i].X > ordered[j].X
		}
		return ordered[i].X < ordered[j].X
	})

	return ordered
}

// needsSpace reports whether the gap between two neighbouring fragments is
// wide enough to be a word break that the PDF did not encode as a glyph.
func needsSpace(frag, next Fragment, dir Direction) bool {
	if endsWithSpace(frag.Text) || startsWithSpace(next.Text) {
		return false
	}

	gap := next.X - (frag.X + frag.Width)
	if dir == RTL {
		gap = frag.X - (next.X + next.Width)
	}

	// Estimated space width is a quarter em; half of it counts as a break.
	return gap >= frag.FontSize*0.25*0.5
}

func endsWithSpace(s string) bool {
	return s != "" && isSpace(s[len(s)-1])
}

func startsWithSpace(s string) bool {
	return s != "" && isSpace(s[0])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
