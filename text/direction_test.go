package text

import (
	"testing"
)

func TestCharDirection(t *testing.T) {
	tests := []struct {
		name string
		char rune
		want Direction
	}{
		{"Arabic alif", 'ا', RTL},
		{"Arabic meem", 'م', RTL},
		{"Hebrew alef", 'א', RTL},
		{"Hebrew shin", 'ש', RTL},
		{"Latin A", 'A', LTR},
		{"Latin é", 'é', LTR},
		{"Cyrillic я", 'я', LTR},
		{"Greek Omega", 'Ω', LTR},
		{"CJK 中", '中', LTR},
		{"Space", ' ', Neutral},
		{"Digit 5", '5', Neutral},
		{"Arabic-Indic digit", '٣', Neutral},
		{"Period", '.', Neutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CharDirection(tt.char); got != tt.want {
				t.Errorf("CharDirection(%q U+%04X) = %v, want %v", tt.char, tt.char, got, tt.want)
			}
		})
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
	}{
		{"", Neutral},
		{"123 !?", Neutral},
		{"Hello", LTR},
		{"שלום", RTL},
		{"مرحبا world", RTL},
		{"hello עם", LTR},
	}

	for _, tt := range tests {
		if got := DetectDirection(tt.input); got != tt.want {
			t.Errorf("DetectDirection(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDirection_String(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{LTR, "LTR"},
		{RTL, "RTL"},
		{Neutral, "Neutral"},
		{Direction(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.d, got, tt.want)
		}
	}
}
