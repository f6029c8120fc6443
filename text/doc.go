// Package text turns positioned page text into comparable strings.
//
// # Assembly
//
// A PDF engine reports text as [Fragment] values: a string plus its
// baseline position, advance width and font size. [Assemble] groups
// fragments into lines, orders each line by reading direction and inserts
// word breaks where the gap between fragments is wide enough:
//
//	s := text.Assemble(fragments)
//
// [InRegion] restricts fragments to a [model.Region] before assembly.
//
// # Normalization
//
// [RemoveWhitespace] deletes every run of spaces, tabs, carriage returns
// and newlines. [NormalizeUnicode] applies NFC normalization. [Normalizer]
// combines both as configured:
//
//	n := text.Normalizer{RemoveWhitespace: true}
//	equal := n.Apply(a) == n.Apply(b)
//
// # Text Direction
//
// [DetectDirection] classifies a string as [LTR], [RTL] or [Neutral]; lines
// whose fragments are mostly RTL are joined right to left.
package text
