// Package compare decides whether two PDF documents are equivalent.
//
// Two independent strategies are provided. Both open the documents through
// an [Engine], compare page counts first, walk pages in order and stop at
// the first difference.
//
// # Text Comparison
//
// [TextComparator] extracts the text of every page, or of every configured
// [model.Region] of every page, and compares the strings byte for byte,
// optionally after removing whitespace:
//
//	c := compare.NewTextComparator(engine, compare.TextOptions{RemoveWhitespace: true}, logger)
//	equal, err := c.Equal("a.pdf", "b.pdf")
//
// # Image Comparison
//
// [ImageComparator] renders each page at a low resolution and compares the
// pixels column by column. A pixel differs by |dR|+|dG|+|dB|. The
// comparison fails as soon as a pixel exceeds [Thresholds.Pixel], a page sum
// exceeds [Thresholds.Page], or the document sum exceeds
// [Thresholds.Document]:
//
//	c, err := compare.NewImageComparator(engine, compare.ImageOptions{}, logger)
//	res, err := c.Compare("a.pdf", "b.pdf")
//	if !res.Equal {
//	    fmt.Println(res.Violation)
//	}
//
// # Errors
//
// Missing files are not errors: they produce an unequal [Result] with a
// [KindInvalidInput] violation. Files the engine cannot read produce a
// [*DocumentError], so "could not compare" is never reported as "different".
// Documents are closed on every return path.
package compare
