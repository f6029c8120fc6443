// Package reader opens PDF files for comparison.
//
// A [Document] reads text through rsc.io/pdf and renders pages through
// MuPDF (go-fitz). [Engine] implements compare.Engine:
//
//	engine, err := reader.NewEngine(reader.Options{Logger: logger})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := engine.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
// # Text Extraction
//
// ExtractText collects the glyphs of a page, keeps those centered inside
// the requested region, and joins them into lines in reading order (right
// to left for Arabic and Hebrew lines). Scanned pages carry no glyphs;
// with [Options.OCR] set, such pages are rendered and passed to Tesseract.
//
// rsc.io/pdf only knows "%PDF-1.x" headers at the start of the file. PDF
// 2.0 files and files with bytes before the header are shown to it with a
// rewritten header. Files it still cannot parse are read entirely through
// MuPDF, which repairs damaged cross-reference tables; their text comes
// from MuPDF's own line layout.
//
// # Rendering
//
// Rasterize renders a page with MuPDF at a given resolution. The renderer is
// only loaded on first use, so text-only comparisons never pay for it.
// Concurrent calls render on separate MuPDF documents.
//
// Both libraries can fail on malformed files. Open and every page method
// turn such failures, including parser panics, into errors.
package reader
