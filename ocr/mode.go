package ocr

// PageSegMode controls how Tesseract analyzes the layout of an image.
type PageSegMode int

// Page segmentation modes. Values match Tesseract's numbering.
const (
	ModeAuto        PageSegMode = 3  // fully automatic page layout
	ModeSingleBlock PageSegMode = 6  // one uniform block of text
	ModeSingleLine  PageSegMode = 7  // one text line
	ModeSparseText  PageSegMode = 11 // as much text as possible, in no order
)

// DefaultLanguage is used when no language is configured
const DefaultLanguage = "eng"

// Options configures a recognition
type Options struct {
	// Language is a Tesseract language code, or several joined with "+"
	// such as "eng+deu". Empty selects DefaultLanguage.
	Language string

	// Mode is the page segmentation mode. Zero selects ModeAuto.
	Mode PageSegMode
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.Mode == 0 {
		o.Mode = ModeAuto
	}
	return o
}
