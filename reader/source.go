package reader

import (
	"io"

	"rsc.io/pdf"

	"github.com/tsawler/pdfdiff/format"
)

// headerView presents a PDF to rsc.io/pdf with a "%PDF-1.x" header at
// offset zero. The parser rejects anything else, including PDF 2.0 headers
// and leading bytes before the header.
type headerView struct {
	r      io.ReaderAt
	header []byte
}

func (v headerView) ReadAt(p []byte, off int64) (int, error) {
	n, err := v.r.ReadAt(p, off)
	if off < int64(len(v.header)) {
		copy(p[:n], v.header[off:])
	}
	return n, err
}

// parserHeader is the header shown to rsc.io/pdf for a declared version.
// Versions above 1.7 share the 1.7 file structure.
func parserHeader(v format.Version) []byte {
	minor := byte('7')
	if v.Major == 1 && v.Minor >= 0 && v.Minor <= 7 {
		minor = byte('0' + v.Minor)
	}
	return []byte{'%', 'P', 'D', 'F', '-', '1', '.', minor, '\n'}
}

// parse opens the file with rsc.io/pdf. Byte offsets in files with leading
// bytes are usually counted from the header, sometimes from the start of
// the file; both are tried.
func parse(r io.ReaderAt, size int64, h format.Header) (*pdf.Reader, int, error) {
	bases := []int64{h.Offset}
	if h.Offset > 0 {
		bases = append(bases, 0)
	}

	var firstErr error
	for _, base := range bases {
		view := headerView{
			r:      io.NewSectionReader(r, base, size-base),
			header: parserHeader(h.Version),
		}

		var (
			pr    *pdf.Reader
			pages int
		)
		err := guard(func() error {
			var err error
			pr, err = pdf.NewReader(view, size-base)
			if err != nil {
				return err
			}
			pages = pr.NumPage()
			return nil
		})
		if err == nil {
			return pr, pages, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, 0, firstErr
}
