package compare

import (
	"strconv"

	"go.uber.org/zap"
)

// comparePair validates both paths, opens both documents, runs fn and logs
// the outcome. Each opened document is closed when comparePair returns,
// whether fn succeeds, reports a difference, fails or panics.
func comparePair(engine Engine, logger *zap.Logger, pathA, pathB string, fn func(a, b Document) (*Result, error)) (*Result, error) {
	for _, path := range []string{pathA, pathB} {
		if err := checkInput(path); err != nil {
			v := &Violation{Kind: KindInvalidInput, Region: -1, Actual: err.Error()}
			logger.Info("documents differ", v.fields()...)
			return differentResult(v, 0, 0), nil
		}
	}

	a, err := engine.Open(pathA)
	if err != nil {
		return nil, wrapDocumentError(pathA, "open", 0, err)
	}
	defer closeDocument(logger, pathA, a)

	b, err := engine.Open(pathB)
	if err != nil {
		return nil, wrapDocumentError(pathB, "open", 0, err)
	}
	defer closeDocument(logger, pathB, b)

	res, err := fn(a, b)
	if err != nil {
		return nil, err
	}

	if res.Violation != nil {
		logger.Info("documents differ", res.Violation.fields()...)
	} else {
		logger.Debug("documents equal",
			zap.Int("pages", res.Pages),
			zap.Int64("diff", res.DocumentDiff))
	}
	return res, nil
}

func closeDocument(logger *zap.Logger, path string, doc Document) {
	if err := doc.Close(); err != nil {
		logger.Warn("failed to close document", zap.String("path", path), zap.Error(err))
	}
}

// pageCounts returns the shared page count, or a violation when the
// documents have different numbers of pages.
func pageCounts(pathA, pathB string, a, b Document) (int, *Violation, error) {
	countA, err := a.PageCount()
	if err != nil {
		return 0, nil, wrapDocumentError(pathA, "count pages of", 0, err)
	}
	countB, err := b.PageCount()
	if err != nil {
		return 0, nil, wrapDocumentError(pathB, "count pages of", 0, err)
	}

	if countA != countB {
		return 0, &Violation{
			Kind:     KindPageCount,
			Region:   -1,
			Expected: strconv.Itoa(countA),
			Actual:   strconv.Itoa(countB),
		}, nil
	}
	return countA, nil, nil
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
