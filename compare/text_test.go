package compare

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfdiff/model"
)

func TestTextComparator_Reflexive(t *testing.T) {
	engine := newFakeEngine()
	doc := engine.add(t, "doc.pdf", textPage("Page one"), textPage("Page two"))

	for _, removeWS := range []bool{true, false} {
		c := NewTextComparator(engine, TextOptions{RemoveWhitespace: removeWS}, nil)
		equal, err := c.Equal(doc, doc)
		require.NoError(t, err)
		assert.True(t, equal, "removeWhitespace=%v", removeWS)
	}
	engine.assertAllClosed(t)
}

func TestTextComparator_PageCountMismatch(t *testing.T) {
	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", textPage("same"))
	b := engine.add(t, "b.pdf", textPage("same"), textPage(""))

	res, err := NewTextComparator(engine, TextOptions{}, nil).Compare(a, b)
	require.NoError(t, err)

	assert.False(t, res.Equal)
	require.NotNil(t, res.Violation)
	assert.Equal(t, KindPageCount, res.Violation.Kind)
	assert.Equal(t, "1", res.Violation.Expected)
	assert.Equal(t, "2", res.Violation.Actual)
	assert.Zero(t, engine.countCalls("text"), "no text should be extracted when page counts differ")
	engine.assertAllClosed(t)
}

func TestTextComparator_WhitespaceNormalization(t *testing.T) {
	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", textPage("The quick brown\nfox"))
	b := engine.add(t, "b.pdf", textPage("The  quick\tbrown fox\r\n"))

	equal, err := NewTextComparator(engine, TextOptions{RemoveWhitespace: true}, nil).Equal(a, b)
	require.NoError(t, err)
	assert.True(t, equal, "texts differing only in whitespace should match when whitespace is removed")

	equal, err = NewTextComparator(engine, TextOptions{RemoveWhitespace: false}, nil).Equal(a, b)
	require.NoError(t, err)
	assert.False(t, equal, "texts differing in whitespace should not match when whitespace is kept")
}

func TestTextComparator_CaseSensitive(t *testing.T) {
	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", textPage("Becoming"))
	b := engine.add(t, "b.pdf", textPage("becoming"))

	equal, err := NewTextComparator(engine, TextOptions{RemoveWhitespace: true}, nil).Equal(a, b)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestTextComparator_NormalizeUnicode(t *testing.T) {
	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", textPage("Cafe\u0301"))
	b := engine.add(t, "b.pdf", textPage("Caf\u00e9"))

	equal, err := NewTextComparator(engine, TextOptions{}, nil).Equal(a, b)
	require.NoError(t, err)
	assert.False(t, equal, "byte comparison must not normalize Unicode by default")

	equal, err = NewTextComparator(engine, TextOptions{NormalizeUnicode: true}, nil).Equal(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestTextComparator_RegionIsolation(t *testing.T) {
	header := model.NewRegion(0, 842, 595, 760)

	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", fakePage{
		text:    "Invoice\nTotal: 100",
		regions: map[model.Region]string{header: "Invoice"},
	})
	b := engine.add(t, "b.pdf", fakePage{
		text:    "Invoice\nTotal: 250",
		regions: map[model.Region]string{header: "Invoice"},
	})

	equal, err := NewTextComparator(engine, TextOptions{Regions: []model.Region{header}}, nil).Equal(a, b)
	require.NoError(t, err)
	assert.True(t, equal, "documents differing only outside the region should match")

	equal, err = NewTextComparator(engine, TextOptions{}, nil).Equal(a, b)
	require.NoError(t, err)
	assert.False(t, equal, "whole-page comparison should see the difference")
}

func TestTextComparator_StopsAtFirstDifferingRegion(t *testing.T) {
	r1 := model.NewRegion(0, 100, 100, 0)
	r2 := model.NewRegion(100, 100, 200, 0)
	r3 := model.NewRegion(200, 100, 300, 0)

	engine := newFakeEngine()
	a := engine.add(t, "a.pdf",
		fakePage{regions: map[model.Region]string{r1: "x", r2: "y", r3: "z"}},
		fakePage{regions: map[model.Region]string{r1: "x", r2: "y", r3: "z"}},
	)
	b := engine.add(t, "b.pdf",
		fakePage{regions: map[model.Region]string{r1: "x", r2: "DIFFERENT", r3: "z"}},
		fakePage{regions: map[model.Region]string{r1: "x", r2: "y", r3: "z"}},
	)

	c := NewTextComparator(engine, TextOptions{Regions: []model.Region{r1, r2, r3}}, nil)
	res, err := c.Compare(a, b)
	require.NoError(t, err)

	assert.False(t, res.Equal)
	require.NotNil(t, res.Violation)
	assert.Equal(t, KindText, res.Violation.Kind)
	assert.Equal(t, 1, res.Violation.Page)
	assert.Equal(t, 1, res.Violation.Region)
	assert.Equal(t, 1, res.Pages)

	// Two regions on page 1, each extracted from both documents.
	assert.Equal(t, 4, engine.countCalls("text"))
	engine.assertAllClosed(t)
}

func TestTextComparator_ReportsFirstDifferingPage(t *testing.T) {
	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", textPage("one"), textPage("two"), textPage("three"))
	b := engine.add(t, "b.pdf", textPage("one"), textPage("2"), textPage("3"))

	res, err := NewTextComparator(engine, TextOptions{}, nil).Compare(a, b)
	require.NoError(t, err)

	require.NotNil(t, res.Violation)
	assert.Equal(t, 2, res.Violation.Page)
	assert.Equal(t, -1, res.Violation.Region)
	assert.Equal(t, "two", res.Violation.Expected)
	assert.Equal(t, "2", res.Violation.Actual)
	assert.Equal(t, 4, engine.countCalls("text"), "page 3 must not be extracted")
}

func TestTextComparator_EmptyPages(t *testing.T) {
	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", textPage(""), textPage(""))
	b := engine.add(t, "b.pdf", textPage(""), textPage("  \n"))

	equal, err := NewTextComparator(engine, TextOptions{RemoveWhitespace: true}, nil).Equal(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestTextComparator_MissingFile(t *testing.T) {
	engine := newFakeEngine()
	valid := engine.add(t, "valid.pdf", textPage("text"))
	missing := filepath.Join(t.TempDir(), "missing.pdf")

	c := NewTextComparator(engine, TextOptions{}, nil)

	for _, pair := range [][2]string{{missing, valid}, {valid, missing}, {"", valid}} {
		res, err := c.Compare(pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, res.Equal)
		require.NotNil(t, res.Violation)
		assert.Equal(t, KindInvalidInput, res.Violation.Kind)
	}
	assert.Empty(t, engine.opened, "no document should be opened for invalid input")
}

func TestTextComparator_DirectoryIsInvalidInput(t *testing.T) {
	engine := newFakeEngine()
	valid := engine.add(t, "valid.pdf", textPage("text"))

	equal, err := NewTextComparator(engine, TextOptions{}, nil).Equal(t.TempDir(), valid)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestTextComparator_OpenErrorIsDocumentError(t *testing.T) {
	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", textPage("text"))
	b := engine.add(t, "corrupt.pdf", textPage("text"))
	engine.openErr[b] = errors.New("invalid xref table")

	equal, err := NewTextComparator(engine, TextOptions{}, nil).Equal(a, b)
	require.Error(t, err)
	assert.False(t, equal)
	assert.True(t, IsDocumentError(err))

	var de *DocumentError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, b, de.Path)
	assert.Equal(t, "open", de.Op)

	// The first document was opened and must have been released.
	assert.Equal(t, 1, engine.opened[a])
	engine.assertAllClosed(t)
}

func TestTextComparator_ExtractErrorIsDocumentError(t *testing.T) {
	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", textPage("one"), textPage("two"))
	b := engine.add(t, "b.pdf", textPage("one"), textPage("two"))
	engine.docs[b].extractErr[2] = errors.New("bad content stream")

	_, err := NewTextComparator(engine, TextOptions{}, nil).Compare(a, b)
	require.Error(t, err)

	var de *DocumentError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Page)
	assert.Contains(t, err.Error(), "page 2")
	engine.assertAllClosed(t)
}

func TestTextComparator_PageCountError(t *testing.T) {
	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", textPage("one"))
	b := engine.add(t, "b.pdf", textPage("one"))
	engine.docs[a].pageCountErr = errors.New("missing /Pages")

	_, err := NewTextComparator(engine, TextOptions{}, nil).Compare(a, b)
	require.Error(t, err)
	assert.True(t, IsDocumentError(err))
	engine.assertAllClosed(t)
}

func TestTextComparator_DoesNotRetainCallerRegions(t *testing.T) {
	r := model.NewRegion(0, 100, 100, 0)
	regions := []model.Region{r}

	engine := newFakeEngine()
	a := engine.add(t, "a.pdf", fakePage{regions: map[model.Region]string{r: "same"}})
	b := engine.add(t, "b.pdf", fakePage{regions: map[model.Region]string{r: "same"}})

	c := NewTextComparator(engine, TextOptions{Regions: regions}, nil)
	regions[0] = model.NewRegion(500, 600, 700, 500)

	equal, err := c.Equal(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSnippets(t *testing.T) {
	a := "0123456789012345678901234567890123456789abcdef"
	b := "0123456789012345678901234567890123456789abXdef"

	expected, actual := snippets(a, b)
	assert.Equal(t, "234567890123456789abcdef", expected)
	assert.Equal(t, "234567890123456789abXdef", actual)

	expected, actual = snippets("short", "shorter")
	assert.Equal(t, "short", expected)
	assert.Equal(t, "shorter", actual)
}

func TestSnippets_KeepsCharactersWhole(t *testing.T) {
	e := "\u00e9"
	a := "a" + strings.Repeat(e, 10) + "\u00e7b" + strings.Repeat(e, 30)
	b := "a" + strings.Repeat(e, 10) + "\u00e8b" + strings.Repeat(e, 30)

	expected, actual := snippets(a, b)
	assert.True(t, utf8.ValidString(expected), "%q", expected)
	assert.True(t, utf8.ValidString(actual), "%q", actual)
	assert.Equal(t, strings.Repeat(e, 10)+"\u00e7b"+strings.Repeat(e, 8), expected)
	assert.Equal(t, strings.Repeat(e, 10)+"\u00e8b"+strings.Repeat(e, 8), actual)
}
