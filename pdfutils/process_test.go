package pdfutils

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgmeyers/pdfsplit/internal/pdftest"
	"github.com/mgmeyers/pdfsplit/splitter"
)

func annotCount(t *testing.T, page *model.PdfPage) int {
	t.Helper()
	if page.Annots == nil {
		return 0
	}
	arr, ok := core.GetArray(page.Annots)
	require.True(t, ok, "Annots is %T", page.Annots)
	return arr.Len()
}

func TestProcessBook(t *testing.T) {
	doc, err := OpenDocument(bytes.NewReader(pdftest.Book()), "")
	require.NoError(t, err)
	require.Equal(t, 2, doc.NumPages())

	rec := &recorder{}
	res, err := Process(doc, rec)
	require.NoError(t, err)
	assert.Equal(t, 4, res.NumPages)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, rec.progress)

	// the dangling reference and the annotation without Rect are reported
	// once per half
	require.Len(t, rec.warnings, 4)
	var indices []int
	for _, w := range rec.warnings {
		var ae *splitter.AnnotationError
		require.True(t, errors.As(w, &ae), "%T", w)
		assert.Equal(t, 1, ae.Page)
		indices = append(indices, ae.Index)
	}
	assert.ElementsMatch(t, []int{2, 3, 2, 3}, indices)

	want := []*Annotation{
		{
			Color:         "#ff0000",
			ColorCategory: "Red",
			Comment:       "left note",
			Date:          "2022-03-01T12:00:00Z",
			Halves:        []string{"left"},
			ID:            "text-p1x40y0",
			OutputPages:   []int{1},
			Page:          1,
			Subtype:       "Text",
			Type:          Text,
			X:             40,
			Y:             0,
		},
		{
			Halves:      []string{"left", "right"},
			ID:          "rectangle-p1x90y0",
			OutputPages: []int{1, 2},
			Page:        1,
			Subtype:     "Square",
			Type:        Rectangle,
			X:           90,
			Y:           0,
		},
	}
	if d := cmp.Diff(want, res.Annotations); d != "" {
		t.Errorf("report (-want +got):\n%s", d)
	}

	// source pages keep their geometry
	page, err := doc.Page(1)
	require.NoError(t, err)
	assert.Equal(t, model.PdfRectangle{Llx: 0, Lly: 0, Urx: 200, Ury: 100}, *page.MediaBox)
	assert.Equal(t, 4, annotCount(t, page))

	data, err := res.Serialize()
	require.NoError(t, err)

	out, err := OpenDocument(bytes.NewReader(data), "")
	require.NoError(t, err)
	require.Equal(t, 4, out.NumPages())

	wantBoxes := []model.PdfRectangle{
		{Llx: 0, Lly: 0, Urx: 100, Ury: 100},
		{Llx: 100, Lly: 0, Urx: 200, Ury: 100},
		{Llx: 10, Lly: 10, Urx: 100, Ury: 90},
		{Llx: 100, Lly: 10, Urx: 190, Ury: 90},
	}
	wantAnnots := []int{2, 1, 0, 0}
	for i := range wantBoxes {
		page, err := out.Page(i + 1)
		require.NoError(t, err)

		require.NotNil(t, page.MediaBox, "page %d", i+1)
		assert.Equal(t, wantBoxes[i], *page.MediaBox, "page %d", i+1)
		require.NotNil(t, page.CropBox, "page %d", i+1)
		assert.Equal(t, wantBoxes[i], *page.CropBox, "page %d", i+1)

		assert.Equal(t, wantAnnots[i], annotCount(t, page), "page %d", i+1)
		if wantAnnots[i] == 0 {
			assert.Nil(t, page.Annots, "page %d", i+1)
		}
	}

	// the straddling annotation keeps its Rect on both halves
	for _, n := range []int{1, 2} {
		page, err := out.Page(n)
		require.NoError(t, err)
		arr, _ := core.GetArray(page.Annots)
		last := &annotationRef{obj: arr.Get(arr.Len() - 1)}
		rect, err := last.Rect()
		require.NoError(t, err)
		assert.Equal(t, []float64{90, 0, 110, 50}, []float64{rect.X.Lo, rect.Y.Lo, rect.X.Hi, rect.Y.Hi})
	}
}

func TestInheritedMediaBox(t *testing.T) {
	doc, err := OpenDocument(bytes.NewReader(pdftest.Inherited()), "")
	require.NoError(t, err)

	page, err := doc.Page(1)
	require.NoError(t, err)

	var s splitter.Splitter
	left, right, err := s.Split(1, NewPage(page))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 150, 200}, []float64{left.Box.X.Lo, left.Box.Y.Lo, left.Box.X.Hi, left.Box.Y.Hi})
	assert.Equal(t, []float64{150, 0, 300, 200}, []float64{right.Box.X.Lo, right.Box.Y.Lo, right.Box.X.Hi, right.Box.Y.Hi})
}

func TestPageWithoutBoxes(t *testing.T) {
	page := model.NewPdfPage()
	page.MediaBox = nil
	page.CropBox = nil

	var s splitter.Splitter
	_, _, err := s.Split(5, NewPage(page))

	var mpe *splitter.MalformedPageError
	require.True(t, errors.As(err, &mpe), "%v", err)
	assert.Equal(t, 5, mpe.Page)
}

func TestSplitFile(t *testing.T) {
	in := writeTemp(t, "book.pdf", pdftest.Book())
	out := filepath.Join(t.TempDir(), "nested", "dir", "split.pdf")

	res, err := SplitFile(in, out, Options{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, res.NumPages)

	doc, err := LoadDocument(out, "")
	require.NoError(t, err)
	defer doc.Close()
	assert.Equal(t, 4, doc.NumPages())

	// no temporary files left behind
	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "split.pdf", entries[0].Name())
}

func TestSplitFileMalformedPage(t *testing.T) {
	in := writeTemp(t, "boxless.pdf", pdftest.Boxless())
	outDir := filepath.Join(t.TempDir(), "out")
	out := filepath.Join(outDir, "split.pdf")

	_, err := SplitFile(in, out, Options{}, nil)

	var mpe *splitter.MalformedPageError
	require.True(t, errors.As(err, &mpe), "%v", err)
	assert.Equal(t, 1, mpe.Page)
	assert.ErrorIs(t, err, splitter.ErrNoBox)

	_, err = os.Stat(outDir)
	assert.True(t, os.IsNotExist(err))
}

func TestSplitFileKeepsExistingOutputOnError(t *testing.T) {
	in := writeTemp(t, "boxless.pdf", pdftest.Boxless())
	out := writeTemp(t, "split.pdf", []byte("previous"))

	_, err := SplitFile(in, out, Options{}, nil)
	require.Error(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestSplitFileLoadErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "split.pdf")

	_, err := SplitFile(filepath.Join(dir, "missing.pdf"), out, Options{}, nil)
	var dle *DocumentLoadError
	require.True(t, errors.As(err, &dle), "%v", err)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	garbage := writeTemp(t, "garbage.pdf", []byte("this is not a PDF"))
	_, err = SplitFile(garbage, out, Options{}, nil)
	require.True(t, errors.As(err, &dle), "%v", err)
	assert.Equal(t, garbage, dle.Path)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestSplitFileOutputIsDirectory(t *testing.T) {
	in := writeTemp(t, "book.pdf", pdftest.Book())

	_, err := SplitFile(in, t.TempDir(), Options{}, nil)
	var owe *OutputWriteError
	require.True(t, errors.As(err, &owe), "%v", err)
}

func TestRotatedPageWarns(t *testing.T) {
	data := pdftest.Raw(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /Rotate 90 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] >>",
	)
	doc, err := OpenDocument(bytes.NewReader(data), "")
	require.NoError(t, err)

	page, err := doc.Page(1)
	require.NoError(t, err)
	assert.Equal(t, int64(90), NewPage(page).Rotation())

	rec := &recorder{}
	res, err := Process(doc, rec)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NumPages)

	require.Len(t, rec.warnings, 1)
	var pw *PageWarning
	require.True(t, errors.As(rec.warnings[0], &pw))
	assert.Equal(t, 1, pw.Page)
}

func TestMalformedAnnotsArray(t *testing.T) {
	page := model.NewPdfPage()
	page.MediaBox = &model.PdfRectangle{Urx: 200, Ury: 100}
	page.Annots = core.MakeInteger(42)

	src := NewPage(page)
	assert.Error(t, src.AnnotationsError())
	assert.Empty(t, src.Annotations())

	var s splitter.Splitter
	left, right, err := s.Split(1, src)
	require.NoError(t, err)
	assert.Nil(t, left.Annotations)
	assert.Nil(t, right.Annotations)

	out := buildHalf(page, left)
	assert.Nil(t, out.Annots)
	assert.Equal(t, core.MakeInteger(42), page.Annots)
}

func TestBuildHalfLeavesSourceAlone(t *testing.T) {
	a := core.MakeIndirectObject(annotDict(90, 0, 110, 50))
	page := model.NewPdfPage()
	page.MediaBox = &model.PdfRectangle{Urx: 200, Ury: 100}
	page.Annots = core.MakeArray(a)

	var s splitter.Splitter
	left, right, err := s.Split(1, NewPage(page))
	require.NoError(t, err)

	l := buildHalf(page, left)
	r := buildHalf(page, right)

	assert.Equal(t, model.PdfRectangle{Urx: 100, Ury: 100}, *l.MediaBox)
	assert.Equal(t, model.PdfRectangle{Llx: 100, Urx: 200, Ury: 100}, *r.MediaBox)
	assert.Equal(t, model.PdfRectangle{Urx: 200, Ury: 100}, *page.MediaBox)
	assert.Nil(t, page.CropBox)

	for _, half := range []*model.PdfPage{l, r} {
		arr, ok := core.GetArray(half.Annots)
		require.True(t, ok)
		require.Equal(t, 1, arr.Len())
		assert.Same(t, a, arr.Get(0))
	}
	assert.NotSame(t, page.Annots, l.Annots)
	assert.NotSame(t, l.Annots, r.Annots)
}

func TestUnusableBoxIsMalformedPage(t *testing.T) {
	cases := map[string]string{
		"short MediaBox": "/MediaBox [0 0 200]",
		"MediaBox name":  "/MediaBox /Foo",
		"short CropBox":  "/MediaBox [0 0 200 100] /CropBox [0 0 1]",
	}
	for name, boxes := range cases {
		in := writeTemp(t, "bad.pdf", pdftest.SecondPageBox(boxes))
		out := filepath.Join(t.TempDir(), "split.pdf")

		_, err := SplitFile(in, out, Options{}, nil)

		var mpe *splitter.MalformedPageError
		require.True(t, errors.As(err, &mpe), "%s: %v", name, err)
		assert.Equal(t, 2, mpe.Page, name)
		assert.ErrorIs(t, err, splitter.ErrInvalidBox, name)

		_, err = os.Stat(out)
		assert.True(t, os.IsNotExist(err), name)
	}
}

func TestFindInvalidBoxInherited(t *testing.T) {
	data := pdftest.Raw(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] >>",
		"<< /Type /Pages /Parent 2 0 R /Kids [5 0 R] /Count 1 /CropBox [1 2] >>",
		"<< /Type /Page /Parent 4 0 R /MediaBox [0 0 200 100] >>",
	)

	mpe := findInvalidBox(bytes.NewReader(data))
	require.NotNil(t, mpe)
	assert.Equal(t, 2, mpe.Page)
	assert.ErrorIs(t, mpe, splitter.ErrInvalidBox)

	assert.Nil(t, findInvalidBox(bytes.NewReader(pdftest.Book())))
	assert.Nil(t, findInvalidBox(bytes.NewReader([]byte("not a pdf"))))
}
