package pdfutils

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"

	"github.com/mgmeyers/pdfsplit/splitter"
)

// maxTreeDepth bounds the walk up the page tree, which may contain cycles in
// damaged files.
const maxTreeDepth = 64

// Page adapts a unipdf page to splitter.Page.
type Page struct {
	page      *model.PdfPage
	annots    []splitter.Annotation
	annotsErr error
}

// NewPage wraps page. The annotation list is read as stored, without
// resolving its entries.
func NewPage(page *model.PdfPage) *Page {
	p := &Page{page: page}

	if page.Annots == nil {
		return p
	}
	arr, ok := core.GetArray(page.Annots)
	if !ok {
		p.annotsErr = fmt.Errorf("Annots is %T, not an array", core.TraceToDirectObject(page.Annots))
		return p
	}
	for _, obj := range arr.Elements() {
		p.annots = append(p.annots, &annotationRef{obj: obj})
	}
	return p
}

// CropBox returns the page's crop box, inherited from the page tree if
// necessary.
func (p *Page) CropBox() (r2.Rect, bool) {
	if p.page.CropBox != nil {
		return RectFromPdf(p.page.CropBox), true
	}
	return p.inheritedBox("CropBox")
}

// MediaBox returns the page's media box, inherited from the page tree if
// necessary.
func (p *Page) MediaBox() (r2.Rect, bool) {
	if p.page.MediaBox != nil {
		return RectFromPdf(p.page.MediaBox), true
	}
	return p.inheritedBox("MediaBox")
}

func (p *Page) Annotations() []splitter.Annotation {
	return p.annots
}

// AnnotationsError reports why the annotation list could not be read. The
// page is then treated as having no annotations.
func (p *Page) AnnotationsError() error {
	return p.annotsErr
}

// Rotation returns the /Rotate value of the page, 0 if unset.
func (p *Page) Rotation() int64 {
	if p.page.Rotate != nil {
		return *p.page.Rotate
	}
	if v, ok := core.GetIntVal(p.inherited("Rotate")); ok {
		return int64(v)
	}
	return 0
}

func (p *Page) inheritedBox(name core.PdfObjectName) (r2.Rect, bool) {
	arr, ok := core.GetArray(p.inherited(name))
	if !ok {
		return r2.Rect{}, false
	}
	rect, err := model.NewPdfRectangle(*arr)
	if err != nil {
		return r2.Rect{}, false
	}
	return RectFromPdf(rect), true
}

// inherited looks up an inheritable attribute in the ancestors of the page.
func (p *Page) inherited(name core.PdfObjectName) core.PdfObject {
	node := p.page.Parent
	for depth := 0; node != nil && depth < maxTreeDepth; depth++ {
		dict, ok := core.GetDict(node)
		if !ok {
			return nil
		}
		if obj := dict.Get(name); obj != nil {
			return obj
		}
		node = dict.Get("Parent")
	}
	return nil
}

// buildHalf returns a copy of page cropped to half. The content stream and
// resources of the copy are shared with page.
func buildHalf(page *model.PdfPage, half splitter.Half) *model.PdfPage {
	dup := page.Duplicate()
	dup.MediaBox = RectToPdf(half.Box)
	dup.CropBox = RectToPdf(half.Box)

	// Drop any parsed annotation list so that Annots is what gets written.
	dup.SetAnnotations(nil)
	if len(half.Annotations) == 0 {
		dup.Annots = nil
		return dup
	}

	arr := core.MakeArray()
	for _, annot := range half.Annotations {
		arr.Append(annot.(*annotationRef).obj)
	}
	dup.Annots = arr
	return dup
}
