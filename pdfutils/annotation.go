package pdfutils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/core"
)

const (
	Highlight   string = "highlight"
	Strike             = "strike"
	Underline          = "underline"
	Text               = "text"
	Rectangle          = "rectangle"
	Link               = "link"
	Unsupported        = "unsupported"
)

var (
	errDangling    = errors.New("annotation reference cannot be resolved")
	errMissingRect = errors.New("annotation has no Rect")
)

// Annotation describes where one source annotation ended up.
type Annotation struct {
	Color         string   `json:"color,omitempty"`
	ColorCategory string   `json:"colorCategory,omitempty"`
	Comment       string   `json:"comment,omitempty"`
	Date          string   `json:"date,omitempty"`
	Halves        []string `json:"halves"`
	ID            string   `json:"id"`
	OutputPages   []int    `json:"outputPages"`
	Page          int      `json:"page"`
	Subtype       string   `json:"subtype,omitempty"`
	Type          string   `json:"type"`
	X             float64  `json:"x"`
	Y             float64  `json:"y"`
}

// annotationRef is an entry of a page's Annots array, either an annotation
// dictionary or a reference to one.
type annotationRef struct {
	obj core.PdfObject
}

func (a *annotationRef) dict() (*core.PdfObjectDictionary, error) {
	obj := core.ResolveReference(a.obj)
	obj = core.TraceToDirectObject(obj)
	if obj == nil {
		return nil, errDangling
	}
	if _, isNull := obj.(*core.PdfObjectNull); isNull {
		return nil, errDangling
	}
	dict, ok := obj.(*core.PdfObjectDictionary)
	if !ok {
		return nil, fmt.Errorf("annotation is %T, not a dictionary", obj)
	}
	return dict, nil
}

// Rect resolves the annotation and reads its Rect.
func (a *annotationRef) Rect() (r2.Rect, error) {
	dict, err := a.dict()
	if err != nil {
		return r2.Rect{}, err
	}
	rectObj := dict.Get("Rect")
	if rectObj == nil {
		return r2.Rect{}, errMissingRect
	}
	return RectFromObject(rectObj)
}

// describe builds the report entry for an annotation which is known to
// resolve. pageIndex is 0-based.
func (a *annotationRef) describe(ids map[string]bool, pageIndex int) (*Annotation, error) {
	dict, err := a.dict()
	if err != nil {
		return nil, err
	}
	rect, err := a.Rect()
	if err != nil {
		return nil, err
	}

	subtype := ""
	if name, ok := core.GetName(dict.Get("Subtype")); ok {
		subtype = name.String()
	}
	annotType := GetAnnotationType(subtype)
	x, y := getCoordinates(rect)

	annot := &Annotation{
		Color:         PDFObjToHex(dict.Get("C")),
		ColorCategory: PDFObjToColorCategory(dict.Get("C")),
		ID:            GetAnnotationID(ids, pageIndex, x, y, annotType),
		Page:          pageIndex + 1,
		Subtype:       subtype,
		Type:          annotType,
		X:             x,
		Y:             y,
	}

	if contents, ok := core.GetString(dict.Get("Contents")); ok {
		annot.Comment = RemoveNul(contents.Decoded())
	}

	if m, ok := core.GetString(dict.Get("M")); ok {
		if date := ParsePdfDate(m.String()); date != nil {
			annot.Date = date.Format(time.RFC3339)
		}
	}

	return annot, nil
}
