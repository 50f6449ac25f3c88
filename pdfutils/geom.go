package pdfutils

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
)

var errBadRect = errors.New("Rect is not an array of four numbers")

// RectFromPdf converts a unipdf rectangle.
func RectFromPdf(r *model.PdfRectangle) r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: r.Llx, Hi: r.Urx},
		Y: r1.Interval{Lo: r.Lly, Hi: r.Ury},
	}
}

// RectToPdf converts a rectangle for use as a page box.
func RectToPdf(r r2.Rect) *model.PdfRectangle {
	return &model.PdfRectangle{
		Llx: r.X.Lo,
		Lly: r.Y.Lo,
		Urx: r.X.Hi,
		Ury: r.Y.Hi,
	}
}

// RectFromObject reads a Rect entry. The corners may come in any order, the
// result is normalised.
func RectFromObject(obj core.PdfObject) (r2.Rect, error) {
	arr, ok := core.GetArray(obj)
	if !ok {
		return r2.Rect{}, errBadRect
	}

	coords, err := arr.ToFloat64Array()
	if err != nil {
		return r2.Rect{}, fmt.Errorf("%w: %v", errBadRect, err)
	}
	if len(coords) != 4 {
		return r2.Rect{}, errBadRect
	}
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return r2.Rect{}, errBadRect
		}
	}

	return r2.RectFromPoints(
		r2.Point{X: coords[0], Y: coords[1]},
		r2.Point{X: coords[2], Y: coords[3]},
	), nil
}

// getCoordinates returns the rounded lower-left corner of rect.
func getCoordinates(rect r2.Rect) (float64, float64) {
	x := math.Round(rect.X.Lo*100) / 100
	y := math.Round(rect.Y.Lo*100) / 100
	return x, y
}
