package splitter

import (
	"fmt"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// VisibleArea is the region of a page that is displayed, with X and Y the
// lower-left corner.
type VisibleArea struct {
	Width  float64
	Height float64
	X      float64
	Y      float64
}

// Midpoint returns the x coordinate separating the two halves.
func (v VisibleArea) Midpoint() float64 {
	return v.X + v.Width/2
}

// Rect returns the area as a rectangle.
func (v VisibleArea) Rect() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: v.X, Hi: v.X + v.Width},
		Y: r1.Interval{Lo: v.Y, Hi: v.Y + v.Height},
	}
}

// ComputeVisibleArea returns the visible area of page. The CropBox wins over
// the MediaBox whenever it is present, even when it turns out to be unusable.
func ComputeVisibleArea(page Page) (VisibleArea, error) {
	box, ok := page.CropBox()
	name := "CropBox"
	if !ok {
		box, ok = page.MediaBox()
		name = "MediaBox"
	}
	if !ok {
		return VisibleArea{}, &MalformedPageError{Err: ErrNoBox}
	}

	width := box.X.Hi - box.X.Lo
	height := box.Y.Hi - box.Y.Lo
	if !(width > 0) || !(height > 0) {
		return VisibleArea{}, &MalformedPageError{
			Err: fmt.Errorf("%s %v: %w", name, rectString(box), ErrDegenerateBox),
		}
	}

	return VisibleArea{
		Width:  width,
		Height: height,
		X:      box.X.Lo,
		Y:      box.Y.Lo,
	}, nil
}

// SplitBoxes cuts the visible area in two along its vertical midline.
func SplitBoxes(area VisibleArea) (left, right r2.Rect) {
	mid := area.Midpoint()
	y := r1.Interval{Lo: area.Y, Hi: area.Y + area.Height}

	left = r2.Rect{X: r1.Interval{Lo: area.X, Hi: mid}, Y: y}
	right = r2.Rect{X: r1.Interval{Lo: mid, Hi: area.X + area.Width}, Y: y}
	return left, right
}

func rectString(r r2.Rect) string {
	return fmt.Sprintf("[%g %g %g %g]", r.X.Lo, r.Y.Lo, r.X.Hi, r.Y.Hi)
}
