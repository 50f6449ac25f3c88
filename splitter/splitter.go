// Package splitter cuts pages in two along their vertical midline and
// distributes their annotations over the halves.
//
// The package works on geometry only. It knows nothing about the PDF object
// graph; callers adapt their page objects to the Page interface and apply the
// resulting Half descriptors to copies of their pages.
package splitter

import (
	"github.com/golang/geo/r2"
)

// Annotation is one entry of a page's annotation list.
type Annotation interface {
	// Rect resolves the annotation and returns its rectangle in the
	// coordinate space of the page boxes.
	Rect() (r2.Rect, error)
}

// Page is a read-only view of a source page.
type Page interface {
	CropBox() (r2.Rect, bool)
	MediaBox() (r2.Rect, bool)
	Annotations() []Annotation
}

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Half describes one of the two pages derived from a source page.
type Half struct {
	Side Side
	Box  r2.Rect

	// Annotations is nil when no annotation overlaps the half.
	Annotations []Annotation

	// Indices holds the position of each retained annotation in the source
	// list.
	Indices []int
}

// Splitter splits pages. The zero value is ready to use and drops
// unresolvable annotations silently.
type Splitter struct {
	// OnAnnotationError, if set, is called for every annotation that had
	// to be skipped.
	OnAnnotationError func(*AnnotationError)
}

// Split computes the left and right halves of page. pageNum is 1-based and
// only used in errors. The page itself is not modified.
func (s *Splitter) Split(pageNum int, page Page) (left, right Half, err error) {
	area, err := ComputeVisibleArea(page)
	if err != nil {
		if mpe, ok := err.(*MalformedPageError); ok {
			mpe.Page = pageNum
		}
		return Half{}, Half{}, err
	}

	leftBox, rightBox := SplitBoxes(area)
	annots := page.Annotations()

	left = Half{Side: Left, Box: leftBox}
	left.Annotations, left.Indices = s.filter(pageNum, Left, annots, leftBox.X.Lo, leftBox.X.Hi)

	right = Half{Side: Right, Box: rightBox}
	right.Annotations, right.Indices = s.filter(pageNum, Right, annots, rightBox.X.Lo, rightBox.X.Hi)

	return left, right, nil
}

func (s *Splitter) filter(pageNum int, side Side, annots []Annotation, xMin, xMax float64) ([]Annotation, []int) {
	indices := filterIndices(annots, xMin, xMax, func(i int, err error) {
		if s.OnAnnotationError != nil {
			s.OnAnnotationError(&AnnotationError{Page: pageNum, Index: i, Side: side, Err: err})
		}
	})
	return pick(annots, indices), indices
}

// FilterAnnotations returns the annotations overlapping the horizontal range
// (xMin, xMax), in their original order. Annotations that fail to resolve are
// passed to onError, if non-nil, and skipped. The result is nil when nothing
// is retained.
func FilterAnnotations(annots []Annotation, xMin, xMax float64, onError func(index int, err error)) []Annotation {
	return pick(annots, filterIndices(annots, xMin, xMax, onError))
}

func filterIndices(annots []Annotation, xMin, xMax float64, onError func(int, error)) []int {
	var indices []int
	for i, annot := range annots {
		rect, err := annot.Rect()
		if err != nil {
			if onError != nil {
				onError(i, err)
			}
			continue
		}
		if Overlaps(rect, xMin, xMax) {
			indices = append(indices, i)
		}
	}
	return indices
}

func pick(annots []Annotation, indices []int) []Annotation {
	if len(indices) == 0 {
		return nil
	}
	kept := make([]Annotation, len(indices))
	for i, idx := range indices {
		kept[i] = annots[idx]
	}
	return kept
}

// Overlaps reports whether rect crosses into the horizontal range
// (xMin, xMax). Touching an edge does not count.
func Overlaps(rect r2.Rect, xMin, xMax float64) bool {
	return rect.X.Hi > xMin && rect.X.Lo < xMax
}
