package splitter

import (
	"errors"
	"fmt"
)

var (
	ErrNoBox         = errors.New("page has neither CropBox nor MediaBox")
	ErrDegenerateBox = errors.New("page box has non-positive width or height")
	ErrInvalidBox    = errors.New("page box is not an array of four numbers")
)

// MalformedPageError reports a page that cannot be split. Page is 1-based, 0
// when unknown.
type MalformedPageError struct {
	Page int
	Err  error
}

func (e *MalformedPageError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("malformed page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("malformed page: %v", e.Err)
}

func (e *MalformedPageError) Unwrap() error { return e.Err }

// AnnotationError reports an annotation that could not be resolved. It is
// never fatal: the annotation is dropped from the half being built.
type AnnotationError struct {
	Page  int
	Index int
	Side  Side
	Err   error
}

func (e *AnnotationError) Error() string {
	return fmt.Sprintf("could not process annotation %d on page %d (%s half): %v",
		e.Index+1, e.Page, e.Side, e.Err)
}

func (e *AnnotationError) Unwrap() error { return e.Err }
