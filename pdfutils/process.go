package pdfutils

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/mgmeyers/unipdf/v3/model"

	"github.com/mgmeyers/pdfsplit/splitter"
)

// Reporter receives progress and recoverable problems while a document is
// being split. It must not influence the result.
type Reporter interface {
	Progress(done, total int)
	Warn(err error)
}

type nopReporter struct{}

func (nopReporter) Progress(int, int) {}
func (nopReporter) Warn(error)        {}

// PageWarning is a recoverable problem with a whole page.
type PageWarning struct {
	Page int
	Msg  string
}

func (w *PageWarning) Error() string {
	return fmt.Sprintf("page %d: %s", w.Page, w.Msg)
}

// Result is a split document which has not been written yet.
type Result struct {
	writer      *model.PdfWriter
	NumPages    int
	Annotations []*Annotation
}

// Process splits every page of doc, in order. The left half of page i
// becomes output page 2i-1 and the right half output page 2i.
func Process(doc *Document, rep Reporter) (*Result, error) {
	if rep == nil {
		rep = nopReporter{}
	}

	pdfWriter := model.NewPdfWriter()
	res := &Result{
		writer:      &pdfWriter,
		Annotations: []*Annotation{},
	}
	ids := map[string]bool{}

	s := splitter.Splitter{
		OnAnnotationError: func(e *splitter.AnnotationError) {
			rep.Warn(e)
		},
	}

	total := doc.NumPages()
	for pageNum := 1; pageNum <= total; pageNum++ {
		page, err := doc.Page(pageNum)
		if err != nil {
			return nil, err
		}

		src := NewPage(page)
		if err := src.AnnotationsError(); err != nil {
			rep.Warn(&PageWarning{Page: pageNum, Msg: fmt.Sprintf("ignoring annotations: %v", err)})
		}
		if rot := src.Rotation(); rot%360 != 0 {
			rep.Warn(&PageWarning{
				Page: pageNum,
				Msg:  fmt.Sprintf("page is rotated by %d degrees, halves are cut in unrotated page space", rot),
			})
		}

		left, right, err := s.Split(pageNum, src)
		if err != nil {
			return nil, err
		}

		for _, half := range []splitter.Half{left, right} {
			if err := pdfWriter.AddPage(buildHalf(page, half)); err != nil {
				return nil, fmt.Errorf("AddPage failed. pageNum=%d half=%s err=%w", pageNum, half.Side, err)
			}
			res.NumPages++
		}

		res.collect(ids, pageNum, src, left, right, rep)
		rep.Progress(pageNum, total)
	}

	return res, nil
}

// collect records the placement of every annotation that made it onto at
// least one half.
func (r *Result) collect(ids map[string]bool, pageNum int, src *Page, left, right splitter.Half, rep Reporter) {
	placed := map[int]*Annotation{}
	var order []int

	for _, half := range []splitter.Half{left, right} {
		outPage := 2*pageNum - 1
		if half.Side == splitter.Right {
			outPage = 2 * pageNum
		}
		for _, idx := range half.Indices {
			annot, ok := placed[idx]
			if !ok {
				ref := src.Annotations()[idx].(*annotationRef)
				var err error
				annot, err = ref.describe(ids, pageNum-1)
				if err != nil {
					rep.Warn(&splitter.AnnotationError{Page: pageNum, Index: idx, Side: half.Side, Err: err})
					continue
				}
				placed[idx] = annot
				order = append(order, idx)
			}
			annot.Halves = append(annot.Halves, half.Side.String())
			annot.OutputPages = append(annot.OutputPages, outPage)
		}
	}

	sort.Ints(order)
	for _, idx := range order {
		r.Annotations = append(r.Annotations, placed[idx])
	}
}

// Serialize writes the split document into memory.
func (r *Result) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.writer.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
