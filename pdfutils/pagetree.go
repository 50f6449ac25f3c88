package pdfutils

import (
	"fmt"
	"io"

	"github.com/mgmeyers/unipdf/v3/core"

	"github.com/mgmeyers/pdfsplit/splitter"
)

var boxNames = []core.PdfObjectName{"MediaBox", "CropBox"}

// findInvalidBox walks the raw page tree of the PDF in rs and returns an
// error for the first page whose MediaBox or CropBox, own or inherited, is
// not a rectangle. unipdf refuses to load such documents without saying
// which page is at fault. It returns nil if no such page is found.
func findInvalidBox(rs io.ReadSeeker) *splitter.MalformedPageError {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil
	}
	parser, err := core.NewParser(rs)
	if err != nil {
		return nil
	}
	trailer := parser.GetTrailer()
	if trailer == nil {
		return nil
	}
	catalog, ok := core.GetDict(core.ResolveReference(trailer.Get("Root")))
	if !ok {
		return nil
	}

	w := &treeWalker{seen: map[*core.PdfObjectDictionary]bool{}}
	return w.walk(catalog.Get("Pages"), nil, 0)
}

type treeWalker struct {
	seen  map[*core.PdfObjectDictionary]bool
	pages int
}

// walk visits node and its kids. inherited is the first bad box found in
// the ancestors of node.
func (w *treeWalker) walk(node core.PdfObject, inherited error, depth int) *splitter.MalformedPageError {
	if depth > maxTreeDepth {
		return nil
	}
	dict, ok := core.GetDict(core.ResolveReference(node))
	if !ok || w.seen[dict] {
		return nil
	}
	w.seen[dict] = true

	own := badBox(dict)
	if own == nil {
		own = inherited
	}

	kids, isNode := core.GetArray(core.ResolveReference(dict.Get("Kids")))
	if !isNode {
		w.pages++
		if own != nil {
			return &splitter.MalformedPageError{Page: w.pages, Err: own}
		}
		return nil
	}

	for _, kid := range kids.Elements() {
		if mpe := w.walk(kid, own, depth+1); mpe != nil {
			return mpe
		}
	}
	return nil
}

func badBox(dict *core.PdfObjectDictionary) error {
	for _, name := range boxNames {
		obj := dict.Get(name)
		if obj == nil {
			continue
		}
		arr, ok := core.GetArray(core.ResolveReference(obj))
		if !ok {
			return fmt.Errorf("%s is %T: %w", name, core.TraceToDirectObject(obj), splitter.ErrInvalidBox)
		}
		coords, err := arr.ToFloat64Array()
		if err != nil || len(coords) != 4 {
			return fmt.Errorf("%s %s: %w", name, arr.String(), splitter.ErrInvalidBox)
		}
	}
	return nil
}
