// Package pdftest builds small PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
)

// Raw assembles a PDF file from object bodies. Object i+1 is objs[i];
// object 1 must be the catalog.
func Raw(objs ...string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")

	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	return buf.Bytes()
}

// Book has two pages. The first carries a left-only annotation, a
// straddling one, a dangling reference and an annotation without Rect. The
// second page has a CropBox and no annotations.
func Book() []byte {
	return Raw(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] /Annots [5 0 R 6 0 R 99 0 R 7 0 R] >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] /CropBox [10 10 190 90] >>",
		"<< /Type /Annot /Subtype /Text /Rect [40 0 60 50] /C [1 0 0] /Contents (left note) /M (D:20220301120000Z) >>",
		"<< /Type /Annot /Subtype /Square /Rect [90 0 110 50] >>",
		"<< /Type /Annot /Subtype /Highlight >>",
	)
}

// Inherited has one page which takes its MediaBox from the page tree.
func Inherited() []byte {
	return Raw(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 /MediaBox [0 0 300 200] >>",
		"<< /Type /Page /Parent 2 0 R >>",
	)
}

// Boxless has a page without any page box.
func Boxless() []byte {
	return Raw(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R >>",
	)
}

// SecondPageBox has a good first page and a second page whose box entries
// are given by boxes.
func SecondPageBox(boxes string) []byte {
	return Raw(
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 100] >>",
		"<< /Type /Page /Parent 2 0 R "+boxes+" >>",
	)
}
