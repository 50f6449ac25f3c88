package pdfutils

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mgmeyers/unipdf/v3/core"
)

func toHEXStr(i int) string {
	s := fmt.Sprintf("%x", i)

	if len(s) == 1 {
		return "0" + s
	}

	return s
}

// pdfObjToColor reads an RGB /C entry. Gray and CMYK colours are not
// reported.
func pdfObjToColor(c core.PdfObject) (colorful.Color, bool) {
	if c == nil {
		return colorful.Color{}, false
	}

	objArr, ok := core.GetArray(c)
	if !ok {
		return colorful.Color{}, false
	}

	clr, err := objArr.ToFloat64Array()
	if err != nil {
		return colorful.Color{}, false
	}

	if len(clr) != 3 {
		return colorful.Color{}, false
	}

	return colorful.Color{R: clr[0], G: clr[1], B: clr[2]}.Clamped(), true
}

func PDFObjToHex(c core.PdfObject) string {
	color, ok := pdfObjToColor(c)
	if !ok {
		return ""
	}

	return "#" + toHEXStr(int(color.R*255)) + toHEXStr(int(color.G*255)) + toHEXStr(int(color.B*255))
}

func PDFObjToColorCategory(c core.PdfObject) string {
	color, ok := pdfObjToColor(c)
	if !ok {
		return ""
	}

	h, s, l := color.Hsl()

	// define color category based on HSL
	if l < 0.12 {
		return "Black"
	}
	if l > 0.98 {
		return "White"
	}
	if s < 0.2 {
		return "Gray"
	}
	if h < 15 {
		return "Red"
	}
	if h < 45 {
		return "Orange"
	}
	if h < 65 {
		return "Yellow"
	}
	if h < 170 {
		return "Green"
	}
	if h < 190 {
		return "Cyan"
	}
	if h < 263 {
		return "Blue"
	}
	if h < 280 {
		return "Purple"
	}
	if h < 335 {
		return "Magenta"
	}
	return "Red"
}
