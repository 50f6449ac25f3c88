package pdfutils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const dateFormat = "D:20060102150405+07'00'"
const dateFormatZ = "D:20060102150405Z07'00'"
const dateFormatNoZ = "D:20060102150405"

// ParsePdfDate parses a PDF date string such as "D:20220301120000+01'00'".
// It returns nil if the string is not a date.
func ParsePdfDate(dateStr string) *time.Time {
	if dateStr == "" {
		return nil
	}

	date, err := time.Parse(dateFormat, dateStr)

	if err != nil {
		date, err = time.Parse(dateFormatZ, dateStr)
	}

	if err != nil {
		split := strings.Split(dateStr, "Z")
		date, err = time.Parse(dateFormatNoZ, split[0])
	}

	if err != nil {
		return nil
	}

	return &date
}

// GetAnnotationType maps an annotation /Subtype to the short type name used
// in reports.
func GetAnnotationType(subtype string) string {
	switch subtype {
	case "Highlight":
		return Highlight
	case "StrikeOut":
		return Strike
	case "Underline":
		return Underline
	case "Square":
		return Rectangle
	case "Text":
		return Text
	case "Link":
		return Link
	case "":
		return Unsupported
	default:
		return strings.ToLower(subtype)
	}
}

func RemoveNul(str string) string {
	return strings.Map(func(r rune) rune {
		if r == unicode.ReplacementChar {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, str)
}

func GetAnnotationID(ids map[string]bool, pageIndex int, x float64, y float64, annotType string) string {
	xInt := int(x)
	yInt := int(y)
	id := fmt.Sprintf("%s-p%dx%dy%d", annotType, pageIndex+1, xInt, yInt)
	_, ok := ids[id]

	for i := 1; ok; i++ {
		id = fmt.Sprintf("%s-p%dx%dy%d-%d", annotType, pageIndex+1, xInt, yInt, i)
		_, ok = ids[id]
	}

	ids[id] = true

	return id
}
