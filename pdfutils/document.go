package pdfutils

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mgmeyers/unipdf/v3/model"
)

var ErrWrongPassword = errors.New("document is encrypted and the password is wrong")

// DocumentLoadError reports an input that could not be read as a PDF.
type DocumentLoadError struct {
	Path string
	Err  error
}

func (e *DocumentLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("could not load document: %v", e.Err)
	}
	return fmt.Sprintf("could not load %q: %v", e.Path, e.Err)
}

func (e *DocumentLoadError) Unwrap() error { return e.Err }

// Document is a loaded input PDF.
type Document struct {
	reader   *model.PdfReader
	numPages int
	closer   io.Closer
}

// LoadDocument opens the PDF file at path. The file stays open until Close
// is called.
func LoadDocument(path string, password string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DocumentLoadError{Path: path, Err: err}
	}

	doc, err := OpenDocument(f, password)
	if err != nil {
		f.Close()
		var dle *DocumentLoadError
		if errors.As(err, &dle) {
			dle.Path = path
		}
		return nil, err
	}
	doc.closer = f

	return doc, nil
}

// OpenDocument reads a PDF from rs. Encrypted documents are decrypted with
// password, which may be empty.
func OpenDocument(rs io.ReadSeeker, password string) (*Document, error) {
	pdfReader, err := model.NewPdfReader(rs)
	if err != nil {
		if mpe := findInvalidBox(rs); mpe != nil {
			return nil, mpe
		}
		return nil, &DocumentLoadError{Err: err}
	}

	isEncrypted, err := pdfReader.IsEncrypted()
	if err != nil {
		return nil, &DocumentLoadError{Err: err}
	}

	if isEncrypted {
		ok, err := pdfReader.Decrypt([]byte(password))
		if err != nil {
			return nil, &DocumentLoadError{Err: err}
		}
		if !ok {
			return nil, &DocumentLoadError{Err: ErrWrongPassword}
		}
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return nil, &DocumentLoadError{Err: err}
	}

	return &Document{reader: pdfReader, numPages: numPages}, nil
}

func (d *Document) NumPages() int {
	return d.numPages
}

// Page returns page pageNum, counting from 1.
func (d *Document) Page(pageNum int) (*model.PdfPage, error) {
	page, err := d.reader.GetPage(pageNum)
	if err != nil {
		return nil, &DocumentLoadError{Err: fmt.Errorf("GetPage failed. pageNum=%d err=%w", pageNum, err)}
	}
	return page, nil
}

func (d *Document) Close() error {
	if d.closer == nil {
		return nil
	}
	return d.closer.Close()
}
