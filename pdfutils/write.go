package pdfutils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// OutputWriteError reports a destination that could not be written.
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("could not write %q: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// Options control SplitFile.
type Options struct {
	// Password decrypts encrypted input. Empty works for documents which
	// only carry an owner password.
	Password string
}

// SplitFile splits the PDF at inPath and writes the result to outPath. The
// output is only created once every page has been split.
func SplitFile(inPath, outPath string, opts Options, rep Reporter) (*Result, error) {
	if fi, err := os.Stat(outPath); err == nil && fi.IsDir() {
		return nil, &OutputWriteError{Path: outPath, Err: errors.New("is a directory")}
	}

	doc, err := LoadDocument(inPath, opts.Password)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	res, err := Process(doc, rep)
	if err != nil {
		return nil, err
	}

	data, err := res.Serialize()
	if err != nil {
		return nil, &OutputWriteError{Path: outPath, Err: err}
	}

	if err := WriteFileAtomic(outPath, data); err != nil {
		return nil, err
	}

	return res, nil
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, so that path either keeps its old content or receives all of
// data. Missing parent directories are created.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}

	_, statErr := os.Stat(path)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return &OutputWriteError{Path: path, Err: err}
	}

	// new files get the usual mode instead of the temp file's 0600
	if os.IsNotExist(statErr) {
		if err := os.Chmod(path, 0o644); err != nil {
			return &OutputWriteError{Path: path, Err: err}
		}
	}

	return nil
}
