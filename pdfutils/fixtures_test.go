package pdfutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

type recorder struct {
	progress [][2]int
	warnings []error
}

func (r *recorder) Progress(done, total int) {
	r.progress = append(r.progress, [2]int{done, total})
}

func (r *recorder) Warn(err error) {
	r.warnings = append(r.warnings, err)
}
