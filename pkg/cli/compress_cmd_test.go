package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressCmd_WrongExtension(t *testing.T) {
	_, _, err := executeCommand(t, "compress", "report.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file format")
}

func TestCompressCmd_BadResolution(t *testing.T) {
	_, _, err := executeCommand(t, "compress", "--resolution", "high", "report.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolution must be a positive whole number")
}

func TestCompressCmd_MissingInput(t *testing.T) {
	_, _, err := executeCommand(t, "compress", filepath.Join(t.TempDir(), "ghost.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompressCmd_ConverterUnavailable(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(in, []byte("%PDF-1.4 tiny"), 0o644))

	_, _, err := executeCommand(t,
		"compress",
		"--gs", filepath.Join(dir, "no-such-binary"),
		"--out", filepath.Join(dir, "out.pdf"),
		in,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the PDF converter is unavailable")
}
