package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdownToPDF(t *testing.T) {
	tmpDir := t.TempDir()
	markdownPath := filepath.Join(tmpDir, "report.md")
	require.NoError(t, os.WriteFile(markdownPath, []byte("# Report\n\nSome text.\n"), 0o644))

	pdfPath, err := ConvertMarkdownToPDF(markdownPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(pdfPath, "report.pdf"))

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestConvertMarkdownToPDF_Errors(t *testing.T) {
	tests := []struct {
		name            string
		markdownPath    string
		wantErrorString string
	}{
		{
			name:            "not a markdown file",
			markdownPath:    "report.txt",
			wantErrorString: "must have .md extension",
		},
		{
			name:            "missing file",
			markdownPath:    filepath.Join(t.TempDir(), "missing.md"),
			wantErrorString: "os.ReadFile",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConvertMarkdownToPDF(tt.markdownPath)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrorString)
		})
	}
}
