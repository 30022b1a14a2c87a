package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()

	// nubank/ with a nested period directory
	nubankDir := filepath.Join(tmpDir, "nubank", "2025-06")
	require.NoError(t, os.MkdirAll(nubankDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(nubankDir, "extrato.csv"), []byte("test"), 0644))

	// bradesco/ with mixed formats
	bradescoDir := filepath.Join(tmpDir, "bradesco")
	require.NoError(t, os.MkdirAll(bradescoDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bradescoDir, "extrato.txt"), []byte("test"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(bradescoDir, "fatura.pdf"), []byte("test"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(bradescoDir, "planilha.xlsx"), []byte("test"), 0644))

	// bb/ with an OFX export
	bbDir := filepath.Join(tmpDir, "bb")
	require.NoError(t, os.MkdirAll(bbDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bbDir, "extrato.ofx"), []byte("test"), 0644))

	// Non-statement files, should be ignored
	miscDir := filepath.Join(tmpDir, "misc")
	require.NoError(t, os.MkdirAll(miscDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(miscDir, "readme.md"), []byte("test"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(miscDir, "backup.zip"), []byte("test"), 0644))

	paths, err := New(tmpDir).Scan()
	require.NoError(t, err)

	assert.Len(t, paths, 5, "should find 5 statement files")
	for _, p := range paths {
		assert.Contains(t, statementExtensions, filepath.Ext(p))
	}
}

func TestScanner_Scan_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no-such-dir")).Scan()
	assert.Error(t, err)
}

func TestScanner_IsStatementFile(t *testing.T) {
	s := New(".")

	tests := []struct {
		path string
		want bool
	}{
		{"extrato.csv", true},
		{"EXTRATO.CSV", true},
		{"fatura.pdf", true},
		{"planilha.xlsx", true},
		{"statement.qfx", true},
		{"planilha.xls", false},
		{"readme.md", false},
		{"extrato", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, s.isStatementFile(tt.path))
		})
	}
}
