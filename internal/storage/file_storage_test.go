// internal/storage/file_storage_test.go
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalFileStorage_SaveFile(t *testing.T) {
	tempDir := t.TempDir()
	logger, _ := zap.NewDevelopment()
	fs := NewLocalFileStorage(tempDir, logger)

	t.Run("saves file successfully", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "batch", "income_data.json")
		content := []byte(`{"individual_income": []}`)

		err := fs.SaveFile(fullPath, content)

		require.NoError(t, err)
		saved, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, content, saved)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "deep", "nested", "dir", "file.json")

		require.NoError(t, fs.SaveFile(fullPath, []byte("{}")))
		assert.FileExists(t, fullPath)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		fullPath := filepath.Join(tempDir, "overwrite", "file.json")

		require.NoError(t, fs.SaveFile(fullPath, []byte("original")))
		require.NoError(t, fs.SaveFile(fullPath, []byte("updated")))

		saved, err := os.ReadFile(fullPath)
		require.NoError(t, err)
		assert.Equal(t, "updated", string(saved))
	})

	t.Run("rejects path outside base directory", func(t *testing.T) {
		err := fs.SaveFile(filepath.Join(tempDir, "..", "escape.json"), []byte("x"))

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "escapes base directory")
	})
}

func TestLocalFileStorage_SaveJSON(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())

	fullPath := filepath.Join(tempDir, "batch", "combined.json")
	doc := []map[string]any{{"note": "公費 <計> & 印刷", "price": 1200}}

	require.NoError(t, fs.SaveJSON(fullPath, doc))

	saved, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	expected := "[\n    {\n        \"note\": \"公費 <計> & 印刷\",\n        \"price\": 1200\n    }\n]"
	assert.Equal(t, expected, string(saved))
}

func TestLocalFileStorage_ValidatePath(t *testing.T) {
	tempDir := t.TempDir()
	fs := NewLocalFileStorage(tempDir, zap.NewNop())

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"base directory itself", tempDir, false},
		{"file in base", filepath.Join(tempDir, "a.json"), false},
		{"nested file", filepath.Join(tempDir, "x", "y", "a.json"), false},
		{"parent traversal", filepath.Join(tempDir, "..", "a.json"), true},
		{"sibling with shared prefix", tempDir + "-other/a.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fs.ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
