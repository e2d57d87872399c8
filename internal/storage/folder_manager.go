package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// ErrInvalidFolderName is returned when a batch name sanitizes to nothing usable
var ErrInvalidFolderName = errors.New("invalid output folder name")

// characters Windows rejects in file names
var unsafeNameChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// FolderManager manages one output folder per batch under baseDir
type FolderManager struct {
	baseDir string
	logger  *zap.Logger
}

// NewFolderManager creates a new FolderManager
func NewFolderManager(baseDir string, logger *zap.Logger) *FolderManager {
	return &FolderManager{
		baseDir: baseDir,
		logger:  logger,
	}
}

// BaseDir returns the root all batch folders are created under
func (m *FolderManager) BaseDir() string {
	return m.baseDir
}

// CreateBatchFolder creates {baseDir}/{sanitized name}/ and returns its path.
// An existing folder is reused; documents inside are overwritten by the next run.
func (m *FolderManager) CreateBatchFolder(name string) (string, error) {
	folderPath, err := m.GetBatchFolderPath(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(folderPath, 0755); err != nil {
		m.logger.Error("Failed to create batch folder",
			zap.String("batch", name),
			zap.String("folder_path", folderPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to create folder: %w", err)
	}

	m.logger.Debug("Created batch folder",
		zap.String("batch", name),
		zap.String("folder_path", folderPath))

	return folderPath, nil
}

// GetBatchFolderPath returns the path for a batch folder without creating it
func (m *FolderManager) GetBatchFolderPath(name string) (string, error) {
	safeName, err := SanitizeFolderName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(m.baseDir, safeName), nil
}

// FolderExists checks if the batch folder already exists
func (m *FolderManager) FolderExists(name string) bool {
	folderPath, err := m.GetBatchFolderPath(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(folderPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// SanitizeFolderName keeps only the base name of name and replaces
// characters that are illegal in file names with underscores.
func SanitizeFolderName(name string) (string, error) {
	base := filepath.Base(name)
	// filepath.Base only splits on the host separator
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	safe := unsafeNameChars.ReplaceAllString(base, "_")
	switch safe {
	case "", ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidFolderName, name)
	}
	return safe, nil
}
