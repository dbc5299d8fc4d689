// filepath: internal/storage/exports.go
// Package storage manages the exports directory: the place generated
// PDFs and backup snapshots land on disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExportPath returns the absolute destination for one export file,
// creating the directory if needed. The file name must stay inside
// the exports directory.
func ExportPath(dir, name string) (string, error) {
	path := filepath.Join(dir, name)

	// --- SECURITY: Prevent Path Traversal ---
	cleaned := filepath.Clean(path)
	cleanedDir := filepath.Clean(dir)
	if !strings.HasPrefix(cleaned, cleanedDir+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid export file name: %q", name)
	}

	if err := os.MkdirAll(cleanedDir, 0o755); err != nil {
		return "", fmt.Errorf("could not create export directory: %w", err)
	}
	return cleaned, nil
}

// SaveFile streams data from a reader to the given path, avoiding
// loading it entirely into memory.
func SaveFile(data io.Reader, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, data)
	if err != nil {
		return 0, fmt.Errorf("could not write file: %w", err)
	}
	return size, nil
}

// ListFiles returns the plain files directly inside dir, newest first
// by modification time. A missing directory is an empty listing.
func ListFiles(dir string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ModTime().After(infos[j].ModTime()) })
	return infos, nil
}
