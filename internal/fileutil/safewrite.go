// Package fileutil provides atomic file replacement with optional
// backup, guarded by an advisory lock.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// SafeWrite replaces the file at path with content using a temp-file-
// then-rename discipline, so a crash never leaves a partial write in
// place. When backup is true the previous content is kept next to the
// file with a .bak suffix.
//
// An advisory lock on path + ".lock" serializes concurrent writers of
// the same file across processes.
func SafeWrite(path string, content []byte, backup bool) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(path + ".lock")
	}()

	if backup {
		if prev, err := os.ReadFile(path); err == nil {
			info, statErr := os.Stat(path)
			mode := os.FileMode(0644)
			if statErr == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(path+".bak", prev, mode); err != nil {
				return fmt.Errorf("failed to write backup for %s: %w", path, err)
			}
		}
	}

	return atomicWrite(path, content)
}

// atomicWrite writes data to a temp file in the target's directory and
// renames it into place. Rename within one directory is atomic, so
// readers never observe partial content.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Preserve the target's mode when it already exists.
	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmpPath, info.Mode())
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// FormatSize renders a byte count in human-readable form.
func FormatSize(size int64) string {
	if size == 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB"}
	value := float64(size)
	i := 0
	for value >= 1024 && i < len(units)-1 {
		value /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", size)
	}
	return fmt.Sprintf("%.2f %s", value, units[i])
}
