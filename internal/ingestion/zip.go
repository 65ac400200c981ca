package ingestion

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxEntrySize bounds a single extracted file.
const maxEntrySize = 1 << 30

// ExtractZip extracts the archive at zipPath into dest and returns the paths
// of the extracted files. Entries that would land outside dest are rejected.
func ExtractZip(zipPath, dest string) ([]string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, &Error{Source: zipPath, Message: "failed to open zip archive", Cause: err}
	}
	defer func() { _ = r.Close() }()

	root, err := filepath.Abs(dest)
	if err != nil {
		return nil, &Error{Source: zipPath, Message: "invalid destination", Cause: err}
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, &Error{Source: zipPath, Message: "failed to create destination", Cause: err}
	}

	var written []string
	for _, f := range r.File {
		target, err := safeJoin(root, f.Name)
		if err != nil {
			return written, &Error{Source: zipPath, Message: err.Error()}
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return written, &Error{Source: zipPath, Message: "failed to create directory", Cause: err}
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return written, &Error{Source: zipPath, Message: fmt.Sprintf("failed to extract %s", f.Name), Cause: err}
		}
		written = append(written, target)
	}
	return written, nil
}

func safeJoin(root, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("absolute path in archive: %s", name)
	}
	target := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("illegal path in archive: %s", name)
	}
	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	n, err := io.Copy(dst, io.LimitReader(src, maxEntrySize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	if n > maxEntrySize {
		return fmt.Errorf("entry exceeds %d bytes", maxEntrySize)
	}
	return nil
}
