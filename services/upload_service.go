package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadDir is where booking documents and room images land; the router
// serves it under /uploads.
const UploadDir = "uploads"

// SaveUploadedFile writes a multipart upload under uploads/<subdir> with a
// random filename and returns the public path stored in the DB.
func SaveUploadedFile(fh *multipart.FileHeader, subdir string) (string, error) {
	dir := filepath.Join(UploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	fullpath := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullpath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/" + filepath.ToSlash(fullpath), nil
}

// RemoveUploadedFile deletes a previously stored file, tolerating paths that
// are already gone.
func RemoveUploadedFile(publicPath string) {
	rel := strings.TrimPrefix(publicPath, "/")
	if rel == "" || !strings.HasPrefix(rel, UploadDir+"/") {
		return
	}
	_ = os.Remove(filepath.FromSlash(rel))
}
