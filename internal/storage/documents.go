// Package storage keeps uploaded identity documents on local disk.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Dan9191/credit-simulator/internal/errs"
)

// MaxDocumentSize caps a single uploaded document.
const MaxDocumentSize = 5 << 20

var allowedExt = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Documents writes files under a base directory with random names.
type Documents struct {
	dir string
}

func NewDocuments(dir string) *Documents {
	return &Documents{dir: dir}
}

// Store copies r into a new file with extension ext and returns its path.
// Unsupported extensions and oversized documents fail with errs.ErrValidation.
func (d *Documents) Store(r io.Reader, ext string) (string, error) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: formato de archivo '%s' no permitido", errs.ErrValidation, ext)
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	path := filepath.Join(d.dir, uuid.New().String()+ext)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}
	n, err := io.Copy(f, io.LimitReader(r, MaxDocumentSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	if n > MaxDocumentSize {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: el archivo supera %d bytes", errs.ErrValidation, MaxDocumentSize)
	}
	return path, nil
}

// Remove deletes a stored document. A missing file is not an error.
func (d *Documents) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	return nil
}
