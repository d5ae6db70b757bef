package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// InvoiceStore writes uploaded invoice images into a flat directory. Each
// file gets a fresh random name so uploads can never collide or overwrite
// one another; only the extension of the original name survives.
type InvoiceStore struct {
	dir string
}

func NewInvoiceStore(dir string) *InvoiceStore {
	return &InvoiceStore{dir: dir}
}

// Save stores the upload and returns the generated filename. The directory
// is created on first use.
func (s *InvoiceStore) Save(originalName string, content io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	name := uuid.NewString() + filepath.Ext(originalName)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create invoice file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write invoice file: %w", err)
	}

	return name, nil
}
