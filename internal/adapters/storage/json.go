package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xvierd/tempo-cli/internal/ports"
)

// jsonBackend stores the document as a single JSON file.
type jsonBackend struct {
	file string
}

// NewJSON creates a store backed by a JSON file and loads it.
// A missing or corrupt file starts an empty store.
func NewJSON(ctx context.Context, path string) ports.Store {
	return newRepository(ctx, &jsonBackend{file: path})
}

func (b *jsonBackend) read(ctx context.Context) (document, error) {
	data, err := os.ReadFile(b.file)
	if errors.Is(err, fs.ErrNotExist) {
		return document{}, nil
	}
	if err != nil {
		return document{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return document{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("decode: %w", err)
	}
	return doc, nil
}

// write replaces the file via a temp file in the same directory and a rename.
func (b *jsonBackend) write(ctx context.Context, doc document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(b.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(b.file)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, b.file)
}

func (b *jsonBackend) path() string {
	return b.file
}

func (b *jsonBackend) close() error {
	return nil
}
