// Package documents reads per-target material documents from disk.
package documents

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ersonp/climate-materials/internal/domain/entities"
)

// Extensions are tried in order for each document name.
var Extensions = []string{".json", ".yaml", ".yml"}

// FS loads documents named "<target>.<ext>" from a directory.
type FS struct {
	root string
}

// NewFS creates a file system document source rooted at dir.
func NewFS(dir string) *FS {
	return &FS{root: dir}
}

// Open reads the first document found for name.
func (s *FS) Open(ctx context.Context, name string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, "", fmt.Errorf("invalid document name %q", name)
	}

	for _, ext := range Extensions {
		path := filepath.Join(s.root, name+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("reading document: %w", err)
		}
		return data, path, nil
	}

	return nil, "", fmt.Errorf("%s in %s: %w", name, s.root, entities.ErrSourceNotFound)
}

// List returns the document names available in the directory, sorted.
func (s *FS) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("reading documents directory: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		for _, known := range Extensions {
			if strings.EqualFold(ext, known) {
				name := strings.TrimSuffix(e.Name(), ext)
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
				break
			}
		}
	}
	return names, nil
}
