// Package archive provides file system and composite archives.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ersonp/climate-materials/internal/domain/entities"
	"github.com/ersonp/climate-materials/internal/domain/ports"
)

// DefaultExtensions are the texture file types tried, in order.
var DefaultExtensions = []string{".png", ".tga"}

// Dir resolves refs to texture replacement files named
// "<archive>_<record>-<frame>.<ext>" inside a root directory.
type Dir struct {
	root       string
	extensions []string
}

// NewDir creates a directory archive. The root must exist.
func NewDir(root string, extensions ...string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("opening archive directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("archive path is not a directory: %s", root)
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Dir{root: root, extensions: extensions}, nil
}

// FileName returns the base name of a ref's file without extension.
func FileName(ref entities.ResourceRef) string {
	return fmt.Sprintf("%d_%d-%d", ref.Archive, ref.Record, ref.Frame)
}

// Lookup returns the first existing file for ref.
func (d *Dir) Lookup(ctx context.Context, ref entities.ResourceRef) (entities.Handle, error) {
	if err := ctx.Err(); err != nil {
		return entities.Handle{}, err
	}

	base := FileName(ref)
	for _, ext := range d.extensions {
		path := filepath.Join(d.root, base+ext)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return entities.Handle{}, fmt.Errorf("checking %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}
		return entities.Handle{Ref: ref, Location: path}, nil
	}

	return entities.Handle{}, fmt.Errorf("%s: %w", ref, ports.ErrNotFound)
}
