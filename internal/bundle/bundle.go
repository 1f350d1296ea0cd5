// Package bundle serves the form tree that ships with the binary. It is the
// last resort when neither the endpoint nor the local cache can answer.
package bundle

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pders01/formtree/internal/models"
	"github.com/spf13/afero"
)

// DefaultName is the name of the embedded form
const DefaultName = "form.json"

//go:embed form.json
var embedded embed.FS

// Bundle loads a form tree from a read-only filesystem
type Bundle struct {
	fsys fs.FS
	name string
}

// New creates a bundle reading name from fsys
func New(fsys fs.FS, name string) *Bundle {
	return &Bundle{fsys: fsys, name: name}
}

// Embedded returns the bundle compiled into the binary
func Embedded() *Bundle {
	return New(embedded, DefaultName)
}

// FromFile returns a bundle backed by a file on disk, for deployments that
// ship their own fallback form
func FromFile(afs afero.Fs, path string) *Bundle {
	// io/fs names are relative, so anchor the filesystem at the file's directory
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return New(afero.NewIOFS(afero.NewBasePathFs(afs, filepath.Dir(path))), filepath.Base(path))
}

// Name returns the file the bundle reads
func (b *Bundle) Name() string {
	return b.name
}

// Load reads and decodes the bundled tree
func (b *Bundle) Load() (models.Node, error) {
	data, err := fs.ReadFile(b.fsys, b.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundled form: %w", err)
	}

	tree, err := models.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bundled form %s: %w", b.name, err)
	}

	return tree, nil
}
