// Package source loads uploaded product exports into tables. Readers are
// registered per file extension; the pipeline picks one by looking at the
// input path.
package source

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/loomworks/shopforge/pkg/models"
)

// Reader loads one file format into a Table
type Reader interface {
	// Name returns the reader's unique identifier
	Name() string

	// Extensions returns the file extensions this reader handles
	Extensions() []string

	// Read loads the file into a table. A load failure is the only fatal
	// error in the pipeline: it aborts before any state is created.
	Read(path string) (*models.Table, error)
}

// Registry manages available file readers
type Registry struct {
	mu      sync.RWMutex
	readers map[string]Reader // keyed by extension, e.g. ".csv"
}

// NewRegistry creates an empty reader registry
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader for each of its extensions
func (r *Registry) Register(reader Reader) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range reader.Extensions() {
		ext = strings.ToLower(ext)
		if _, exists := r.readers[ext]; exists {
			return fmt.Errorf("reader already registered for %s", ext)
		}
		r.readers[ext] = reader
	}
	return nil
}

// ForFile returns the reader matching the path's extension
func (r *Registry) ForFile(path string) (Reader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := r.readers[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	return reader, nil
}

// DefaultRegistry holds the built-in readers
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(NewCSVReader())
	DefaultRegistry.Register(NewXLSXReader())
}

// Load reads a file using the default registry
func Load(path string) (*models.Table, error) {
	reader, err := DefaultRegistry.ForFile(path)
	if err != nil {
		return nil, err
	}
	return reader.Read(path)
}
