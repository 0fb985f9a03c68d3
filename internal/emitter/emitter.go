// Package emitter converts an Element Model package to declaration text
package emitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/QTest-hq/dtsgen/pkg/model"
)

// Emitter renders a package for a specific target syntax family
type Emitter interface {
	// Name returns the emitter name (e.g., "typescript", "dts")
	Name() string

	// Language returns the target language
	Language() string

	// FileExtension returns the output file extension (e.g., ".ts", ".d.ts")
	FileExtension() string

	// Emit renders the top-level elements of the package, already wrapped in
	// its namespace chain
	Emit(pkg *model.PackageElement) (string, error)
}

// Registry holds all available emitters
type Registry struct {
	emitters map[string]Emitter
}

// NewRegistry creates a new emitter registry with all built-in emitters
func NewRegistry() *Registry {
	r := &Registry{
		emitters: make(map[string]Emitter),
	}

	r.Register(NewTypeScriptEmitter())
	r.Register(NewDeclarationEmitter())

	return r
}

// Register adds an emitter to the registry
func (r *Registry) Register(e Emitter) {
	r.emitters[e.Name()] = e
}

// Get returns an emitter by name
func (r *Registry) Get(name string) (Emitter, error) {
	e, ok := r.emitters[name]
	if !ok {
		return nil, fmt.Errorf("emitter not found: %s", name)
	}
	return e, nil
}

// GetForExtension returns the emitter whose file extension is the longest
// suffix of ext
func (r *Registry) GetForExtension(ext string) (Emitter, error) {
	var best Emitter
	for _, e := range r.emitters {
		if !strings.HasSuffix(ext, e.FileExtension()) {
			continue
		}
		if best == nil || len(e.FileExtension()) > len(best.FileExtension()) {
			best = e
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no emitter for extension: %q", ext)
	}
	return best, nil
}

// List returns all registered emitter names
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.emitters))
	for name := range r.emitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
