package decl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ErrTypeNotFound is returned when a loader cannot find a requested declaration.
var ErrTypeNotFound = errors.New("type not found")

// Loader populates a declaration graph from host source files.
type Loader interface {
	// Load reads files and declares every type they contain in g.
	// References that cannot be resolved become opaque usages, not errors.
	Load(ctx context.Context, g *MemoryGraph, files []string) error
}

// LoaderFactory creates a Loader for a specific host language.
type LoaderFactory func(logger *slog.Logger) Loader

// LoaderRegistry maintains a registry of host-language loaders.
// Loaders are registered by name with their supported file extensions.
// Thread-safe for concurrent access.
type LoaderRegistry struct {
	mu      sync.RWMutex
	loaders map[string]LoaderFactory // name → factory
	extMap  map[string]string        // extension → loader name
}

// NewLoaderRegistry creates a new empty loader registry.
func NewLoaderRegistry() *LoaderRegistry {
	return &LoaderRegistry{
		loaders: make(map[string]LoaderFactory),
		extMap:  make(map[string]string),
	}
}

// Register adds a loader factory for the given extensions.
// The first registration wins if there's an extension conflict.
// Extensions include the leading dot (e.g., ".java").
func (r *LoaderRegistry) Register(name string, extensions []string, factory LoaderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loaders[name] = factory
	for _, ext := range extensions {
		if _, exists := r.extMap[ext]; !exists {
			r.extMap[ext] = name
		}
	}
}

// LoaderNameFor returns the loader name registered for a file extension.
func (r *LoaderRegistry) LoaderNameFor(ext string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.extMap[ext]
	return name, ok
}

// CreateLoader instantiates a loader by name.
func (r *LoaderRegistry) CreateLoader(name string, logger *slog.Logger) (Loader, error) {
	r.mu.RLock()
	factory, ok := r.loaders[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("loader not registered: %s", name)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return factory(logger), nil
}

// CreateLoaderForExtension creates a loader for the given file extension.
func (r *LoaderRegistry) CreateLoaderForExtension(ext string, logger *slog.Logger) (Loader, error) {
	name, ok := r.LoaderNameFor(ext)
	if !ok {
		return nil, fmt.Errorf("no loader registered for extension: %s", ext)
	}
	return r.CreateLoader(name, logger)
}

// ListLoaders returns all registered loader names, sorted.
func (r *LoaderRegistry) ListLoaders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListExtensions returns all registered file extensions, sorted.
func (r *LoaderRegistry) ListExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	extensions := make([]string, 0, len(r.extMap))
	for ext := range r.extMap {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

// HasLoader returns true if a loader with the given name is registered.
func (r *LoaderRegistry) HasLoader(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.loaders[name]
	return ok
}

// DefaultRegistry is the global loader registry.
// Host-language loaders register themselves via init() functions.
var DefaultRegistry = NewLoaderRegistry()
