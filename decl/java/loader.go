// Package java loads Java extension sources into a declaration graph using tree-sitter.
//
// Loading runs in two phases. Each file is first parsed into an unresolved unit that
// keeps type names as written; units are cached by content hash so that a watch loop
// re-reading unchanged files skips tree-sitter entirely. Once every file is parsed,
// names are resolved against imports, nested types, the other loaded units, the
// platform catalog and the tag vocabulary, and the resolved declarations are added to
// the graph.
package java

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/c360studio/extmodel/decl"
)

const (
	// DefaultUnitExpiration is how long a parsed unit stays cached.
	DefaultUnitExpiration = 10 * time.Minute

	defaultCleanupInterval = 30 * time.Minute
)

func init() {
	decl.DefaultRegistry.Register("java", []string{".java"},
		func(logger *slog.Logger) decl.Loader {
			return NewLoader(logger)
		})
}

// Loader reads Java source files into a decl.MemoryGraph.
type Loader struct {
	logger *slog.Logger
	cache  *gocache.Cache

	mu     sync.Mutex // guards parser and docs
	parser *sitter.Parser
	docs   *docConverter
}

// NewLoader creates a Java loader with its own unit cache.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Loader{
		logger: logger,
		cache:  gocache.New(DefaultUnitExpiration, defaultCleanupInterval),
		parser: p,
		docs:   newDocConverter(),
	}
}

// Load implements decl.Loader.
func (l *Loader) Load(ctx context.Context, g *decl.MemoryGraph, files []string) error {
	units := make([]*unit, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		u, err := l.parseUnit(ctx, path, content)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		units = append(units, u)
	}
	declared := resolveUnits(g, units)
	l.logger.Debug("Loaded Java sources", "files", len(files), "types", declared)
	return nil
}

// LoadSource parses a single in-memory source, mostly for tests and tooling.
func (l *Loader) LoadSource(ctx context.Context, g *decl.MemoryGraph, path string, content []byte) error {
	u, err := l.parseUnit(ctx, path, content)
	if err != nil {
		return err
	}
	resolveUnits(g, []*unit{u})
	return nil
}

// CachedUnits returns the number of parsed units currently cached.
func (l *Loader) CachedUnits() int {
	return l.cache.ItemCount()
}

func (l *Loader) parseUnit(ctx context.Context, path string, content []byte) (*unit, error) {
	key := contentKey(path, content)
	if v, found := l.cache.Get(key); found {
		if u, ok := v.(*unit); ok {
			l.logger.Debug("Unit cache hit", "path", path)
			return u, nil
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tree, err := l.parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}
	defer tree.Close()

	u := &unit{path: path, imports: map[string]string{}}
	x := &extractor{content: content, u: u, docs: l.docs}
	x.extractUnit(tree.RootNode())

	l.cache.Set(key, u, gocache.DefaultExpiration)
	return u, nil
}

func contentKey(path string, content []byte) string {
	h := sha256.Sum256(content)
	return path + "@" + hex.EncodeToString(h[:8])
}
