// Package scanner runs one pass over an extension source tree: it resolves the
// configured globs, loads the files into a declaration graph, parses every
// extension concurrently and publishes the accepted models.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/extmodel/config"
	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/export"
	"github.com/c360studio/extmodel/graph"
	"github.com/c360studio/extmodel/metrics"
	"github.com/c360studio/extmodel/parser"

	// Register the Java loader.
	_ "github.com/c360studio/extmodel/decl/java"
)

// KindUnresolved labels rejections caused by a reference to an undeclared type.
const KindUnresolved = "unresolved_type"

// Rejection is an extension whose model failed validation.
type Rejection struct {
	Type string
	Kind string
	Err  error
}

// Result is the outcome of one scan.
type Result struct {
	RunID      string
	Root       string
	Files      []string
	Extensions []*parser.Extension
	Rejected   []Rejection
	Facts      int
	Duration   time.Duration
}

// OK reports whether every discovered extension was accepted.
func (r *Result) OK() bool { return len(r.Rejected) == 0 }

// Scanner scans the sources selected by a config. A Scanner keeps its loaders,
// and with them their parse caches, across scans.
type Scanner struct {
	cfg       *config.Config
	registry  *decl.LoaderRegistry
	publisher *graph.Publisher
	metrics   *metrics.Collector
	logger    *slog.Logger

	mu      sync.Mutex
	loaders map[string]decl.Loader
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) { s.logger = l }
}

// WithMetrics records scan metrics.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Scanner) { s.metrics = m }
}

// WithPublisher publishes accepted extensions after each scan.
func WithPublisher(p *graph.Publisher) Option {
	return func(s *Scanner) { s.publisher = p }
}

// WithRegistry overrides the loader registry.
func WithRegistry(r *decl.LoaderRegistry) Option {
	return func(s *Scanner) { s.registry = r }
}

// New creates a scanner for cfg.
func New(cfg *config.Config, opts ...Option) *Scanner {
	s := &Scanner{
		cfg:      cfg,
		registry: decl.DefaultRegistry,
		logger:   slog.Default(),
		loaders:  make(map[string]decl.Loader),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveFiles expands the include globs under the source root, drops excluded
// paths and returns the remaining absolute paths, sorted.
func (s *Scanner) ResolveFiles() ([]string, error) {
	root := s.cfg.Sources.Root
	fsys := os.DirFS(root)

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range s.cfg.Sources.Include {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			excluded, err := s.excluded(m)
			if err != nil {
				return nil, err
			}
			if !excluded {
				files = append(files, filepath.Join(root, filepath.FromSlash(m)))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// Selects reports whether an absolute path under the source root matches the
// include globs and none of the exclude globs.
func (s *Scanner) Selects(path string) bool {
	rel, err := filepath.Rel(s.cfg.Sources.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range s.cfg.Sources.Include {
		if ok, _ := doublestar.Match(filepath.ToSlash(pattern), rel); ok {
			excluded, err := s.excluded(rel)
			return err == nil && !excluded
		}
	}
	return false
}

// Root returns the source root.
func (s *Scanner) Root() string { return s.cfg.Sources.Root }

func (s *Scanner) excluded(rel string) (bool, error) {
	for _, pattern := range s.cfg.Sources.Exclude {
		ok, err := doublestar.Match(filepath.ToSlash(pattern), rel)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Load reads files into a fresh declaration graph, dispatching each file to the
// loader registered for its extension. Files no loader handles are skipped.
func (s *Scanner) Load(ctx context.Context, files []string) (*decl.MemoryGraph, int, error) {
	byLoader := make(map[string][]string)
	for _, f := range files {
		name, ok := s.registry.LoaderNameFor(path.Ext(filepath.ToSlash(f)))
		if !ok {
			s.logger.Debug("No loader for file", "path", f)
			continue
		}
		byLoader[name] = append(byLoader[name], f)
	}

	names := make([]string, 0, len(byLoader))
	for name := range byLoader {
		names = append(names, name)
	}
	sort.Strings(names)

	g := decl.NewMemoryGraph()
	loaded := 0
	for _, name := range names {
		l, err := s.loader(name)
		if err != nil {
			return nil, loaded, err
		}
		if err := l.Load(ctx, g, byLoader[name]); err != nil {
			return nil, loaded, fmt.Errorf("%s loader: %w", name, err)
		}
		loaded += len(byLoader[name])
	}
	return g, loaded, nil
}

func (s *Scanner) loader(name string) (decl.Loader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.loaders[name]; ok {
		return l, nil
	}
	l, err := s.registry.CreateLoader(name, s.logger)
	if err != nil {
		return nil, err
	}
	s.loaders[name] = l
	return l, nil
}

// Scan runs one full pass. Model violations are reported as rejections in the
// result; the returned error is reserved for I/O, cancellation, publishing
// failures and sources that declare no extension at all.
func (s *Scanner) Scan(ctx context.Context) (res *Result, err error) {
	start := time.Now()
	res = &Result{RunID: uuid.NewString(), Root: s.cfg.Sources.Root}
	defer func() {
		res.Duration = time.Since(start)
		if s.metrics != nil {
			s.metrics.ObserveScan(start, err)
		}
	}()

	logger := s.logger.With("run", res.RunID)

	res.Files, err = s.ResolveFiles()
	if err != nil {
		return res, err
	}
	g, loaded, err := s.Load(ctx, res.Files)
	if err != nil {
		return res, err
	}
	if s.metrics != nil {
		s.metrics.FilesLoaded.Add(float64(loaded))
	}

	res.Extensions, res.Rejected, err = s.parse(ctx, g, logger)
	if err != nil {
		return res, err
	}
	if len(res.Extensions) == 0 && len(res.Rejected) == 0 {
		return res, fmt.Errorf("%s: %w", res.Root, parser.ErrNoExtension)
	}

	opts := export.FactOptions{Org: s.cfg.Org, Origin: res.Root, Now: start}
	for _, x := range res.Extensions {
		n, err := s.publisher.PublishExtension(ctx, x, opts)
		res.Facts += n
		if err != nil {
			return res, err
		}
	}

	logger.Info("Scan complete",
		"files", len(res.Files),
		"extensions", len(res.Extensions),
		"rejected", len(res.Rejected),
		"facts", res.Facts,
		"duration", time.Since(start))
	return res, nil
}

func (s *Scanner) parse(ctx context.Context, g decl.Graph, logger *slog.Logger) ([]*parser.Extension, []Rejection, error) {
	var types []decl.Type
	for _, t := range g.Types() {
		if parser.IsExtension(t) {
			types = append(types, t)
		}
	}

	env := parser.NewEnv(g, parser.WithLogger(logger))
	parsed := make([]*parser.Extension, len(types))
	failed := make([]error, len(types))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.cfg.Sources.Workers)
	for i, t := range types {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			x, err := parser.ParseExtension(env, t)
			if s.metrics != nil {
				s.metrics.ObserveExtension(time.Since(start), kindOf(err))
			}
			parsed[i], failed[i] = x, err
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	var accepted []*parser.Extension
	var rejected []Rejection
	for i, t := range types {
		if err := failed[i]; err != nil {
			r := Rejection{Type: t.QualifiedName(), Kind: kindOf(err), Err: err}
			logger.Warn("Extension rejected", "extension", r.Type, "kind", r.Kind, "error", err)
			rejected = append(rejected, r)
			continue
		}
		accepted = append(accepted, parsed[i])
	}
	return accepted, rejected, nil
}

func kindOf(err error) string {
	if err == nil {
		return ""
	}
	if kind := parser.DiagnosticKind(err); kind != "" {
		return kind
	}
	if errors.Is(err, decl.ErrTypeNotFound) {
		return KindUnresolved
	}
	return "error"
}
