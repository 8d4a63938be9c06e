package parser

import (
	"fmt"
	"log/slog"

	"golang.org/x/mod/semver"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/stackable"
	"github.com/c360studio/extmodel/vocabulary"
)

// Env holds what every parser of one extension shares. An Env is read-only once
// built and may be shared by concurrent parses of different extensions.
type Env struct {
	graph     decl.Graph
	stackable *stackable.Registry
	logger    *slog.Logger
}

// Option configures an Env.
type Option func(*Env)

// WithStackableRegistry overrides the wrapper registry.
func WithStackableRegistry(r *stackable.Registry) Option {
	return func(e *Env) { e.stackable = r }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(e *Env) { e.logger = l }
}

// NewEnv creates the parse environment for a declaration graph.
func NewEnv(g decl.Graph, opts ...Option) *Env {
	e := &Env{graph: g, stackable: stackable.DefaultRegistry, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// lookupAll resolves class-literal names referenced by a tag.
func (e *Env) lookupAll(s Subject, names []string) ([]decl.Type, error) {
	out := make([]decl.Type, 0, len(names))
	for _, n := range names {
		t, ok := e.graph.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%s references %s: %w", s, n, decl.ErrTypeNotFound)
		}
		out = append(out, t)
	}
	return out, nil
}

// scope carries the diagnostic subject of the component being parsed and collects
// the runtime version its tags require.
type scope struct {
	env        *Env
	subject    Subject
	minVersion string
}

func (e *Env) scope(kind ComponentKind, name string) *scope {
	return &scope{env: e, subject: Subject{Kind: kind, Name: name}, minVersion: vocabulary.BaselineVersion}
}

// tag resolves the tag of a concept and records the version it requires.
func (s *scope) tag(a decl.Annotated, p vocabulary.Pair) (decl.Tag, bool, error) {
	t, ok, err := tagDual(p).Resolve(s.subject, a)
	if err != nil || !ok {
		return t, ok, err
	}
	s.require(vocabulary.SinceOf(t.Name))
	return t, true, nil
}

// has reports whether a concept is tagged.
func (s *scope) has(a decl.Annotated, p vocabulary.Pair) (bool, error) {
	_, ok, err := s.tag(a, p)
	return ok, err
}

// repeatable resolves the entries of a repeatable concept.
func (s *scope) repeatable(a decl.Annotated, r vocabulary.Repeatable) ([]decl.Tag, error) {
	tags, err := tagDual(r.Entry).ResolveRepeatable(s.subject, a, r.Container)
	if err != nil {
		return nil, err
	}
	for _, t := range tags {
		s.require(vocabulary.SinceOf(t.Name))
	}
	return tags, nil
}

// require raises the minimum version to at least v.
func (s *scope) require(v string) {
	s.minVersion = MaxVersion(s.minVersion, v)
}

// MaxVersion returns the greater of two dotted runtime versions. Invalid versions
// lose against valid ones.
func MaxVersion(a, b string) string {
	va, vb := "v"+a, "v"+b
	switch {
	case !semver.IsValid(vb):
		return a
	case !semver.IsValid(va):
		return b
	case semver.Compare(va, vb) >= 0:
		return a
	}
	return b
}

// IsValidVersion reports whether v is a dotted runtime version such as "4.5.0".
func IsValidVersion(v string) bool {
	return v != "" && semver.IsValid("v"+v)
}
