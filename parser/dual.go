package parser

import (
	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// Dual resolves one concept expressed by a legacy and a current tag into a single
// value. At most one family may be present on a declaration.
type Dual[T any] struct {
	Pair    vocabulary.Pair
	Legacy  func(decl.Tag) T
	Current func(decl.Tag) T

	// Conflict builds the error returned when both families are present.
	// A ConflictingDeclarationError is returned when nil.
	Conflict func(Subject, vocabulary.Pair) error
}

// Resolve returns the value mapped from whichever tag is present. ok is false when
// neither tag is present.
func (d Dual[T]) Resolve(s Subject, a decl.Annotated) (value T, ok bool, err error) {
	legacy, hasLegacy := decl.FindTag(a, d.Pair.Legacy)
	current, hasCurrent := decl.FindTag(a, d.Pair.Current)
	switch {
	case hasLegacy && hasCurrent:
		return value, false, d.conflict(s)
	case hasLegacy:
		return d.Legacy(legacy), true, nil
	case hasCurrent:
		return d.Current(current), true, nil
	}
	return value, false, nil
}

// ResolveRepeatable maps every entry of a repeatable concept, whether declared
// directly or inside its container tag, in declaration order. The family rule applies
// to entries and containers together.
func (d Dual[T]) ResolveRepeatable(s Subject, a decl.Annotated, container vocabulary.Pair) ([]T, error) {
	legacy := entries(a, d.Pair.Legacy, container.Legacy)
	current := entries(a, d.Pair.Current, container.Current)
	if len(legacy) > 0 && len(current) > 0 {
		return nil, d.conflict(s)
	}
	var out []T
	for _, t := range legacy {
		out = append(out, d.Legacy(t))
	}
	for _, t := range current {
		out = append(out, d.Current(t))
	}
	return out, nil
}

func (d Dual[T]) conflict(s Subject) error {
	if d.Conflict != nil {
		return d.Conflict(s, d.Pair)
	}
	return &ConflictingDeclarationError{
		Subject: s,
		Concept: d.Pair.Concept,
		Legacy:  d.Pair.Legacy,
		Current: d.Pair.Current,
	}
}

// entries collects repeatable tags in declaration order, expanding containers.
func entries(a decl.Annotated, entry, container string) []decl.Tag {
	if a == nil {
		return nil
	}
	var out []decl.Tag
	for _, t := range a.Tags() {
		switch {
		case entry != "" && t.Name == entry:
			out = append(out, t)
		case container != "" && t.Name == container:
			out = append(out, t.Nested(decl.DefaultAttribute)...)
		}
	}
	return out
}

func identity(t decl.Tag) decl.Tag { return t }

// tagDual resolves the tag itself; both families share attribute names.
func tagDual(p vocabulary.Pair) Dual[decl.Tag] {
	return Dual[decl.Tag]{Pair: p, Legacy: identity, Current: identity}
}
