// Package vocabulary catalogs the declarative tags and well-known types of the two
// parallel extension vocabularies.
//
// Every concept an extension author can express exists twice: once in the legacy
// family (org.mule.runtime.extension.api) and once in the current family
// (org.mule.sdk.api). The two are semantically equivalent. Parsers never look up a
// bare tag name; they resolve a Pair so that the "at most one family wins" rule is
// enforced in a single place.
//
// # Versions
//
// Each entry records the runtime version that introduced it. Legacy tags have been
// available since BaselineVersion; current tags carry their own version, which feeds the
// minimum-runtime-version computation of the component that uses them.
package vocabulary

import "sort"

const (
	// LegacyTagPackage is the package prefix of legacy declarative tags.
	LegacyTagPackage = "org.mule.runtime.extension.api.annotation"

	// CurrentTagPackage is the package prefix of current declarative tags.
	CurrentTagPackage = "org.mule.sdk.api.annotation"

	// BaselineVersion is the oldest runtime version any extension can target.
	BaselineVersion = "4.1.1"

	// CurrentVocabularyVersion is the runtime version that shipped the current family.
	CurrentVocabularyVersion = "4.4.0"
)

// Pair names one concept expressed by a legacy and a current tag.
// A Pair with an empty Legacy name exists only in the current family.
type Pair struct {
	// Concept is a short human-readable name used in diagnostics.
	Concept string

	// Legacy is the qualified name of the legacy tag.
	Legacy string

	// Current is the qualified name of the current tag.
	Current string

	// Since is the runtime version that introduced the current tag.
	Since string
}

// Names returns the non-empty qualified names of the pair, legacy first.
func (p Pair) Names() []string {
	names := make([]string, 0, 2)
	if p.Legacy != "" {
		names = append(names, p.Legacy)
	}
	if p.Current != "" {
		names = append(names, p.Current)
	}
	return names
}

// Family reports which family a qualified name belongs to within this pair.
func (p Pair) Family(name string) (Family, bool) {
	switch {
	case name == "":
		return "", false
	case name == p.Legacy:
		return FamilyLegacy, true
	case name == p.Current:
		return FamilyCurrent, true
	}
	return "", false
}

// Repeatable is a concept whose tag may appear several times, either directly or
// wrapped in a containing tag.
type Repeatable struct {
	// Entry is the repeatable tag itself.
	Entry Pair

	// Container is the tag wrapping several entries under its "value" attribute.
	Container Pair
}

// Family identifies one of the two vocabularies.
type Family string

const (
	FamilyLegacy  Family = "legacy"
	FamilyCurrent Family = "current"
)

// TypePair names a well-known type that exists in both families.
type TypePair struct {
	Concept string
	Legacy  string
	Current string
}

// Names returns the non-empty qualified names of the type pair.
func (p TypePair) Names() []string {
	names := make([]string, 0, 2)
	if p.Legacy != "" {
		names = append(names, p.Legacy)
	}
	if p.Current != "" {
		names = append(names, p.Current)
	}
	return names
}

// Matches reports whether a qualified type name is either member of the pair.
func (p TypePair) Matches(name string) bool {
	return name != "" && (name == p.Legacy || name == p.Current)
}

func tag(concept, rel, since string) Pair {
	return Pair{
		Concept: concept,
		Legacy:  LegacyTagPackage + "." + rel,
		Current: CurrentTagPackage + "." + rel,
		Since:   since,
	}
}

func currentOnly(concept, rel, since string) Pair {
	return Pair{
		Concept: concept,
		Current: CurrentTagPackage + "." + rel,
		Since:   since,
	}
}

func typePair(concept, legacy, current string) TypePair {
	return TypePair{Concept: concept, Legacy: legacy, Current: current}
}

// SinceOf returns the version that introduced a qualified tag name.
// Unknown names and legacy names report BaselineVersion.
func SinceOf(name string) string {
	if p, ok := byName[name]; ok && name == p.Current && p.Since != "" {
		return p.Since
	}
	return BaselineVersion
}

// Lookup returns the pair a qualified tag name belongs to.
func Lookup(name string) (Pair, bool) {
	p, ok := byName[name]
	return p, ok
}

// IsKnown reports whether a qualified name is a tag or well-known type of either family.
func IsKnown(name string) bool {
	if _, ok := byName[name]; ok {
		return true
	}
	_, ok := typeNames[name]
	return ok
}

// KnownNames returns every qualified tag and type name, sorted.
func KnownNames() []string {
	names := make([]string, 0, len(byName)+len(typeNames))
	for n := range byName {
		names = append(names, n)
	}
	for n := range typeNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var (
	byName    = map[string]Pair{}
	typeNames = map[string]TypePair{}
)

func init() {
	for _, p := range AllPairs() {
		for _, n := range p.Names() {
			byName[n] = p
		}
	}
	for _, t := range AllTypes() {
		for _, n := range t.Names() {
			typeNames[n] = t
		}
	}
}
