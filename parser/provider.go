package parser

import (
	"slices"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// ConnectionProvider is a parsed connection provider.
type ConnectionProvider struct {
	info

	typ              string
	management       ConnectionManagement
	connectionType   decl.Type
	grants           []string
	connectivityTest bool
}

// TypeName is the qualified name of the provider type.
func (p *ConnectionProvider) TypeName() string { return p.typ }

func (p *ConnectionProvider) Management() ConnectionManagement { return p.management }

// ConnectionType is the type of the connections the provider creates.
func (p *ConnectionProvider) ConnectionType() decl.Type { return p.connectionType }

// GrantTypes returns the OAuth grant types the provider supports.
func (p *ConnectionProvider) GrantTypes() []string { return slices.Clone(p.grants) }

// SupportsConnectivityTest reports whether the provider can validate connections.
func (p *ConnectionProvider) SupportsConnectivityTest() bool { return p.connectivityTest }

// parseConnectionProvider parses a provider type. It must implement
// ConnectionProvider with exactly one type argument.
func (e *Env) parseConnectionProvider(t decl.Type) (*ConnectionProvider, error) {
	s := e.scope(KindConnectionProvider, t.Name())
	name, err := s.componentName(t, DefaultConnectionName)
	if err != nil {
		return nil, err
	}
	s.subject.Name = name

	contract, ok := supertypeOf(t, vocabulary.ConnectionProvider)
	if !ok {
		return nil, shapeErrorf(s.subject, RuleProviderType, "%s", t.QualifiedName())
	}
	if n := len(contract.TypeArguments()); n != 1 {
		return nil, &MissingGenericArgumentError{Subject: s.subject, Type: typeName(contract), Want: 1}
	}

	base, err := s.describe(t, t.Doc())
	if err != nil {
		return nil, err
	}
	p := &ConnectionProvider{
		info:             base,
		typ:              t.QualifiedName(),
		management:       management(t),
		connectionType:   contract.TypeArguments()[0],
		connectivityTest: !assignableTo(t, vocabulary.NoConnectivityTest),
	}

	for _, grant := range []struct {
		pair vocabulary.Pair
		name string
	}{
		{vocabulary.AuthorizationCode, GrantAuthorizationCode},
		{vocabulary.ClientCredentials, GrantClientCredentials},
	} {
		ok, err := s.has(t, grant.pair)
		if err != nil {
			return nil, err
		}
		if ok {
			p.grants = append(p.grants, grant.name)
		}
	}

	params, err := s.fieldParameters(t)
	if err != nil {
		return nil, err
	}
	if p.groups, err = s.parseGroups(params, Metadata{}); err != nil {
		return nil, err
	}

	p.minVersion = s.minVersion
	e.logger.Debug("Parsed connection provider", "provider", p.name, "management", p.management)
	return p, nil
}

func management(t decl.Type) ConnectionManagement {
	switch {
	case assignableTo(t, vocabulary.PoolingConnectionProvider):
		return ConnectionPooling
	case assignableTo(t, vocabulary.CachedConnectionProvider):
		return ConnectionCached
	}
	return ConnectionNone
}
