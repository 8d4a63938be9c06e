package parser

import (
	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// connectionElements returns the elements tagged as connections.
func (s *scope) connectionElements(elements []decl.Element) ([]decl.Element, error) {
	var out []decl.Element
	for _, el := range elements {
		ok, err := s.has(el, vocabulary.Connection)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, el)
		}
	}
	return out, nil
}

// connectivity resolves whether a component is connected from its connection
// parameters or fields. At most one is allowed.
func (s *scope) connectivity(elements []decl.Element) (Connectivity, error) {
	conns, err := s.connectionElements(elements)
	if err != nil {
		return Connectivity{}, err
	}
	switch len(conns) {
	case 0:
		return Connectivity{}, nil
	case 1:
	default:
		return Connectivity{}, &AmbiguousConnectivityError{Subject: s.subject, Count: len(conns)}
	}

	ct := conns[0].Type()
	if provider, ok := supertypeOf(ct, vocabulary.ConnectionProvider); ok {
		arg, ok := typeArg(provider, 0)
		if !ok {
			return Connectivity{}, &MissingGenericArgumentError{
				Subject:   s.subject,
				Parameter: conns[0].Name(),
				Type:      typeName(ct),
				Want:      1,
			}
		}
		ct = arg
	}
	return Connectivity{
		Connected:      true,
		Transactional:  assignableTo(ct, vocabulary.TransactionalConnection),
		ConnectionType: ct,
	}, nil
}

// paging reports whether rt is a paging provider and, if so, returns the
// connectivity it implies and the page element type.
func paging(rt decl.Type) (Connectivity, decl.Type, bool) {
	pp, ok := supertypeOf(rt, vocabulary.PagingProvider)
	if !ok {
		return Connectivity{}, nil, false
	}
	conn := Connectivity{Connected: true}
	if c, ok := typeArg(pp, 0); ok {
		conn.ConnectionType = c
		conn.Transactional = assignableTo(c, vocabulary.TransactionalConnection)
	}
	elem, _ := typeArg(pp, 1)
	return conn, elem, true
}

// streaming reports whether a component streams its output.
func (s *scope) streaming(a decl.Annotated, output decl.Type) (bool, error) {
	if decl.IsAssignableTo(output, vocabulary.JavaInputStream) {
		return true, nil
	}
	return s.has(a, vocabulary.Streaming)
}
