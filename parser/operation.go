package parser

import (
	"slices"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// Operation is a parsed operation.
type Operation struct {
	info

	method       string
	container    string
	shape        Shape
	paged        bool
	output       decl.Type
	attributes   decl.Type
	connectivity Connectivity
	streaming    bool
	config       bool
	execution    ExecutionType
	chain        *Chain
	routes       []Route
	errors       []string
	stereotype   string
	mediaType    *MediaType
	metadata     Metadata
}

// MethodName is the declared name of the method behind the operation.
func (o *Operation) MethodName() string { return o.method }

// Container is the qualified name of the type declaring the operation.
func (o *Operation) Container() string { return o.container }

func (o *Operation) Shape() Shape { return o.shape }

// IsBlocking reports whether the operation returns its result rather than
// completing a callback.
func (o *Operation) IsBlocking() bool { return o.shape == ShapeBlocking }

// IsScope reports whether the operation wraps a nested chain.
func (o *Operation) IsScope() bool { return o.shape == ShapeScope }

// IsRouter reports whether the operation routes to nested routes.
func (o *Operation) IsRouter() bool { return o.shape == ShapeRouter }

// IsAutoPaging reports whether the operation returns pages through a paging provider.
func (o *Operation) IsAutoPaging() bool { return o.paged }

func (o *Operation) OutputType() decl.Type        { return o.output }
func (o *Operation) AttributesType() decl.Type    { return o.attributes }
func (o *Operation) Connectivity() Connectivity   { return o.connectivity }
func (o *Operation) SupportsStreaming() bool      { return o.streaming }
func (o *Operation) RequiresConfig() bool         { return o.config }
func (o *Operation) ExecutionType() ExecutionType { return o.execution }
func (o *Operation) Chain() *Chain                { return o.chain }
func (o *Operation) Routes() []Route              { return slices.Clone(o.routes) }
func (o *Operation) ErrorProviders() []string     { return slices.Clone(o.errors) }
func (o *Operation) Stereotype() string           { return o.stereotype }
func (o *Operation) MediaType() *MediaType        { return o.mediaType }
func (o *Operation) Metadata() Metadata           { return o.metadata }
func (o *Operation) IsConnected() bool            { return o.connectivity.Connected }
func (o *Operation) IsTransactional() bool        { return o.connectivity.Transactional }
func (o *Operation) ConnectionType() decl.Type    { return o.connectivity.ConnectionType }

// parseOperations parses the operations of a container type.
func (e *Env) parseOperations(container decl.Type, md Metadata) ([]*Operation, error) {
	cs := e.scope(KindOperation, container.Name())
	containerMD, err := cs.metadata(container)
	if err != nil {
		return nil, err
	}
	md = inheritMetadata(containerMD, md)

	methods, err := e.publicMethods(KindOperation, container)
	if err != nil {
		return nil, err
	}
	var out []*Operation
	for _, m := range methods {
		op, err := e.parseOperation(container, m, md)
		if err != nil {
			return nil, err
		}
		out = append(out, op)
	}
	return out, nil
}

// opParams classifies the parameters of an operation method.
type opParams struct {
	all       []decl.Element
	callbacks []decl.Element
	chains    []decl.Element
	routes    []decl.Element
}

func classify(m decl.Method) opParams {
	p := opParams{all: m.Parameters()}
	for _, el := range p.all {
		switch t := el.Type(); {
		case isCompletionCallback(t):
			p.callbacks = append(p.callbacks, el)
		case isChain(t):
			p.chains = append(p.chains, el)
		case isRoute(t):
			p.routes = append(p.routes, el)
		}
	}
	return p
}

// routerCallbacks counts the callbacks a router may complete.
func (p opParams) routerCallbacks() int {
	n := 0
	for _, el := range p.callbacks {
		if is(el.Type(), vocabulary.RouterCallbacks...) {
			n++
		}
	}
	return n
}

func (e *Env) parseOperation(container decl.Type, m decl.Method, md Metadata) (*Operation, error) {
	s := e.scope(KindOperation, m.Name())
	name, err := s.componentName(m, m.Name())
	if err != nil {
		return nil, err
	}
	s.subject.Name = name

	base, err := s.describe(m, m.Doc())
	if err != nil {
		return nil, err
	}
	op := &Operation{info: base, method: m.Name(), container: container.QualifiedName()}

	params := classify(m)
	if op.config, err = s.requiresConfig(params.all); err != nil {
		return nil, err
	}
	if op.connectivity, err = s.connectivity(params.all); err != nil {
		return nil, err
	}

	if op.shape, err = s.operationShape(m, params, op.config, op.connectivity.Connected); err != nil {
		return nil, err
	}

	rt := m.ReturnType()
	if pagedConn, elem, ok := paging(rt); ok {
		if op.shape != ShapeBlocking {
			return nil, shapeError(s.subject, RulePagedNonBlocking)
		}
		op.paged = true
		// a raw PagingProvider is never transactional
		if pagedConn.ConnectionType == nil {
			pagedConn.ConnectionType = op.connectivity.ConnectionType
		}
		op.connectivity = pagedConn
		op.output = elem
		op.streaming = true
	} else {
		op.output, op.attributes = s.operationOutput(rt, params)
		if op.streaming, err = s.streaming(m, op.output); err != nil {
			return nil, err
		}
	}
	if op.output == nil {
		op.output = e.object(rt)
	}

	if op.execution, err = s.execution(m, op.connectivity.Connected); err != nil {
		return nil, err
	}
	if op.metadata, err = s.metadata(m); err != nil {
		return nil, err
	}
	op.metadata = inheritMetadata(op.metadata, md)
	if throws, ok, err := s.tag(m, vocabulary.Throws); err != nil {
		return nil, err
	} else if ok {
		op.errors = throws.Classes(decl.DefaultAttribute)
	}
	if op.stereotype, err = s.stereotype(m); err != nil {
		return nil, err
	}
	if op.mediaType, err = s.mediaType(m); err != nil {
		return nil, err
	}

	advertised, err := s.methodParameters(m)
	if err != nil {
		return nil, err
	}
	if op.groups, err = s.parseGroups(advertised, op.metadata); err != nil {
		return nil, err
	}
	if len(params.chains) == 1 {
		if op.chain, err = s.parseChain(params.chains[0]); err != nil {
			return nil, err
		}
	}
	for _, el := range params.routes {
		r, err := e.parseRoute(s, el, op.metadata)
		if err != nil {
			return nil, err
		}
		op.routes = append(op.routes, r)
	}

	op.minVersion = s.minVersion
	e.logger.Debug("Parsed operation", "operation", op.name, "shape", op.shape, "paged", op.paged)
	return op, nil
}

// operationShape classifies an operation. A chain makes a scope candidate, routes
// or a router callback make a router candidate, and the two are exclusive.
func (s *scope) operationShape(m decl.Method, p opParams, config, connected bool) (Shape, error) {
	nonBlocking := len(p.callbacks) > 0
	hasRouterCallback := false
	for _, el := range p.callbacks {
		if is(el.Type(), vocabulary.RouterCompletionCallback) {
			hasRouterCallback = true
		}
	}
	scope := len(p.chains) > 0
	router := len(p.routes) > 0 || hasRouterCallback

	switch {
	case scope && router:
		return "", shapeError(s.subject, RuleScopeAndRouter)
	case scope:
		if len(p.chains) != 1 {
			return "", shapeErrorf(s.subject, RuleScopeSingleChain, "found %d", len(p.chains))
		}
		if config {
			return "", shapeError(s.subject, RuleScopeConfig)
		}
		if connected {
			return "", shapeError(s.subject, RuleScopeConnection)
		}
		if !nonBlocking {
			return "", shapeError(s.subject, RuleScopeNonBlocking)
		}
		return ShapeScope, nil
	case router:
		if rt := m.ReturnType(); !decl.IsVoid(rt) {
			return "", shapeErrorf(s.subject, RuleRouterVoid, "returns %s", typeName(rt))
		}
		if n := p.routerCallbacks(); n != 1 {
			return "", shapeErrorf(s.subject, RuleRouterCallback, "found %d", n)
		}
		if len(p.routes) == 0 {
			return "", shapeError(s.subject, RuleRouterRoutes)
		}
		return ShapeRouter, nil
	case nonBlocking:
		return ShapeNonBlocking, nil
	}
	return ShapeBlocking, nil
}

// operationOutput derives the output and attributes types from the completion
// callback of a non-blocking operation or from the return type.
func (s *scope) operationOutput(rt decl.Type, p opParams) (output, attributes decl.Type) {
	for _, el := range p.callbacks {
		t := el.Type()
		switch {
		case is(t, vocabulary.CompletionCallback):
			output, _ = typeArg(t, 0)
			attributes, _ = typeArg(t, 1)
			return output, attributes
		case is(t, vocabulary.RouterCompletionCallback):
			return s.platformType(vocabulary.JavaObject, nil), nil
		case is(t, vocabulary.VoidCompletionCallback):
			return s.platformType(vocabulary.JavaVoidBoxed, nil), nil
		}
	}
	return resultTypes(rt)
}

// resultTypes unwraps Result<O, A>.
func resultTypes(rt decl.Type) (output, attributes decl.Type) {
	if res, ok := supertypeOf(rt, vocabulary.Result); ok {
		output, _ = typeArg(res, 0)
		attributes, _ = typeArg(res, 1)
		return output, attributes
	}
	return rt, nil
}

// object returns java.lang.Object, or def when the graph does not know it.
func (e *Env) object(def decl.Type) decl.Type {
	if t, ok := e.graph.Lookup(vocabulary.JavaObject); ok {
		return t
	}
	return def
}

func (s *scope) execution(m decl.Method, connected bool) (ExecutionType, error) {
	t, ok, err := s.tag(m, vocabulary.Execution)
	if err != nil {
		return "", err
	}
	if ok {
		if v := t.EnumOr(decl.DefaultAttribute, ""); v != "" {
			return ExecutionType(v), nil
		}
	}
	if connected {
		return ExecutionBlocking, nil
	}
	return ExecutionCPULite, nil
}

func (s *scope) parseChain(el decl.Element) (*Chain, error) {
	name, err := s.parameterName(el)
	if err != nil {
		return nil, err
	}
	optional, err := s.has(el, vocabulary.Optional)
	if err != nil {
		return nil, err
	}
	return &Chain{Name: name, Required: !optional}, nil
}

// parseRoute parses a route parameter. A collection of routes is unbounded.
func (e *Env) parseRoute(parent *scope, el decl.Element, md Metadata) (Route, error) {
	name, err := parent.parameterName(el)
	if err != nil {
		return Route{}, err
	}
	optional, err := parent.has(el, vocabulary.Optional)
	if err != nil {
		return Route{}, err
	}

	rt := el.Type()
	r := Route{Name: name, Description: el.Doc(), MaxOccurs: 1}
	if elem := collectionElement(rt); elem != nil && !assignableTo(rt, vocabulary.Route) {
		rt = elem
		r.MaxOccurs = 0
	}
	if !optional {
		r.MinOccurs = 1
	}
	if r.Description == "" {
		r.Description = rt.Doc()
	}

	rs := e.scope(KindRoute, name)
	fields, err := rs.fieldParameters(rt)
	if err != nil {
		return Route{}, err
	}
	if r.ParameterGroups, err = rs.parseGroups(fields, md); err != nil {
		return Route{}, err
	}
	parent.require(rs.minVersion)
	return r, nil
}
