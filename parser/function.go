package parser

import (
	"github.com/c360studio/extmodel/decl"
)

// Function is a parsed expression function.
type Function struct {
	info

	method    string
	container string
	output    decl.Type
}

func (f *Function) MethodName() string    { return f.method }
func (f *Function) Container() string     { return f.container }
func (f *Function) OutputType() decl.Type { return f.output }

func (e *Env) parseFunctions(container decl.Type) ([]*Function, error) {
	methods, err := e.publicMethods(KindFunction, container)
	if err != nil {
		return nil, err
	}
	var out []*Function
	for _, m := range methods {
		f, err := e.parseFunction(container, m)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// parseFunction parses a function method. Functions run without a connection.
func (e *Env) parseFunction(container decl.Type, m decl.Method) (*Function, error) {
	s := e.scope(KindFunction, m.Name())
	name, err := s.componentName(m, m.Name())
	if err != nil {
		return nil, err
	}
	s.subject.Name = name

	conns, err := s.connectionElements(m.Parameters())
	if err != nil {
		return nil, err
	}
	if len(conns) > 0 {
		return nil, shapeErrorf(s.subject, RuleFunctionConnection, "parameter '%s'", conns[0].Name())
	}

	base, err := s.describe(m, m.Doc())
	if err != nil {
		return nil, err
	}
	f := &Function{info: base, method: m.Name(), container: container.QualifiedName(), output: m.ReturnType()}

	params, err := s.methodParameters(m)
	if err != nil {
		return nil, err
	}
	if f.groups, err = s.parseGroups(params, Metadata{}); err != nil {
		return nil, err
	}

	f.minVersion = s.minVersion
	e.logger.Debug("Parsed function", "function", f.name)
	return f, nil
}
