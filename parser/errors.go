package parser

import (
	"errors"
	"fmt"
)

// ErrNoExtension is returned when a graph holds no type tagged as an extension.
var ErrNoExtension = errors.New("no extension declared")

// ComponentKind names the kind of component a diagnostic refers to.
type ComponentKind string

const (
	KindExtension          ComponentKind = "extension"
	KindConfiguration      ComponentKind = "configuration"
	KindOperation          ComponentKind = "operation"
	KindSource             ComponentKind = "source"
	KindConnectionProvider ComponentKind = "connection provider"
	KindFunction           ComponentKind = "function"
	KindParameterGroup     ComponentKind = "parameter group"
	KindRoute              ComponentKind = "route"
)

// Subject identifies the component a diagnostic is about.
type Subject struct {
	Kind ComponentKind
	Name string
}

func (s Subject) String() string {
	return fmt.Sprintf("%s '%s'", s.Kind, s.Name)
}

// Shape rules reported by IllegalComponentShapeError.
const (
	RuleScopeAndRouter       = "scope and router are mutually exclusive"
	RuleScopeSingleChain     = "scope must declare exactly one chain"
	RuleScopeConfig          = "scope must not require config"
	RuleScopeConnection      = "scope must not require a connection"
	RuleScopeNonBlocking     = "scope must be non-blocking"
	RuleRouterVoid           = "router not declared void"
	RuleRouterCallback       = "router must declare exactly one router completion callback"
	RuleRouterRoutes         = "router must declare at least one route"
	RulePagedNonBlocking     = "paged operation must be blocking"
	RuleExtensionName        = "extension name required"
	RuleSourceType           = "source must extend Source"
	RuleProviderType         = "connection provider must implement ConnectionProvider"
	RuleDuplicateCallback    = "source callback declared more than once"
	RuleDuplicateName        = "component name declared more than once"
	RuleBackPressureDefault  = "back-pressure default mode must be a supported mode"
	RuleFunctionConnection   = "function must not require a connection"
	RuleSourceConfigOverride = "source callback parameter cannot override config"
	RuleMinVersion           = "minimum runtime version must be a dotted version"
)

// ConflictingDeclarationError reports both tag vocabularies used for one concept.
type ConflictingDeclarationError struct {
	Subject Subject
	Concept string
	Legacy  string
	Current string
}

func (e *ConflictingDeclarationError) Error() string {
	return fmt.Sprintf("%s uses both %s and %s to declare %s; only one vocabulary is allowed",
		e.Subject, e.Legacy, e.Current, e.Concept)
}

// IllegalParameterDefinitionError reports a contradictory parameter or group.
type IllegalParameterDefinitionError struct {
	Subject   Subject
	Parameter string
	Tag       string
	Reason    string
}

func (e *IllegalParameterDefinitionError) Error() string {
	if e.Tag == "" {
		return fmt.Sprintf("%s: parameter '%s' %s", e.Subject, e.Parameter, e.Reason)
	}
	return fmt.Sprintf("%s: parameter '%s' tagged %s %s", e.Subject, e.Parameter, e.Tag, e.Reason)
}

// AmbiguousConnectivityError reports more than one connection parameter.
type AmbiguousConnectivityError struct {
	Subject Subject
	Count   int
}

func (e *AmbiguousConnectivityError) Error() string {
	return fmt.Sprintf("%s declares %d connection parameters; at most one is allowed", e.Subject, e.Count)
}

// IllegalComponentShapeError reports a violated structural rule.
type IllegalComponentShapeError struct {
	Subject Subject
	Rule    string
	Detail  string
}

func (e *IllegalComponentShapeError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s is invalid: %s", e.Subject, e.Rule)
	}
	return fmt.Sprintf("%s is invalid: %s (%s)", e.Subject, e.Rule, e.Detail)
}

// SelfReferentialDeclarationError reports a component container that is, or is
// related by inheritance to, the type it is declared from.
type SelfReferentialDeclarationError struct {
	Subject   Subject
	Container string
	Root      string
}

func (e *SelfReferentialDeclarationError) Error() string {
	return fmt.Sprintf("%s is declared by %s, which is the same as or related by inheritance to %s",
		e.Subject, e.Container, e.Root)
}

// MissingGenericArgumentError reports a generic type used without its required
// type arguments.
type MissingGenericArgumentError struct {
	Subject   Subject
	Parameter string
	Type      string
	Want      int
	Err       error
}

func (e *MissingGenericArgumentError) Error() string {
	target := e.Subject.String()
	if e.Parameter != "" {
		target = fmt.Sprintf("%s parameter '%s'", e.Subject, e.Parameter)
	}
	return fmt.Sprintf("%s uses %s without its %d required type argument(s)", target, e.Type, e.Want)
}

func (e *MissingGenericArgumentError) Unwrap() error { return e.Err }

// Diagnostic kinds returned by DiagnosticKind.
const (
	DiagnosticConflictingDeclaration = "conflicting_declaration"
	DiagnosticIllegalParameter       = "illegal_parameter_definition"
	DiagnosticAmbiguousConnectivity  = "ambiguous_connectivity"
	DiagnosticIllegalShape           = "illegal_component_shape"
	DiagnosticSelfReferential        = "self_referential_declaration"
	DiagnosticMissingGenericArgument = "missing_generic_argument"
)

// DiagnosticKind names the diagnostic in err's chain, or returns "" when err is
// not a model diagnostic.
func DiagnosticKind(err error) string {
	var (
		conflict  *ConflictingDeclarationError
		param     *IllegalParameterDefinitionError
		ambiguous *AmbiguousConnectivityError
		shape     *IllegalComponentShapeError
		self      *SelfReferentialDeclarationError
		generic   *MissingGenericArgumentError
	)
	switch {
	case errors.As(err, &conflict):
		return DiagnosticConflictingDeclaration
	case errors.As(err, &param):
		return DiagnosticIllegalParameter
	case errors.As(err, &ambiguous):
		return DiagnosticAmbiguousConnectivity
	case errors.As(err, &shape):
		return DiagnosticIllegalShape
	case errors.As(err, &self):
		return DiagnosticSelfReferential
	case errors.As(err, &generic):
		return DiagnosticMissingGenericArgument
	}
	return ""
}

// IsDiagnostic reports whether err (or any error in its chain) is a model
// diagnostic rather than an I/O or lookup failure.
func IsDiagnostic(err error) bool { return DiagnosticKind(err) != "" }

func shapeError(s Subject, rule string) error {
	return &IllegalComponentShapeError{Subject: s, Rule: rule}
}

func shapeErrorf(s Subject, rule, format string, a ...any) error {
	return &IllegalComponentShapeError{Subject: s, Rule: rule, Detail: fmt.Sprintf(format, a...)}
}

func paramError(s Subject, param, tag, reason string) error {
	return &IllegalParameterDefinitionError{Subject: s, Parameter: param, Tag: tag, Reason: reason}
}
