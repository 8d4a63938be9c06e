package parser

import (
	"slices"

	"github.com/c360studio/extmodel/decl"
	"github.com/c360studio/extmodel/vocabulary"
)

// CallbackKind names a source callback.
type CallbackKind string

const (
	CallbackOnSuccess      CallbackKind = "ON_SUCCESS"
	CallbackOnError        CallbackKind = "ON_ERROR"
	CallbackOnTerminate    CallbackKind = "ON_TERMINATE"
	CallbackOnBackPressure CallbackKind = "ON_BACK_PRESSURE"
)

var callbackTags = []struct {
	kind CallbackKind
	pair vocabulary.Pair
}{
	{CallbackOnSuccess, vocabulary.OnSuccess},
	{CallbackOnError, vocabulary.OnError},
	{CallbackOnTerminate, vocabulary.OnTerminate},
	{CallbackOnBackPressure, vocabulary.OnBackPressure},
}

// Source is a parsed message source.
type Source struct {
	info

	typ          string
	output       decl.Type
	attributes   decl.Type
	connectivity Connectivity
	streaming    bool
	config       bool
	callbacks    map[CallbackKind]SourceCallback
	cluster      ClusterSupport
	backPressure BackPressure
	emits        bool
	polling      bool
	stereotype   string
	mediaType    *MediaType
	metadata     Metadata
}

// TypeName is the qualified name of the source type.
func (s *Source) TypeName() string { return s.typ }

func (s *Source) OutputType() decl.Type          { return s.output }
func (s *Source) AttributesType() decl.Type      { return s.attributes }
func (s *Source) Connectivity() Connectivity     { return s.connectivity }
func (s *Source) IsConnected() bool              { return s.connectivity.Connected }
func (s *Source) SupportsStreaming() bool        { return s.streaming }
func (s *Source) RequiresConfig() bool           { return s.config }
func (s *Source) ClusterSupport() ClusterSupport { return s.cluster }
func (s *Source) EmitsResponse() bool            { return s.emits }
func (s *Source) IsPolling() bool                { return s.polling }
func (s *Source) Stereotype() string             { return s.stereotype }
func (s *Source) MediaType() *MediaType          { return s.mediaType }
func (s *Source) Metadata() Metadata             { return s.metadata }

// BackPressure returns the back-pressure strategy.
func (s *Source) BackPressure() BackPressure {
	bp := s.backPressure
	bp.Supported = slices.Clone(bp.Supported)
	return bp
}

// Callback returns the callback of a kind, if declared.
func (s *Source) Callback(kind CallbackKind) (SourceCallback, bool) {
	cb, ok := s.callbacks[kind]
	return cb, ok
}

// parseSource parses a source type, which must extend Source<T, A>.
func (e *Env) parseSource(t decl.Type, md Metadata) (*Source, error) {
	s := e.scope(KindSource, t.Name())
	name, err := s.componentName(t, t.Name())
	if err != nil {
		return nil, err
	}
	s.subject.Name = name

	super, ok := supertypeOf(t, vocabulary.Source)
	if !ok {
		return nil, shapeErrorf(s.subject, RuleSourceType, "%s", t.QualifiedName())
	}
	if len(super.TypeArguments()) != 2 {
		return nil, &MissingGenericArgumentError{Subject: s.subject, Type: typeName(super), Want: 2}
	}

	base, err := s.describe(t, t.Doc())
	if err != nil {
		return nil, err
	}
	src := &Source{
		info:       base,
		typ:        t.QualifiedName(),
		output:     super.TypeArguments()[0],
		attributes: super.TypeArguments()[1],
		polling:    assignableTo(t, vocabulary.PollingSource),
		callbacks:  map[CallbackKind]SourceCallback{},
	}

	fields := decl.AllFields(t)
	if src.config, err = s.requiresConfig(fields); err != nil {
		return nil, err
	}
	if src.connectivity, err = s.connectivity(fields); err != nil {
		return nil, err
	}
	if src.streaming, err = s.streaming(t, src.output); err != nil {
		return nil, err
	}
	if src.metadata, err = s.metadata(t); err != nil {
		return nil, err
	}
	src.metadata = inheritMetadata(src.metadata, md)
	if src.emits, err = s.has(t, vocabulary.EmitsResponse); err != nil {
		return nil, err
	}
	if src.cluster, err = s.clusterSupport(t); err != nil {
		return nil, err
	}
	if src.backPressure, err = s.backPressure(t); err != nil {
		return nil, err
	}
	if src.stereotype, err = s.stereotype(t); err != nil {
		return nil, err
	}
	if src.mediaType, err = s.mediaType(t); err != nil {
		return nil, err
	}

	params, err := s.fieldParameters(t)
	if err != nil {
		return nil, err
	}
	if src.groups, err = s.parseGroups(params, src.metadata); err != nil {
		return nil, err
	}
	if err := s.sourceCallbacks(t, src); err != nil {
		return nil, err
	}

	src.minVersion = s.minVersion
	e.logger.Debug("Parsed source", "source", src.name, "polling", src.polling)
	return src, nil
}

// sourceCallbacks parses the callback methods of a source. Each kind may be
// declared once.
func (s *scope) sourceCallbacks(t decl.Type, src *Source) error {
	for _, m := range decl.AllMethods(t) {
		for _, ct := range callbackTags {
			ok, err := s.has(m, ct.pair)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if prev, dup := src.callbacks[ct.kind]; dup {
				return shapeErrorf(s.subject, RuleDuplicateCallback, "%s on %s and %s", ct.kind, prev.Method, m.Name())
			}
			cb, err := s.parseCallback(m, src.metadata)
			if err != nil {
				return err
			}
			src.callbacks[ct.kind] = cb
		}
	}
	return nil
}

func (s *scope) parseCallback(m decl.Method, md Metadata) (SourceCallback, error) {
	params, err := s.methodParameters(m)
	if err != nil {
		return SourceCallback{}, err
	}
	groups, err := s.parseGroups(params, md)
	if err != nil {
		return SourceCallback{}, err
	}
	for _, p := range allParameters(groups) {
		if p.ConfigOverride {
			return SourceCallback{}, shapeErrorf(s.subject, RuleSourceConfigOverride, "%s parameter '%s'", m.Name(), p.Name)
		}
	}
	return SourceCallback{Method: m.Name(), ParameterGroups: groups}, nil
}

func (s *scope) clusterSupport(t decl.Type) (ClusterSupport, error) {
	tag, ok, err := s.tag(t, vocabulary.ClusterSupport)
	if err != nil || !ok {
		return ClusterNotSupported, err
	}
	return ClusterSupport(tag.EnumOr(decl.DefaultAttribute, string(ClusterNotSupported))), nil
}

// backPressure reads the back-pressure strategy. Without a tag a source waits.
func (s *scope) backPressure(t decl.Type) (BackPressure, error) {
	tag, ok, err := s.tag(t, vocabulary.BackPressure)
	if err != nil {
		return BackPressure{}, err
	}
	bp := BackPressure{Default: BackPressureWait, Supported: []BackPressureMode{BackPressureWait}}
	if !ok {
		return bp, nil
	}
	bp.Default = BackPressureMode(tag.EnumOr("defaultMode", string(BackPressureWait)))
	if modes := tag.Enums("supportedModes"); len(modes) > 0 {
		bp.Supported = bp.Supported[:0]
		for _, m := range modes {
			bp.Supported = append(bp.Supported, BackPressureMode(m))
		}
	}
	if !slices.Contains(bp.Supported, bp.Default) {
		return BackPressure{}, shapeErrorf(s.subject, RuleBackPressureDefault, "%s not in %v", bp.Default, bp.Supported)
	}
	return bp, nil
}
