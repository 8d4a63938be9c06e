package decl

import "github.com/c360studio/extmodel/vocabulary"

// platformCatalog declares the JDK and extension API types that extension sources
// reference but never declare themselves. It is shared, read-only, by every graph.
var platformCatalog = buildPlatformCatalog()

func buildPlatformCatalog() map[string]*Declaration {
	c := map[string]*Declaration{}
	add := func(d *Declaration) *Declaration {
		c[d.QualifiedName] = d
		return d
	}
	class := func(name string, supers ...Ref) *Declaration {
		return add(&Declaration{QualifiedName: name, Kind: KindClass, Supers: supers})
	}
	iface := func(name string, params []string, supers ...Ref) *Declaration {
		return add(&Declaration{QualifiedName: name, Kind: KindInterface, Abstract: true, TypeParams: params, Supers: supers})
	}
	enum := func(name string, constants ...string) *Declaration {
		return add(&Declaration{QualifiedName: name, Kind: KindEnum, Constants: constants})
	}

	class(vocabulary.JavaObject)
	class(vocabulary.JavaString)
	class(vocabulary.JavaVoidBoxed)
	number := class("java.lang.Number").AsAbstract()
	for _, boxed := range []string{"Integer", "Long", "Double", "Float", "Short", "Byte"} {
		class("java.lang."+boxed, R(number.QualifiedName))
	}
	class("java.lang.Boolean")
	class("java.lang.Character")
	class("java.math.BigDecimal", R(number.QualifiedName))
	class("java.math.BigInteger", R(number.QualifiedName))
	class("java.util.Date")
	class("java.util.Calendar").AsAbstract()
	for _, t := range []string{"LocalDate", "LocalDateTime", "LocalTime", "ZonedDateTime", "Instant"} {
		class("java.time." + t)
	}

	class(vocabulary.JavaInputStream).AsAbstract()
	for _, s := range []string{"FileInputStream", "ByteArrayInputStream", "BufferedInputStream"} {
		class("java.io."+s, R(vocabulary.JavaInputStream))
	}

	iface(vocabulary.JavaCollection, []string{"E"})
	iface(vocabulary.JavaList, []string{"E"}, R(vocabulary.JavaCollection, V("E")))
	iface("java.util.Set", []string{"E"}, R(vocabulary.JavaCollection, V("E")))
	class("java.util.ArrayList", R(vocabulary.JavaList, V("E"))).Generic("E")
	class("java.util.LinkedList", R(vocabulary.JavaList, V("E"))).Generic("E")
	class("java.util.HashSet", R("java.util.Set", V("E"))).Generic("E")
	iface(vocabulary.JavaMap, []string{"K", "V"})
	class("java.util.HashMap", R(vocabulary.JavaMap, V("K"), V("V"))).Generic("K", "V")
	class("java.util.LinkedHashMap", R("java.util.HashMap", V("K"), V("V"))).Generic("K", "V")

	both := func(p vocabulary.TypePair, build func(name string) *Declaration) {
		for _, n := range p.Names() {
			build(n)
		}
	}
	// family-aligned supertypes: a current PoolingConnectionProvider extends the
	// current ConnectionProvider, a legacy one the legacy ConnectionProvider.
	aligned := func(p, super vocabulary.TypePair, params ...string) {
		for _, n := range p.Names() {
			superName := super.Current
			if n == p.Legacy && super.Legacy != "" {
				superName = super.Legacy
			}
			args := make([]Ref, len(params))
			for i, tp := range params {
				args[i] = V(tp)
			}
			iface(n, params, R(superName, args...))
		}
	}

	both(vocabulary.ConnectionProvider, func(n string) *Declaration { return iface(n, []string{"C"}) })
	aligned(vocabulary.PoolingConnectionProvider, vocabulary.ConnectionProvider, "C")
	aligned(vocabulary.CachedConnectionProvider, vocabulary.ConnectionProvider, "C")
	both(vocabulary.TransactionalConnection, func(n string) *Declaration { return iface(n, nil) })
	both(vocabulary.NoConnectivityTest, func(n string) *Declaration { return iface(n, nil) })

	both(vocabulary.Source, func(n string) *Declaration {
		return class(n).Generic("T", "A").AsAbstract()
	})
	for _, n := range vocabulary.PollingSource.Names() {
		super := vocabulary.Source.Current
		if n == vocabulary.PollingSource.Legacy {
			super = vocabulary.Source.Legacy
		}
		class(n, R(super, V("T"), V("A"))).Generic("T", "A").AsAbstract()
	}

	both(vocabulary.PagingProvider, func(n string) *Declaration { return iface(n, []string{"C", "T"}) })
	both(vocabulary.Result, func(n string) *Declaration { return class(n).Generic("T", "A") })
	both(vocabulary.CompletionCallback, func(n string) *Declaration { return iface(n, []string{"T", "A"}) })
	both(vocabulary.RouterCompletionCallback, func(n string) *Declaration { return iface(n, nil) })
	both(vocabulary.VoidCompletionCallback, func(n string) *Declaration { return iface(n, nil) })
	both(vocabulary.Chain, func(n string) *Declaration { return iface(n, nil) })
	both(vocabulary.Route, func(n string) *Declaration { return class(n).AsAbstract() })

	both(vocabulary.ParameterResolver, func(n string) *Declaration { return iface(n, []string{"T"}) })
	both(vocabulary.Literal, func(n string) *Declaration { return iface(n, []string{"T"}) })
	both(vocabulary.TypedValue, func(n string) *Declaration { return class(n).Generic("T") })

	for _, p := range []vocabulary.TypePair{
		vocabulary.StreamingHelper, vocabulary.SourceCallbackContext, vocabulary.SourceCompletionCallback,
		vocabulary.ExtensionsClient, vocabulary.ComponentLocation, vocabulary.CorrelationInfo,
		vocabulary.TlsContextFactory, vocabulary.SchedulingStrategy,
	} {
		both(p, func(n string) *Declaration { return iface(n, nil) })
	}
	for _, p := range []vocabulary.TypePair{vocabulary.OperationTransactionalAction, vocabulary.SourceTransactionalAction} {
		both(p, func(n string) *Declaration {
			return enum(n, "ALWAYS_BEGIN", "ALWAYS_JOIN", "JOIN_IF_POSSIBLE", "NOT_SUPPORTED")
		})
	}
	both(vocabulary.TransactionType, func(n string) *Declaration { return enum(n, "LOCAL", "XA") })

	return c
}

// IsPlatform reports whether name is one of the built-in platform declarations.
func IsPlatform(name string) bool {
	_, ok := platformCatalog[name]
	return ok
}
