// Package inspect is the declaration-inspection boundary. It loads packages,
// discovers annotated model and factory declarations, and renders everything
// the later phases need into plain extracted values; nothing downstream
// touches go/types.
package inspect

import (
	"github.com/fractory-go/fractory/internal/diag"
)

// Strategy identifiers for the two supported serialization extensions.
const (
	StrategyStdJSON  = "stdjson"
	StrategyIterJSON = "iterjson"
)

// Package paths of the runtime support packages, shared by member
// classification here and code synthesis in the strategy package.
const (
	AdapterPkgPath  = "github.com/fractory-go/fractory/pkg/adapter"
	StdJSONPkgPath  = AdapterPkgPath + "/stdjson"
	IterJSONPkgPath = AdapterPkgPath + "/iterjson"
	JSONIterPkgPath = "github.com/json-iterator/go"
)

// Kind classifies the return shape of a candidate adapter member.
type Kind int

const (
	KindNone Kind = iota
	// KindAdapterExact: returns Adapter[Model] for the declaring model.
	KindAdapterExact
	// KindAdapterRaw: returns the erased Adapter[any].
	KindAdapterRaw
	// KindAdapterGeneric: returns Adapter[Model[...]] on a generic model.
	KindAdapterGeneric
	// KindAdapterOther: returns Adapter[SomethingElse], a near miss that
	// earns a warning and never an adapter.
	KindAdapterOther
	// KindFactory: returns the strategy's Factory, a provider indirection.
	KindFactory
)

func (k Kind) String() string {
	switch k {
	case KindAdapterExact:
		return "adapter"
	case KindAdapterRaw:
		return "raw adapter"
	case KindAdapterGeneric:
		return "generic adapter"
	case KindAdapterOther:
		return "foreign adapter"
	case KindFactory:
		return "factory"
	default:
		return "none"
	}
}

// Member is one exported method discovered on a model declaration whose
// return type belongs to a strategy binding.
type Member struct {
	Name       string
	Arity      int
	StrategyID string
	Kind       Kind
	// CtxOK holds when the parameter list is legal for the strategy: zero
	// parameters, or exactly one of the strategy's context type.
	CtxOK bool
	// PointerRecv marks a pointer-receiver declaration. Generated code calls
	// members on value literals, so these are near misses, never matches.
	PointerRecv bool
	Pos         diag.Pos
}

// ModelDecl is a type discovered as eligible for adapter generation.
// Immutable once discovered; it lives only within one round.
type ModelDecl struct {
	PkgPath string
	PkgName string
	Name    string
	// Generic reports whether the model declares type parameters.
	Generic bool
	Members []Member
	// Implements records, per strategy, whether the model value type itself
	// implements that strategy's factory interface directly. Pointer-only
	// implementations do not count: generated code consults value literals.
	Implements map[string]bool
	// HasMarker reports whether the type carries the adapter.Model marker
	// method. Unmarked models are rejected by aggregated dispatchers.
	HasMarker bool
	Pos       diag.Pos
}

// FQN returns the model's fully-qualified name, without type arguments.
func (m *ModelDecl) FQN() string {
	return m.PkgPath + "." + m.Name
}

// SiteKind distinguishes per-module factory declarations from cross-module
// consolidation points.
type SiteKind int

const (
	SiteFactory SiteKind = iota
	SiteDispatcher
)

// FactorySite is one annotated factory or consolidation-point declaration.
type FactorySite struct {
	Kind    SiteKind
	PkgPath string
	PkgName string
	Name    string
	// Dir is the package directory the generated source lands in.
	Dir string
	// IsInterface is the abstractness check: generation is only legal for
	// interface declarations.
	IsInterface bool
	// Supported records, per strategy, whether the declaration embeds that
	// strategy's factory interface.
	Supported map[string]bool
	Pos       diag.Pos
}

// FQN returns the declaration's fully-qualified name.
func (f *FactorySite) FQN() string {
	return f.PkgPath + "." + f.Name
}

// Result holds everything one discovery pass found, in deterministic order:
// models and sites both sorted lexicographically by fully-qualified name.
type Result struct {
	Models []*ModelDecl
	Sites  []*FactorySite
}

// Factories returns the per-module factory declarations.
func (r *Result) Factories() []*FactorySite {
	return r.sites(SiteFactory)
}

// Dispatchers returns the consolidation-point declarations.
func (r *Result) Dispatchers() []*FactorySite {
	return r.sites(SiteDispatcher)
}

func (r *Result) sites(kind SiteKind) []*FactorySite {
	var out []*FactorySite
	for _, s := range r.Sites {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
