// Package strategy implements the two serialization-extension strategies.
// The set is closed and compile-time fixed: there is no plugin loading, only
// two implementations behind one shared interface.
package strategy

import (
	"fmt"

	"github.com/fractory-go/fractory/internal/diag"
	"github.com/fractory-go/fractory/internal/emit"
	"github.com/fractory-go/fractory/internal/inspect"
	"github.com/fractory-go/fractory/internal/manifest"
)

// GeneratedPrefix is the naming convention for generated value types. The
// aggregated dispatcher strips it from incoming runtime type names before
// record lookup, so a generated subtype resolves through its base model's
// record.
const GeneratedPrefix = "Gen"

// Extension is the capability set of one strategy.
type Extension interface {
	// ID is the stable strategy identifier used as the extras key in
	// persisted manifests.
	ID() string

	// IsApplicable reports whether the model declares a usable adapter
	// member for this strategy, reporting near-miss warnings through rep.
	IsApplicable(m *inspect.ModelDecl, rep *diag.Reporter) bool

	// IsTypeSupported reports whether the factory declaration embeds this
	// strategy's factory interface.
	IsTypeSupported(site *inspect.FactorySite) bool

	// SynthesizeModule writes this strategy's factory method for the
	// generated type recvName onto w and returns the records describing
	// what the method handles, keyed by model fully-qualified name.
	SynthesizeModule(w *emit.Writer, site *inspect.FactorySite, recvName string, models []*inspect.ModelDecl) map[string]manifest.Record

	// SynthesizeDispatch writes the aggregated dispatch method resolving
	// records merged across modules.
	SynthesizeDispatch(w *emit.Writer, site *inspect.FactorySite, recvName string, records map[string]manifest.Record)
}

// Registry returns the strategy set, in stable order.
func Registry() []Extension {
	return []Extension{newStdJSON(), newIterJSON()}
}

// base carries everything the two strategies share; the variants differ only
// in the binding they generate against.
type base struct {
	id         string
	methodName string // factory method on generated types
	helper     string // per-package dispatch helper name prefix
	ctxName    string // context parameter name in generated signatures
	ctxType    string // context parameter type, source form
	factoryRef string // factory interface, source form
	runtimePkg string // import path of the strategy runtime package
	ctxImports []imp  // extra imports the context type needs
}

type imp struct {
	alias string
	path  string
}

func (b *base) ID() string { return b.id }

func (b *base) IsTypeSupported(site *inspect.FactorySite) bool {
	return site.IsInterface && site.Supported[b.id]
}

// signatureImports registers the imports every generated method of this
// strategy needs.
func (b *base) signatureImports(w *emit.Writer) {
	w.Import("reflect")
	w.Import(b.runtimePkg)
	for _, i := range b.ctxImports {
		w.ImportAs(i.alias, i.path)
	}
}

// qualifier assigns import aliases for model packages referenced from a
// generated file, one alias per package path.
type qualifier struct {
	sitePkg string
	w       *emit.Writer
	aliases map[string]string
	used    map[string]bool
}

func newQualifier(w *emit.Writer, site *inspect.FactorySite) *qualifier {
	return &qualifier{
		sitePkg: site.PkgPath,
		w:       w,
		aliases: make(map[string]string),
		used:    make(map[string]bool),
	}
}

// ref returns the source reference for a model type from the generated file,
// importing its package when it is not the file's own.
func (q *qualifier) ref(m *inspect.ModelDecl) string {
	if m.PkgPath == q.sitePkg {
		return m.Name
	}
	alias, ok := q.aliases[m.PkgPath]
	if !ok {
		alias = m.PkgName
		for n := 2; q.used[alias]; n++ {
			alias = fmt.Sprintf("%s%d", m.PkgName, n)
		}
		q.used[alias] = true
		q.aliases[m.PkgPath] = alias
		q.w.ImportAs(alias, m.PkgPath)
	}
	return alias + "." + m.Name
}
