package strategy

import (
	"fmt"
	"sort"

	"github.com/fractory-go/fractory/internal/emit"
	"github.com/fractory-go/fractory/internal/inspect"
	"github.com/fractory-go/fractory/internal/manifest"
)

// SynthesizeDispatch implements Extension. The emitted method resolves models
// whose source is not necessarily present in the current compilation unit, so
// every member invocation goes through the reflective invoker; a packaging
// mismatch between generation time and execution time surfaces there as an
// unrecoverable *adapter.DispatchError.
func (b *base) SynthesizeDispatch(w *emit.Writer, site *inspect.FactorySite, recvName string, records map[string]manifest.Record) {
	b.signatureImports(w)
	w.Import(inspect.AdapterPkgPath)

	byPkg := manifest.Partition(records)
	pkgs := make([]string, 0, len(byPkg))
	for pkg := range byPkg {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	w.Line("func (d %s) %s(t reflect.Type, %s %s, qualifiers ...string) any {", recvName, b.methodName, b.ctxName, b.ctxType)
	w.In()
	w.Line("if len(qualifiers) != 0 {")
	w.In()
	w.Line("return nil")
	w.Out()
	w.Line("}")
	// Predeclared and unnamed types carry no package path.
	w.Line("if t.PkgPath() == \"\" {")
	w.In()
	w.Line("return nil")
	w.Out()
	w.Line("}")
	w.Line("if !reflect.PointerTo(t).Implements(reflect.TypeOf((*adapter.Model)(nil)).Elem()) {")
	w.In()
	w.Line("return nil")
	w.Out()
	w.Line("}")

	if len(pkgs) > 0 {
		w.Line("switch t.PkgPath() {")
		for i, pkg := range pkgs {
			w.Line("case %q:", pkg)
			w.In()
			w.Line("return d.%s(t, %s)", b.helperName(i), b.ctxName)
			w.Out()
		}
		w.Line("}")
	}
	w.Line("return nil")
	w.Out()
	w.Line("}")
	w.Line("")

	for i, pkg := range pkgs {
		b.dispatchHelper(w, recvName, i, pkg, byPkg[pkg])
	}
}

func (b *base) helperName(i int) string {
	return fmt.Sprintf("%s%d", b.helper, i)
}

// dispatchHelper emits the per-package helper switching on simple name after
// stripping the generated-type prefix.
func (b *base) dispatchHelper(w *emit.Writer, recvName string, i int, pkg string, records map[string]manifest.Record) {
	w.Import("strings")

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	w.Line("// %s", pkg)
	w.Line("func (%s) %s(t reflect.Type, %s %s) any {", recvName, b.helperName(i), b.ctxName, b.ctxType)
	w.In()
	// Instantiated generics carry type arguments in Name; records are keyed
	// by the erased name.
	w.Line("name := t.Name()")
	w.Line("if i := strings.Index(name, \"[\"); i >= 0 {")
	w.In()
	w.Line("name = name[:i]")
	w.Out()
	w.Line("}")
	w.Line("switch strings.TrimPrefix(name, %q) {", GeneratedPrefix)
	for _, name := range names {
		rec := records[name]
		w.Line("case %q:", name)
		w.In()
		switch {
		case rec.IsFactory:
			w.Line("if f, ok := adapter.FromFactory(t, %q).(%s); ok && f != nil {", rec.MethodName, b.factoryRef)
			w.In()
			w.Line("return f.%s(t, %s)", b.methodName, b.ctxName)
			w.Out()
			w.Line("}")
			w.Line("return nil")
		case rec.ArgCount == 0:
			w.Line("return adapter.Invoke(t, %q, 0, nil)", rec.MethodName)
		default:
			w.Line("return adapter.Invoke(t, %q, %d, %s)", rec.MethodName, rec.ArgCount, b.ctxName)
		}
		w.Out()
	}
	w.Line("}")
	w.Line("return nil")
	w.Out()
	w.Line("}")
	w.Line("")
}
