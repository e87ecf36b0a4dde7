package strategy

import (
	"github.com/fractory-go/fractory/internal/emit"
	"github.com/fractory-go/fractory/internal/inspect"
	"github.com/fractory-go/fractory/internal/manifest"
)

// SynthesizeModule implements Extension. Models arrive pre-sorted by
// fully-qualified name; among several provider-yielding models the first in
// that order wins at run time, since provider branches short-circuit.
func (b *base) SynthesizeModule(w *emit.Writer, site *inspect.FactorySite, recvName string, models []*inspect.ModelDecl) map[string]manifest.Record {
	records := make(map[string]manifest.Record)
	b.signatureImports(w)
	q := newQualifier(w, site)

	w.Line("func (%s) %s(t reflect.Type, %s %s, qualifiers ...string) any {", recvName, b.methodName, b.ctxName, b.ctxType)
	w.In()

	// Qualified adapter requests are out of scope for this generator.
	w.Line("if len(qualifiers) != 0 {")
	w.In()
	w.Line("return nil")
	w.Out()
	w.Line("}")

	for _, m := range models {
		c := b.selectMember(m, nil)
		if c == nil {
			continue
		}
		switch {
		case m.Generic:
			b.genericBranch(w, m, c)
		case c.direct:
			ref := q.ref(m)
			w.Line("if a := (%s{}).%s(t, %s); a != nil {", ref, b.methodName, b.ctxName)
			w.In()
			w.Line("return a")
			w.Out()
			w.Line("}")
		case c.member.Kind == inspect.KindFactory:
			ref := q.ref(m)
			w.Line("if f := (%s{}).%s(); f != nil {", ref, c.member.Name)
			w.In()
			w.Line("if a := f.%s(t, %s); a != nil {", b.methodName, b.ctxName)
			w.In()
			w.Line("return a")
			w.Out()
			w.Line("}")
			w.Out()
			w.Line("}")
		default:
			ref := q.ref(m)
			w.Line("if t == reflect.TypeOf(%s{}) {", ref)
			w.In()
			if c.member.Arity == 0 {
				w.Line("return (%s{}).%s()", ref, c.member.Name)
			} else {
				w.Line("return (%s{}).%s(%s)", ref, c.member.Name, b.ctxName)
			}
			w.Out()
			w.Line("}")
		}
		records[m.FQN()] = b.record(c)
	}

	w.Line("return nil")
	w.Out()
	w.Line("}")
	w.Line("")
	return records
}

// genericBranch matches a generic model by its erased name prefix and
// resolves the member reflectively: compile-time type information alone
// cannot disambiguate instantiations seen at the call site.
func (b *base) genericBranch(w *emit.Writer, m *inspect.ModelDecl, c *chosen) {
	w.Import("strings")
	w.Import(inspect.AdapterPkgPath)

	w.Line("if t.PkgPath() == %q && strings.HasPrefix(t.Name(), %q) {", m.PkgPath, m.Name+"[")
	w.In()
	switch {
	case c.direct:
		w.Line("if f, ok := adapter.FromFactory(t, \"\").(%s); ok && f != nil {", b.factoryRef)
		w.In()
		w.Line("return f.%s(t, %s)", b.methodName, b.ctxName)
		w.Out()
		w.Line("}")
		w.Line("return nil")
	case c.member.Kind == inspect.KindFactory:
		w.Line("if f, ok := adapter.FromFactory(t, %q).(%s); ok && f != nil {", c.member.Name, b.factoryRef)
		w.In()
		w.Line("return f.%s(t, %s)", b.methodName, b.ctxName)
		w.Out()
		w.Line("}")
		w.Line("return nil")
	case c.member.Arity == 0:
		w.Line("return adapter.Invoke(t, %q, 0, nil)", c.member.Name)
	default:
		w.Line("return adapter.Invoke(t, %q, 1, %s)", c.member.Name, b.ctxName)
	}
	w.Out()
	w.Line("}")
}

// record builds the cross-module record for one selected member.
func (b *base) record(c *chosen) manifest.Record {
	if c.direct {
		return manifest.Record{MethodName: "", ArgCount: 0, IsFactory: true}
	}
	if c.member.Kind == inspect.KindFactory {
		return manifest.Record{MethodName: c.member.Name, ArgCount: 0, IsFactory: true}
	}
	return manifest.Record{MethodName: c.member.Name, ArgCount: c.member.Arity, IsFactory: false}
}
