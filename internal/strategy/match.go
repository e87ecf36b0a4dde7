package strategy

import (
	"github.com/fractory-go/fractory/internal/diag"
	"github.com/fractory-go/fractory/internal/inspect"
)

// chosen is the matcher's verdict for one model under one strategy.
type chosen struct {
	// member is the selected adapter member; nil when the model implements
	// the factory interface directly.
	member *inspect.Member
	// direct marks provider dispatch through the model type itself.
	direct bool
}

// selectMember applies the capability rules to one model. Selection uses
// only static signatures: no user code runs at generation time. Members are
// examined in name order (the declaration enumeration order of the host is
// not deterministic, so the inspector sorts them); a provider-indirection
// member beats adapter-returning members, and among several candidates of
// one kind the first in name order wins: exactly one path per model.
//
// A nil rep suppresses near-miss warnings; synthesis re-runs selection after
// the processor already reported them once.
func (b *base) selectMember(m *inspect.ModelDecl, rep *diag.Reporter) *chosen {
	var factory *inspect.Member
	var direct *inspect.Member
	for i := range m.Members {
		mem := &m.Members[i]
		if mem.StrategyID != b.id {
			continue
		}
		switch {
		case mem.PointerRecv:
			if rep != nil {
				rep.Warningf("discover", diag.WarnNearMissReceiver, mem.Pos,
					"%s.%s must use a value receiver; member ignored", m.Name, mem.Name)
			}
		case mem.Kind == inspect.KindAdapterOther:
			if rep != nil {
				rep.Warningf("discover", diag.WarnNearMissReturn, mem.Pos,
					"%s.%s returns an adapter for a different model; member ignored", m.Name, mem.Name)
			}
		case !mem.CtxOK:
			if rep != nil {
				rep.Warningf("discover", diag.WarnNearMissArity, mem.Pos,
					"%s.%s must take no arguments or a single %s; member ignored", m.Name, mem.Name, b.ctxType)
			}
		case mem.Kind == inspect.KindFactory:
			if mem.Arity != 0 {
				if rep != nil {
					rep.Warningf("discover", diag.WarnNearMissArity, mem.Pos,
						"%s.%s: factory members take no arguments; member ignored", m.Name, mem.Name)
				}
				continue
			}
			if factory == nil {
				factory = mem
			}
		default:
			if direct == nil {
				direct = mem
			}
		}
	}

	if factory != nil {
		return &chosen{member: factory}
	}
	if direct != nil {
		return &chosen{member: direct}
	}
	if m.Implements[b.id] {
		return &chosen{direct: true}
	}
	return nil
}

// IsApplicable implements Extension.
func (b *base) IsApplicable(m *inspect.ModelDecl, rep *diag.Reporter) bool {
	return b.selectMember(m, rep) != nil
}
