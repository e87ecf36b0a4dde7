package inspect

import "strings"

// binding is the classification table entry for one strategy: the
// fully-qualified names of its adapter and factory types and the type of its
// shared serialization context.
type binding struct {
	id          string
	adapterType string
	factoryType string
	ctxType     string
}

// bindings is the closed, compile-time-fixed strategy set.
var bindings = []binding{
	{
		id:          StrategyStdJSON,
		adapterType: StdJSONPkgPath + ".Adapter",
		factoryType: StdJSONPkgPath + ".Factory",
		ctxType:     "*" + StdJSONPkgPath + ".Codec",
	},
	{
		id:          StrategyIterJSON,
		adapterType: IterJSONPkgPath + ".Adapter",
		factoryType: IterJSONPkgPath + ".Factory",
		ctxType:     JSONIterPkgPath + ".API",
	},
}

func bindingByID(id string) (binding, bool) {
	for _, b := range bindings {
		if b.id == id {
			return b, true
		}
	}
	return binding{}, false
}

// classifyReturn classifies a candidate member's single result type, as
// rendered by types.TypeString with full package paths, against the strategy
// bindings. modelFQN is the declaring model's fully-qualified name without
// type arguments.
func classifyReturn(ret, modelFQN string) (strategyID string, kind Kind) {
	for _, b := range bindings {
		if ret == b.factoryType {
			return b.id, KindFactory
		}
		prefix := b.adapterType + "["
		if strings.HasPrefix(ret, prefix) && strings.HasSuffix(ret, "]") {
			arg := ret[len(prefix) : len(ret)-1]
			switch {
			case arg == "any" || arg == "interface{}":
				return b.id, KindAdapterRaw
			case arg == modelFQN:
				return b.id, KindAdapterExact
			case strings.HasPrefix(arg, modelFQN+"["):
				return b.id, KindAdapterGeneric
			default:
				return b.id, KindAdapterOther
			}
		}
	}
	return "", KindNone
}

// ctxOK reports whether a member's parameter list is legal for the strategy.
func ctxOK(b binding, arity int, param string) bool {
	switch arity {
	case 0:
		return true
	case 1:
		return param == b.ctxType
	default:
		return false
	}
}
