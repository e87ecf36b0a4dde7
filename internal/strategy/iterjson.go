package strategy

import "github.com/fractory-go/fractory/internal/inspect"

// iterJSON is the json-iterator extension strategy. Its generated methods
// take the jsoniter.API the caller serializes with as the shared context.
type iterJSON struct {
	base
}

func newIterJSON() Extension {
	return &iterJSON{base{
		id:         inspect.StrategyIterJSON,
		methodName: "CreateIterAdapter",
		helper:     "dispatchIter",
		ctxName:    "api",
		ctxType:    "jsoniter.API",
		factoryRef: "iterjson.Factory",
		runtimePkg: inspect.IterJSONPkgPath,
		ctxImports: []imp{{alias: "jsoniter", path: inspect.JSONIterPkgPath}},
	}}
}
