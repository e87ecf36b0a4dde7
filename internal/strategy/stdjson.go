package strategy

import "github.com/fractory-go/fractory/internal/inspect"

// stdJSON is the encoding/json extension strategy. Its generated methods
// take the shared *stdjson.Codec serialization context.
type stdJSON struct {
	base
}

func newStdJSON() Extension {
	return &stdJSON{base{
		id:         inspect.StrategyStdJSON,
		methodName: "CreateJSONAdapter",
		helper:     "dispatchJSON",
		ctxName:    "codec",
		ctxType:    "*stdjson.Codec",
		factoryRef: "stdjson.Factory",
		runtimePkg: inspect.StdJSONPkgPath,
	}}
}
