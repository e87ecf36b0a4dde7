// Package iterjson binds fractory adapters to github.com/json-iterator/go.
// The shared serialization context for this strategy is the jsoniter.API the
// caller encodes with.
package iterjson

import (
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

// Adapter converts one model type to and from its JSON encoding.
type Adapter[T any] interface {
	MarshalModel(v T) ([]byte, error)
	UnmarshalModel(data []byte, v *T) error
}

// Factory produces adapters on demand. Create returns nil when the factory
// does not recognize t. qualifiers carry contextual qualifiers from the
// request site; generated factories decline every qualified request.
type Factory interface {
	CreateIterAdapter(t reflect.Type, api jsoniter.API, qualifiers ...string) any
}

// AdapterOf returns the stock jsoniter adapter for T bound to api. A nil api
// falls back to jsoniter.ConfigCompatibleWithStandardLibrary.
func AdapterOf[T any](api jsoniter.API) Adapter[T] {
	if api == nil {
		api = jsoniter.ConfigCompatibleWithStandardLibrary
	}
	return iterAdapter[T]{api: api}
}

type iterAdapter[T any] struct {
	api jsoniter.API
}

func (a iterAdapter[T]) MarshalModel(v T) ([]byte, error) {
	return a.api.Marshal(v)
}

func (a iterAdapter[T]) UnmarshalModel(data []byte, v *T) error {
	return a.api.Unmarshal(data, v)
}
