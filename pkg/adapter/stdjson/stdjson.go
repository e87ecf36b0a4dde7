// Package stdjson binds fractory adapters to encoding/json. It defines the
// adapter and factory shapes the stdjson extension strategy generates against,
// plus the Codec passed to context-taking adapter members.
package stdjson

import (
	"encoding/json"
	"reflect"
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
	CreateJSONAdapter(t reflect.Type, codec *Codec, qualifiers ...string) any
}

// Codec is the shared serialization context handed to one-argument adapter
// members. It carries encoding options and resolves nested adapters through
// its registered factories, in registration order.
type Codec struct {
	indent    string
	factories []Factory
}

// Option configures a Codec.
type Option func(*Codec)

// WithIndent sets the indentation used by stock adapters built from the codec.
func WithIndent(indent string) Option {
	return func(c *Codec) { c.indent = indent }
}

// WithFactory appends a factory consulted by Adapter.
func WithFactory(f Factory) Option {
	return func(c *Codec) { c.factories = append(c.factories, f) }
}

// NewCodec builds a codec from the given options.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Adapter resolves an adapter for t through the registered factories. The
// first non-nil result wins; nil means no factory recognized t.
func (c *Codec) Adapter(t reflect.Type) any {
	for _, f := range c.factories {
		if a := f.CreateJSONAdapter(t, c); a != nil {
			return a
		}
	}
	return nil
}

// AdapterOf returns the stock encoding/json adapter for T, honoring the
// codec's options. Adapter members with no bespoke encoding return it
// directly. A nil codec yields compact output.
func AdapterOf[T any](c *Codec) Adapter[T] {
	return jsonAdapter[T]{codec: c}
}

type jsonAdapter[T any] struct {
	codec *Codec
}

func (a jsonAdapter[T]) MarshalModel(v T) ([]byte, error) {
	if a.codec != nil && a.codec.indent != "" {
		return json.MarshalIndent(v, "", a.codec.indent)
	}
	return json.Marshal(v)
}

func (a jsonAdapter[T]) UnmarshalModel(data []byte, v *T) error {
	return json.Unmarshal(data, v)
}
