// Package model holds the catalog declarations the discovery tests load.
package model

import (
	"reflect"

	"github.com/fractory-go/fractory/pkg/adapter/stdjson"
)

//fractory:model
type Item struct {
	SKU string `json:"sku"`
}

// FractoryModel marks Item for adapter dispatch.
func (Item) FractoryModel() {}

func (Item) JSONAdapter() stdjson.Adapter[Item] {
	return stdjson.AdapterOf[Item](nil)
}

//fractory:model
type Price struct {
	Cents int `json:"cents"`
}

func (Price) JSONAdapter(c *stdjson.Codec) stdjson.Adapter[Price] {
	return stdjson.AdapterOf[Price](c)
}

// ItemAdapter returns another model's adapter, a deliberate near miss.
func (Price) ItemAdapter() stdjson.Adapter[Item] {
	return stdjson.AdapterOf[Item](nil)
}

//fractory:model
type Box[T any] struct {
	Contents T `json:"contents"`
}

func (Box[T]) JSONAdapter() stdjson.Adapter[Box[T]] {
	return stdjson.AdapterOf[Box[T]](nil)
}

//fractory:model
type Coupon struct {
	Code string `json:"code"`
}

// JSONAdapter is declared on the pointer receiver, which generation rejects.
func (c *Coupon) JSONAdapter() stdjson.Adapter[Coupon] {
	return stdjson.AdapterOf[Coupon](nil)
}

//fractory:model
type Voucher struct {
	Amount int `json:"amount"`
}

func (v *Voucher) CreateJSONAdapter(t reflect.Type, codec *stdjson.Codec, qualifiers ...string) any {
	return nil
}

//fractory:model
type Bundle struct {
	Items []Item `json:"items"`
}

func (Bundle) CreateJSONAdapter(t reflect.Type, codec *stdjson.Codec, qualifiers ...string) any {
	if len(qualifiers) != 0 {
		return nil
	}
	if t == reflect.TypeOf(Bundle{}) {
		return stdjson.AdapterOf[Bundle](codec)
	}
	return nil
}
