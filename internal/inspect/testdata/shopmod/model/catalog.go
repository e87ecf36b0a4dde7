package model

import "github.com/fractory-go/fractory/pkg/adapter/stdjson"

//fractory:factory
type CatalogFactory interface {
	stdjson.Factory
}

//fractory:dispatcher
type ShopDispatcher interface {
	stdjson.Factory
}

// BrokenFactory carries the directive on a concrete type, which generation
// rejects.
//
//fractory:factory
type BrokenFactory struct{}
