package inspect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadShopmod(t *testing.T) *Result {
	t.Helper()
	res, err := Load(Config{Dir: "testdata/shopmod", Patterns: []string{"./..."}})
	require.NoError(t, err)
	return res
}

func TestLoad_Models(t *testing.T) {
	res := loadShopmod(t)

	require.Len(t, res.Models, 6)
	assert.Equal(t, "example.com/shop/model.Box", res.Models[0].FQN())
	assert.Equal(t, "example.com/shop/model.Bundle", res.Models[1].FQN())
	assert.Equal(t, "example.com/shop/model.Coupon", res.Models[2].FQN())
	assert.Equal(t, "example.com/shop/model.Item", res.Models[3].FQN())
	assert.Equal(t, "example.com/shop/model.Price", res.Models[4].FQN())
	assert.Equal(t, "example.com/shop/model.Voucher", res.Models[5].FQN())

	box := res.Models[0]
	assert.True(t, box.Generic)
	require.Len(t, box.Members, 1)
	assert.Equal(t, "JSONAdapter", box.Members[0].Name)
	assert.Equal(t, KindAdapterGeneric, box.Members[0].Kind)
	assert.Equal(t, StrategyStdJSON, box.Members[0].StrategyID)
	assert.True(t, box.Members[0].CtxOK)
	assert.False(t, box.Members[0].PointerRecv)

	bundle := res.Models[1]
	assert.Empty(t, bundle.Members)
	assert.True(t, bundle.Implements[StrategyStdJSON])
	assert.False(t, bundle.Implements[StrategyIterJSON])

	coupon := res.Models[2]
	require.Len(t, coupon.Members, 1)
	assert.Equal(t, "JSONAdapter", coupon.Members[0].Name)
	assert.Equal(t, KindAdapterExact, coupon.Members[0].Kind)
	assert.True(t, coupon.Members[0].PointerRecv)

	item := res.Models[3]
	assert.False(t, item.Generic)
	assert.True(t, item.HasMarker)
	require.Len(t, item.Members, 1)
	assert.Equal(t, KindAdapterExact, item.Members[0].Kind)
	assert.Equal(t, 0, item.Members[0].Arity)
	assert.True(t, item.Members[0].CtxOK)
	assert.True(t, strings.HasSuffix(item.Pos.File, "model.go"))

	price := res.Models[4]
	assert.False(t, price.HasMarker)
	require.Len(t, price.Members, 2)
	assert.Equal(t, "ItemAdapter", price.Members[0].Name)
	assert.Equal(t, KindAdapterOther, price.Members[0].Kind)
	assert.Equal(t, "JSONAdapter", price.Members[1].Name)
	assert.Equal(t, KindAdapterExact, price.Members[1].Kind)
	assert.Equal(t, 1, price.Members[1].Arity)
	assert.True(t, price.Members[1].CtxOK)

	// Pointer-only factory implementations do not count as direct
	// implementers.
	voucher := res.Models[5]
	assert.Empty(t, voucher.Members)
	assert.False(t, voucher.Implements[StrategyStdJSON])
}

func TestLoad_Sites(t *testing.T) {
	res := loadShopmod(t)

	require.Len(t, res.Sites, 3)
	assert.Equal(t, "example.com/shop/model.BrokenFactory", res.Sites[0].FQN())
	assert.Equal(t, "example.com/shop/model.CatalogFactory", res.Sites[1].FQN())
	assert.Equal(t, "example.com/shop/model.ShopDispatcher", res.Sites[2].FQN())

	broken := res.Sites[0]
	assert.Equal(t, SiteFactory, broken.Kind)
	assert.False(t, broken.IsInterface)

	catalog := res.Sites[1]
	assert.Equal(t, SiteFactory, catalog.Kind)
	assert.True(t, catalog.IsInterface)
	assert.True(t, catalog.Supported[StrategyStdJSON])
	assert.False(t, catalog.Supported[StrategyIterJSON])
	assert.NotEmpty(t, catalog.Dir)

	dispatcher := res.Sites[2]
	assert.Equal(t, SiteDispatcher, dispatcher.Kind)
	assert.True(t, dispatcher.Supported[StrategyStdJSON])

	factories := res.Factories()
	require.Len(t, factories, 2)
	dispatchers := res.Dispatchers()
	require.Len(t, dispatchers, 1)
	assert.Equal(t, "ShopDispatcher", dispatchers[0].Name)
}

func TestLoad_BadPattern(t *testing.T) {
	_, err := Load(Config{Dir: "testdata/shopmod", Patterns: []string{"./nonexistent/..."}})
	require.Error(t, err)
}
