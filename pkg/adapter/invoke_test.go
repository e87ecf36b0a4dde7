package adapter

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodec struct {
	name string
}

type widget struct {
	ModelTag
	ID int
}

func (widget) ZeroArg() string { return "zero" }

func (widget) OneArg(c *fakeCodec) string { return "ctx:" + c.name }

func (*widget) PointerRecv() string { return "pointer" }

func (widget) Silent() {}

type widgetFactory struct{}

func (widget) NewFactory() widgetFactory { return widgetFactory{} }

func TestInvoke_ZeroArg(t *testing.T) {
	got := Invoke(reflect.TypeOf(widget{}), "ZeroArg", 0, nil)
	assert.Equal(t, "zero", got)
}

func TestInvoke_OneArg(t *testing.T) {
	got := Invoke(reflect.TypeOf(widget{}), "OneArg", 1, &fakeCodec{name: "c1"})
	assert.Equal(t, "ctx:c1", got)
}

func TestInvoke_PointerReceiver(t *testing.T) {
	got := Invoke(reflect.TypeOf(widget{}), "PointerRecv", 0, nil)
	assert.Equal(t, "pointer", got)
}

func TestInvoke_CachedLookup(t *testing.T) {
	// Second call resolves through the cache; behavior must not change.
	first := Invoke(reflect.TypeOf(widget{}), "ZeroArg", 0, nil)
	second := Invoke(reflect.TypeOf(widget{}), "ZeroArg", 0, nil)
	assert.Equal(t, first, second)
}

func TestInvoke_MissingMember(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		derr, ok := r.(*DispatchError)
		require.True(t, ok, "panic value should be *DispatchError, got %T", r)
		assert.Equal(t, "NoSuchMember", derr.Method)
		assert.Contains(t, derr.Error(), "no such member")
	}()
	Invoke(reflect.TypeOf(widget{}), "NoSuchMember", 0, nil)
}

func TestInvoke_ArityMismatch(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*DispatchError)
		require.True(t, ok)
	}()
	Invoke(reflect.TypeOf(widget{}), "ZeroArg", 1, &fakeCodec{})
}

func TestInvoke_NoResult(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		_, ok := r.(*DispatchError)
		require.True(t, ok)
	}()
	Invoke(reflect.TypeOf(widget{}), "Silent", 0, nil)
}

func TestInvoke_ContextTypeMismatch(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		derr, ok := r.(*DispatchError)
		require.True(t, ok)
		assert.Contains(t, derr.Reason, "not assignable")
	}()
	Invoke(reflect.TypeOf(widget{}), "OneArg", 1, "not a codec")
}

func TestFromFactory_Member(t *testing.T) {
	got := FromFactory(reflect.TypeOf(widget{}), "NewFactory")
	_, ok := got.(widgetFactory)
	assert.True(t, ok)
}

func TestFromFactory_EmptyNameReturnsZeroValue(t *testing.T) {
	got := FromFactory(reflect.TypeOf(widget{}), "")
	w, ok := got.(widget)
	require.True(t, ok)
	assert.Equal(t, widget{}, w)
}

func TestModelTag_Marker(t *testing.T) {
	var m Model = widget{}
	assert.NotNil(t, m)

	markerType := reflect.TypeOf((*Model)(nil)).Elem()
	assert.True(t, reflect.PointerTo(reflect.TypeOf(widget{})).Implements(markerType))
	assert.False(t, reflect.TypeOf(fakeCodec{}).Implements(markerType))
}
