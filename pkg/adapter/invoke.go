package adapter

import (
	"fmt"
	"reflect"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const resolutionCacheSize = 256

type memberKey struct {
	typ  reflect.Type
	name string
}

type memberSpec struct {
	index     int
	onPointer bool
}

var (
	cacheOnce sync.Once
	cache     *lru.Cache[memberKey, memberSpec]
)

// resolutionCache is built once per process. Dispatch runs single-threaded
// per round, but the generated dispatchers live in application code where no
// such guarantee holds, so the cache itself must be safe for concurrent use.
func resolutionCache() *lru.Cache[memberKey, memberSpec] {
	cacheOnce.Do(func() {
		cache, _ = lru.New[memberKey, memberSpec](resolutionCacheSize)
	})
	return cache
}

func resolve(t reflect.Type, name string) (memberSpec, bool) {
	key := memberKey{typ: t, name: name}
	if spec, ok := resolutionCache().Get(key); ok {
		return spec, true
	}

	var spec memberSpec
	if m, ok := t.MethodByName(name); ok {
		spec = memberSpec{index: m.Index, onPointer: false}
	} else if m, ok := reflect.PointerTo(t).MethodByName(name); ok {
		spec = memberSpec{index: m.Index, onPointer: true}
	} else {
		return memberSpec{}, false
	}

	resolutionCache().Add(key, spec)
	return spec, true
}

// Invoke calls the adapter member name on the zero value of t and returns the
// result. argCount selects the zero-arg or context-taking form; for the
// latter, ctx is passed as the single argument. Invoke panics with a
// *DispatchError when the member is missing or does not match the recorded
// shape: that can only mean the artifacts consulted at generation time do not
// match the types present at run time.
func Invoke(t reflect.Type, name string, argCount int, ctx any) any {
	spec, ok := resolve(t, name)
	if !ok {
		panic(&DispatchError{Type: t.String(), Method: name, Reason: "no such member"})
	}

	var recv reflect.Value
	if spec.onPointer {
		recv = reflect.New(t)
	} else {
		recv = reflect.Zero(t)
	}

	m := recv.Method(spec.index)
	mt := m.Type()
	if mt.NumIn() != argCount {
		panic(&DispatchError{
			Type:   t.String(),
			Method: name,
			Reason: fmt.Sprintf("member takes %d arguments, record says %d", mt.NumIn(), argCount),
		})
	}
	if mt.NumOut() == 0 {
		panic(&DispatchError{Type: t.String(), Method: name, Reason: "member returns nothing"})
	}

	var out []reflect.Value
	if argCount == 0 {
		out = m.Call(nil)
	} else {
		arg := reflect.ValueOf(ctx)
		if ctx == nil {
			arg = reflect.Zero(mt.In(0))
		}
		if !arg.Type().AssignableTo(mt.In(0)) {
			panic(&DispatchError{
				Type:   t.String(),
				Method: name,
				Reason: fmt.Sprintf("context argument %s is not assignable to %s", arg.Type(), mt.In(0)),
			})
		}
		out = m.Call([]reflect.Value{arg})
	}

	return out[0].Interface()
}

// FromFactory invokes the zero-arg provider member name on t and returns the
// produced factory value. An empty name returns the zero value of t itself,
// covering model types that implement a factory interface directly.
func FromFactory(t reflect.Type, name string) any {
	if name == "" {
		return reflect.Zero(t).Interface()
	}
	return Invoke(t, name, 0, nil)
}
