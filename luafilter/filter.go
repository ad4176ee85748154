package luafilter

import (
	"errors"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/syncview"
)

var _ syncview.Filter[int, string] = (*Filter[int, string])(nil)

// Function names the script may define.
const (
	fnVisible = "visible"
	fnAttach  = "on_attach"
	fnAdd     = "on_add"
	fnRemove  = "on_remove"
	fnMove    = "on_move"
)

// ErrNilConverter is returned by New when no converter is supplied.
var ErrNilConverter = errors.New("luafilter: converter must not be nil")

// Converter turns a (value, projection) pair into the Lua value handed to
// the script's functions. It runs with the filter's own state, already
// serialized behind the filter mutex; use L to allocate tables.
type Converter[T, V any] func(L *lua.LState, value T, projection V) lua.LValue

// Option configures a Filter.
type Option func(*settings)

type settings struct {
	onError func(error)
}

// WithErrorFunc routes script errors to fn. Without it they are dropped.
func WithErrorFunc(fn func(error)) Option {
	return func(s *settings) {
		s.onError = fn
	}
}

// Filter is a syncview.Filter driven by a Lua script. It must be released
// with Close once detached from its view.
type Filter[T, V any] struct {
	settings

	mu     sync.Mutex
	state  *lua.LState
	conv   Converter[T, V]
	closed bool

	visible *lua.LFunction
	attach  *lua.LFunction
	add     *lua.LFunction
	remove  *lua.LFunction
	move    *lua.LFunction
}

// New compiles and runs script in a fresh Lua state and binds whichever
// filter functions it defined.
func New[T, V any](script string, conv Converter[T, V], opts ...Option) (*Filter[T, V], error) {
	if conv == nil {
		return nil, ErrNilConverter
	}
	L := lua.NewState()
	if err := L.DoString(script); err != nil {
		L.Close()
		return nil, fmt.Errorf("luafilter: load script: %w", err)
	}
	f := &Filter[T, V]{
		state:   L,
		conv:    conv,
		visible: globalFunc(L, fnVisible),
		attach:  globalFunc(L, fnAttach),
		add:     globalFunc(L, fnAdd),
		remove:  globalFunc(L, fnRemove),
		move:    globalFunc(L, fnMove),
	}
	for _, opt := range opts {
		opt(&f.settings)
	}
	return f, nil
}

// Close releases the Lua state. Idempotent. A closed filter keeps answering:
// hooks become no-ops and every entry is visible.
func (f *Filter[T, V]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.state.Close()
}

// OnAttach invokes the script's on_attach, if defined.
func (f *Filter[T, V]) OnAttach(value T, projection V) {
	f.callHook(f.attach, value, projection)
}

// OnAdd invokes the script's on_add, if defined.
func (f *Filter[T, V]) OnAdd(value T, projection V) {
	f.callHook(f.add, value, projection)
}

// OnRemove invokes the script's on_remove, if defined.
func (f *Filter[T, V]) OnRemove(value T, projection V) {
	f.callHook(f.remove, value, projection)
}

// OnMove invokes the script's on_move, if defined.
func (f *Filter[T, V]) OnMove(value T, projection V) {
	f.callHook(f.move, value, projection)
}

// Visible evaluates the script's visible function. Entries stay visible
// when the script omits it, errors, or the filter is closed.
func (f *Filter[T, V]) Visible(value T, projection V) bool {
	if f.visible == nil {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return true
	}
	err := f.state.CallByParam(lua.P{
		Fn:      f.visible,
		NRet:    1,
		Protect: true,
	}, f.conv(f.state, value, projection))
	if err != nil {
		f.report(err)
		return true
	}
	ret := f.state.Get(-1)
	f.state.Pop(1)
	return lua.LVAsBool(ret)
}

// IsNull reports false: a scripted filter is never the no-op filter.
func (f *Filter[T, V]) IsNull() bool { return false }

func (f *Filter[T, V]) callHook(fn *lua.LFunction, value T, projection V) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	err := f.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, f.conv(f.state, value, projection))
	if err != nil {
		f.report(err)
	}
}

func (f *Filter[T, V]) report(err error) {
	if f.onError != nil {
		f.onError(err)
	}
}

func globalFunc(L *lua.LState, name string) *lua.LFunction {
	fn, ok := L.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil
	}
	return fn
}
