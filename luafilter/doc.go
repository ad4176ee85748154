// Package luafilter implements the syncview filter capability with policy
// logic written in Lua. A script defines any of the functions
//
//	visible(item)    -> boolean  (entry visibility; absent means all visible)
//	on_attach(item)
//	on_add(item)
//	on_remove(item)
//	on_move(item)
//
// and each hook the script defines is invoked with the Lua value produced by
// the caller-supplied converter.
//
// gopher-lua states are not goroutine-safe, so every call into the script is
// serialized behind a mutex. Filter hooks run on the goroutine mutating the
// source list; scripts must therefore be short and must not block.
//
// A script error never propagates into the view: hooks report it through the
// optional error callback and continue, and a failing visible() leaves the
// entry visible rather than silently hiding data.
package luafilter
