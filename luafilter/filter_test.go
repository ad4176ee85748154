package luafilter

import (
	"slices"
	"testing"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/syncview"
	"github.com/dshills/syncview/obslist"
)

func numConv(_ *lua.LState, value, _ int) lua.LValue {
	return lua.LNumber(value)
}

func TestVisiblePredicate(t *testing.T) {
	f, err := New(`function visible(n) return n % 2 == 0 end`, numConv)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer f.Close()

	if !f.Visible(2, 4) {
		t.Error("Visible(2) = false, want true")
	}
	if f.Visible(3, 9) {
		t.Error("Visible(3) = true, want false")
	}
	if f.IsNull() {
		t.Error("IsNull() = true, want false")
	}
}

func TestVisibleAbsentDefaultsTrue(t *testing.T) {
	f, err := New(`function on_add(n) end`, numConv)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer f.Close()

	if !f.Visible(1, 1) {
		t.Error("Visible without a script predicate = false, want true")
	}
}

func TestHooksDispatch(t *testing.T) {
	script := `
		log = {}
		function on_attach(n) table.insert(log, "attach:" .. n) end
		function on_add(n) table.insert(log, "add:" .. n) end
		function on_remove(n) table.insert(log, "remove:" .. n) end
		function on_move(n) table.insert(log, "move:" .. n) end
	`
	f, err := New(script, numConv)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer f.Close()

	f.OnAttach(1, 1)
	f.OnAdd(2, 4)
	f.OnRemove(3, 9)
	f.OnMove(4, 16)

	want := []string{"attach:1", "add:2", "remove:3", "move:4"}
	if got := scriptLog(t, f); !slices.Equal(got, want) {
		t.Fatalf("script log = %v, want %v", got, want)
	}
}

func TestScriptErrorReported(t *testing.T) {
	var got error
	f, err := New(
		`function visible(n) error("boom") end`,
		numConv,
		WithErrorFunc(func(err error) { got = err }),
	)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer f.Close()

	// A failing predicate must report and leave the entry visible.
	if !f.Visible(1, 1) {
		t.Error("Visible after script error = false, want true")
	}
	if got == nil {
		t.Error("script error was not reported")
	}
}

func TestBadScript(t *testing.T) {
	if _, err := New(`function visible(`, numConv); err == nil {
		t.Fatal("New() with invalid Lua succeeded")
	}
}

func TestNilConverter(t *testing.T) {
	if _, err := New[int, int](`x = 1`, nil); err != ErrNilConverter {
		t.Fatalf("New(nil converter) error = %v, want ErrNilConverter", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	f, err := New(`function visible(n) return false end`, numConv)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	f.Close()
	f.Close()

	// Closed filters stop consulting the script.
	if !f.Visible(1, 1) {
		t.Error("Visible on closed filter = false, want true")
	}
	f.OnAdd(1, 1) // must not panic
}

func TestFilterOnView(t *testing.T) {
	src := obslist.New[int](1, 2, 3)
	view := syncview.New(src, func(n int) int { return n * n })
	defer view.Close()

	script := `
		seen = 0
		function on_attach(n) seen = seen + 1 end
		function on_add(n) seen = seen + 1 end
		function on_remove(n) seen = seen - 1 end
		function visible(n) return n > 1 end
	`
	f, err := New(script, numConv)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer f.Close()

	view.AttachFilter(f)
	src.Append(4)
	src.RemoveAt(0)

	var values []int
	for n := range view.Entries() {
		values = append(values, n)
	}
	if want := []int{2, 3, 4}; !slices.Equal(values, want) {
		t.Fatalf("filtered values = %v, want %v", values, want)
	}

	f.mu.Lock()
	seen := int(f.state.GetGlobal("seen").(lua.LNumber))
	f.mu.Unlock()
	if seen != 3 {
		t.Fatalf("script counter = %d, want 3", seen)
	}
}

// scriptLog reads the script's global log table.
func scriptLog(t *testing.T, f *Filter[int, int]) []string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	tbl, ok := f.state.GetGlobal("log").(*lua.LTable)
	if !ok {
		t.Fatal("script has no log table")
	}
	var out []string
	for i := 1; i <= tbl.Len(); i++ {
		out = append(out, tbl.RawGetInt(i).String())
	}
	return out
}
