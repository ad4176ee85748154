// Package main is a live demonstration of syncview: a ticker goroutine
// mutates an observable list of request records while a reverse-mode view
// (newest first) is rendered in the terminal. A Lua predicate over the
// status code can be toggled on and off at runtime.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/syncview"
	"github.com/dshills/syncview/luafilter"
	"github.com/dshills/syncview/obslist"
)

const maxRecords = 64

// errorsOnly hides records with 2xx statuses.
const errorsOnly = `function visible(rec) return rec.status >= 400 end`

// record is one synthetic request log entry.
type record struct {
	seq    int
	status int
	path   string
}

// render projects a record into its display line once, at insertion time.
func render(r record) string {
	return fmt.Sprintf("#%04d  %d  %s", r.seq, r.status, r.path)
}

func main() {
	os.Exit(run())
}

func run() int {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	source := obslist.New[record]()
	view := syncview.New(source, render, syncview.WithReverse())
	defer view.Close()

	filter, err := luafilter.New(errorsOnly, func(L *lua.LState, r record, _ string) lua.LValue {
		tbl := L.NewTable()
		tbl.RawSetString("status", lua.LNumber(r.status))
		tbl.RawSetString("path", lua.LString(r.path))
		return tbl
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load filter: %v\n", err)
		return 1
	}
	defer filter.Close()

	// The state-changed handler runs inside both the source and view locks;
	// it only posts a redraw request and returns. Enumerating the view from
	// here would self-deadlock.
	redraw := make(chan struct{}, 1)
	sub := view.OnStateChanged(func(obslist.Action) {
		select {
		case redraw <- struct{}{}:
		default:
		}
	})
	defer sub.Unsubscribe()

	stop := make(chan struct{})
	go mutate(source, stop)

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	filtered := false
	draw(screen, view, filtered)
	for {
		select {
		case <-redraw:
			draw(screen, view, filtered)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				draw(screen, view, filtered)
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
					close(stop)
					return 0
				case ev.Rune() == 'f':
					filtered = !filtered
					if filtered {
						view.AttachFilter(filter)
					} else {
						view.ResetFilter(nil)
					}
					draw(screen, view, filtered)
				}
			}
		}
	}
}

// mutate drives the source list: mostly appends, with occasional replaces
// and removals, trimming the oldest entries past maxRecords.
func mutate(source *obslist.List[record], stop <-chan struct{}) {
	statuses := []int{200, 200, 200, 201, 204, 301, 404, 500, 502}
	paths := []string{"/", "/login", "/api/items", "/api/items/42", "/healthz", "/metrics"}

	ticker := time.NewTicker(150 * time.Millisecond)
	defer ticker.Stop()

	seq := 0
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			seq++
			rec := record{
				seq:    seq,
				status: statuses[rand.Intn(len(statuses))],
				path:   paths[rand.Intn(len(paths))],
			}
			switch n := source.Len(); {
			case n > 0 && seq%17 == 0:
				source.Replace(rand.Intn(n), rec)
			case n > maxRecords:
				source.RemoveRange(0, n-maxRecords)
			default:
				source.Append(rec)
			}
		}
	}
}

func draw(screen tcell.Screen, view *syncview.View[record, string], filtered bool) {
	screen.Clear()
	_, height := screen.Size()

	header := fmt.Sprintf(" syncview demo — %d records — [f] filter: %v — [q] quit ", view.Len(), filtered)
	puts(screen, 0, 0, header, tcell.StyleDefault.Reverse(true))

	row := 1
	for rec, line := range view.Entries() {
		if row >= height {
			break
		}
		style := tcell.StyleDefault
		if rec.status >= 400 {
			style = style.Foreground(tcell.ColorRed)
		}
		puts(screen, 0, row, line, style)
		row++
	}
	screen.Show()
}

func puts(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
