package deque

import (
	"slices"
	"testing"
)

func collect(d *Deque[int]) []int {
	out := make([]int, 0, d.Len())
	for v := range d.All() {
		out = append(out, v)
	}
	return out
}

func TestPushPopEnds(t *testing.T) {
	d := New[int]()
	d.PushBack(2)
	d.PushBack(3)
	d.PushFront(1)
	d.PushBack(4)

	if got := collect(d); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Fatalf("elements = %v, want [1 2 3 4]", got)
	}

	if v := d.PopFront(); v != 1 {
		t.Errorf("PopFront() = %d, want 1", v)
	}
	if v := d.PopBack(); v != 4 {
		t.Errorf("PopBack() = %d, want 4", v)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
}

func TestRingWrap(t *testing.T) {
	// Force head to travel around the ring several times without growing.
	d := New[int]()
	for i := 0; i < minCapacity; i++ {
		d.PushBack(i)
	}
	for cycle := 0; cycle < 3*minCapacity; cycle++ {
		v := d.PopFront()
		d.PushBack(v + minCapacity)
	}
	want := make([]int, minCapacity)
	for i := range want {
		want[i] = 3*minCapacity + i
	}
	if got := collect(d); !slices.Equal(got, want) {
		t.Fatalf("after wrapping: %v, want %v", got, want)
	}
}

func TestGrowPreservesOrder(t *testing.T) {
	d := New[int]()
	// Offset head before growing so the copy has to unwrap the ring.
	for i := 0; i < minCapacity; i++ {
		d.PushBack(i)
	}
	d.PopFront()
	d.PopFront()
	for i := minCapacity; i < 4*minCapacity; i++ {
		d.PushBack(i)
	}

	want := make([]int, 0, 4*minCapacity-2)
	for i := 2; i < 4*minCapacity; i++ {
		want = append(want, i)
	}
	if got := collect(d); !slices.Equal(got, want) {
		t.Fatalf("after growth: %v, want %v", got, want)
	}
}

func TestFromSlice(t *testing.T) {
	src := []int{5, 6, 7}
	d := FromSlice(src)
	src[0] = 99 // deque must hold its own copy
	if got := collect(d); !slices.Equal(got, []int{5, 6, 7}) {
		t.Fatalf("FromSlice = %v, want [5 6 7]", got)
	}
}

func TestAtSet(t *testing.T) {
	d := FromSlice([]int{10, 20, 30})
	if v := d.At(1); v != 20 {
		t.Errorf("At(1) = %d, want 20", v)
	}
	d.Set(1, 25)
	if v := d.At(1); v != 25 {
		t.Errorf("At(1) after Set = %d, want 25", v)
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name  string
		start []int
		index int
		value int
		want  []int
	}{
		{"front", []int{2, 3}, 0, 1, []int{1, 2, 3}},
		{"back", []int{1, 2}, 2, 3, []int{1, 2, 3}},
		{"middle", []int{1, 3, 4}, 1, 2, []int{1, 2, 3, 4}},
		{"empty", nil, 0, 1, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromSlice(tt.start)
			d.Insert(tt.index, tt.value)
			if got := collect(d); !slices.Equal(got, tt.want) {
				t.Errorf("Insert(%d, %d) = %v, want %v", tt.index, tt.value, got, tt.want)
			}
		})
	}
}

func TestRemoveAt(t *testing.T) {
	tests := []struct {
		name  string
		start []int
		index int
		value int
		want  []int
	}{
		{"front", []int{1, 2, 3}, 0, 1, []int{2, 3}},
		{"back", []int{1, 2, 3}, 2, 3, []int{1, 2}},
		{"middle", []int{1, 2, 3, 4}, 1, 2, []int{1, 3, 4}},
		{"only", []int{7}, 0, 7, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromSlice(tt.start)
			if got := d.RemoveAt(tt.index); got != tt.value {
				t.Errorf("RemoveAt(%d) = %d, want %d", tt.index, got, tt.value)
			}
			got := collect(d)
			if len(got) == 0 {
				got = nil
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("remaining = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoveRange(t *testing.T) {
	tests := []struct {
		name  string
		start int
		n     int
		want  []int
	}{
		{"middle", 2, 3, []int{0, 1, 5, 6, 7}},
		{"prefix", 0, 2, []int{2, 3, 4, 5, 6, 7}},
		{"suffix", 5, 3, []int{0, 1, 2, 3, 4}},
		{"all", 0, 8, nil},
		{"none", 3, 0, []int{0, 1, 2, 3, 4, 5, 6, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7})
			d.RemoveRange(tt.start, tt.n)
			got := collect(d)
			if len(got) == 0 {
				got = nil
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("RemoveRange(%d, %d) = %v, want %v", tt.start, tt.n, got, tt.want)
			}
		})
	}
}

func TestClear(t *testing.T) {
	d := FromSlice([]int{1, 2, 3})
	d.Clear()
	if d.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", d.Len())
	}
	d.PushBack(9)
	if got := collect(d); !slices.Equal(got, []int{9}) {
		t.Fatalf("after Clear+PushBack: %v, want [9]", got)
	}
}

func TestBackward(t *testing.T) {
	d := FromSlice([]int{1, 2, 3})
	var got []int
	for v := range d.Backward() {
		got = append(got, v)
	}
	if !slices.Equal(got, []int{3, 2, 1}) {
		t.Fatalf("Backward = %v, want [3 2 1]", got)
	}
}

func TestIteratorsRestartable(t *testing.T) {
	d := FromSlice([]int{1, 2, 3})
	seq := d.All()
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 3 || second != 3 {
		t.Fatalf("restarted iteration saw %d then %d elements, want 3 and 3", first, second)
	}
}

func TestIteratorEarlyStop(t *testing.T) {
	d := FromSlice([]int{1, 2, 3, 4})
	var got []int
	for v := range d.All() {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("early stop saw %v, want [1 2]", got)
	}
}

func TestOutOfRangePanics(t *testing.T) {
	tests := []struct {
		name string
		op   func(d *Deque[int])
	}{
		{"At negative", func(d *Deque[int]) { d.At(-1) }},
		{"At past end", func(d *Deque[int]) { d.At(3) }},
		{"Set past end", func(d *Deque[int]) { d.Set(3, 0) }},
		{"Insert past end", func(d *Deque[int]) { d.Insert(5, 0) }},
		{"RemoveAt past end", func(d *Deque[int]) { d.RemoveAt(3) }},
		{"RemoveRange past end", func(d *Deque[int]) { d.RemoveRange(1, 5) }},
		{"RemoveRange negative", func(d *Deque[int]) { d.RemoveRange(-1, 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			tt.op(FromSlice([]int{1, 2, 3}))
		})
	}
}

func TestPopEmptyPanics(t *testing.T) {
	for _, name := range []string{"PopFront", "PopBack"} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			d := New[int]()
			if name == "PopFront" {
				d.PopFront()
			} else {
				d.PopBack()
			}
		})
	}
}
