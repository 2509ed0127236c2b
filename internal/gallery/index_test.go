package gallery

import "testing"

func TestNextCycleReturnsToStart(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for start := 0; start < n; start++ {
			i := start
			for range n {
				i = Next(i, n)
			}
			if i != start {
				t.Fatalf("n=%d start=%d: after %d nexts got %d", n, start, n, i)
			}
		}
	}
}

func TestPrevInvertsNext(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for i := 0; i < n; i++ {
			if got := Prev(Next(i, n), n); got != i {
				t.Fatalf("n=%d: prev(next(%d)) = %d", n, i, got)
			}
			if got := Next(Prev(i, n), n); got != i {
				t.Fatalf("n=%d: next(prev(%d)) = %d", n, i, got)
			}
		}
	}
}

func TestWrapAtBoundaries(t *testing.T) {
	if got := Next(7, 8); got != 0 {
		t.Fatalf("Next(7, 8) = %d, want 0", got)
	}
	if got := Prev(0, 8); got != 7 {
		t.Fatalf("Prev(0, 8) = %d, want 7", got)
	}
}

func TestIndexFromOffset(t *testing.T) {
	cases := []struct {
		name   string
		offset float64
		width  float64
		gap    float64
		n      int
		want   int
		wantOK bool
	}{
		{"origin", 0, 80, 2, 8, 0, true},
		{"exact second", 82, 80, 2, 8, 1, true},
		{"rounds down", 82*2 + 40, 80, 2, 8, 2, true},
		{"rounds up", 82*2 + 42, 80, 2, 8, 3, true},
		{"last", 82 * 7, 80, 2, 8, 7, true},
		{"past end", 82 * 8, 80, 2, 8, 0, false},
		{"negative overscroll", -60, 80, 2, 8, 0, false},
		{"small negative rounds to zero", -10, 80, 2, 8, 0, true},
		{"zero pitch", 10, 0, 0, 8, 0, false},
		{"empty list", 0, 80, 2, 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := IndexFromOffset(tc.offset, tc.width, tc.gap, tc.n)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("IndexFromOffset(%v) = (%d, %v), want (%d, %v)", tc.offset, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestIndexFromOffsetIsIdempotent(t *testing.T) {
	first, ok1 := IndexFromOffset(250, 80, 2, 8)
	for range 5 {
		got, ok := IndexFromOffset(250, 80, 2, 8)
		if got != first || ok != ok1 {
			t.Fatalf("repeated inference diverged: (%d,%v) vs (%d,%v)", got, ok, first, ok1)
		}
	}
}

func TestOffsetRoundTrip(t *testing.T) {
	for i := 0; i < 8; i++ {
		got, ok := IndexFromOffset(OffsetOf(i, 64, 2), 64, 2, 8)
		if !ok || got != i {
			t.Fatalf("OffsetOf(%d) inferred back as (%d, %v)", i, got, ok)
		}
	}
}
