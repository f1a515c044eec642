package source

import "testing"

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{Start: 0, End: 3}, Span{Start: 5, End: 8}, false},
		{"touching", Span{Start: 0, End: 3}, Span{Start: 3, End: 6}, false},
		{"partial", Span{Start: 0, End: 4}, Span{Start: 3, End: 6}, true},
		{"nested", Span{Start: 0, End: 10}, Span{Start: 3, End: 6}, true},
		{"identical", Span{Start: 2, End: 5}, Span{Start: 2, End: 5}, true},
		{"insert strictly inside", Span{Start: 4, End: 4}, Span{Start: 2, End: 6}, true},
		{"insert at start boundary", Span{Start: 2, End: 2}, Span{Start: 2, End: 6}, false},
		{"insert at end boundary", Span{Start: 6, End: 6}, Span{Start: 2, End: 6}, false},
		{"two inserts same point", Span{Start: 3, End: 3}, Span{Start: 3, End: 3}, false},
		{"different files", Span{File: 1, Start: 0, End: 5}, Span{File: 2, Start: 0, End: 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %v and %v", tt.a, tt.b)
			}
		})
	}
}

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 7}
	b := Span{File: 1, Start: 2, End: 5}
	got := a.Cover(b)
	if got != (Span{File: 1, Start: 2, End: 7}) {
		t.Fatalf("Cover = %v", got)
	}
	if !got.Contains(a) || !got.Contains(b) {
		t.Fatalf("cover %v must contain both inputs", got)
	}
	if a.Contains(b) {
		t.Fatalf("%v should not contain %v", a, b)
	}
	if other := a.Cover(Span{File: 2, Start: 0, End: 100}); other != a {
		t.Fatalf("cover across files changed span: %v", other)
	}
}

func TestSpanZeroide(t *testing.T) {
	s := Span{File: 3, Start: 10, End: 20}
	if got := s.ZeroideToStart(); got != (Span{File: 3, Start: 10, End: 10}) || !got.Empty() {
		t.Errorf("ZeroideToStart = %v", got)
	}
	if got := s.ZeroideToEnd(); got != (Span{File: 3, Start: 20, End: 20}) || !got.Empty() {
		t.Errorf("ZeroideToEnd = %v", got)
	}
}

func TestSpanBetween(t *testing.T) {
	a := Span{Start: 0, End: 6}
	b := Span{Start: 9, End: 12}
	if got := a.Between(b); got != (Span{Start: 6, End: 9}) {
		t.Errorf("Between = %v", got)
	}
	if got := b.Between(a); got != (Span{Start: 12, End: 12}) {
		t.Errorf("Between reversed = %v", got)
	}
	if got := a.Between(b).Len(); got != 3 {
		t.Errorf("Len = %d", got)
	}
}
