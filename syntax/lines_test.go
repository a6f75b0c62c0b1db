package syntax

import "testing"

func TestBuildLineIndex(t *testing.T) {
	index := BuildLineIndex([]byte("ab\ncd\n\nef"))
	want := []int{0, 3, 6, 7}
	if len(index) != len(want) {
		t.Fatalf("got %v, want %v", index, want)
	}
	for i := range want {
		if index[i] != want[i] {
			t.Errorf("start %d: got %d, want %d", i, index[i], want[i])
		}
	}
}

func TestLineAt(t *testing.T) {
	index := BuildLineIndex([]byte("ab\ncd\n\nef"))

	tests := []struct {
		offset int
		want   int
	}{
		{-5, 1}, // before the first start clamps to line 1
		{0, 1},
		{2, 1},
		{3, 2},
		{5, 2},
		{6, 3},
		{7, 4},
		{100, 4},
	}

	for _, tt := range tests {
		if got := index.LineAt(tt.offset); got != tt.want {
			t.Errorf("LineAt(%d) = %d, want %d", tt.offset, got, tt.want)
		}
	}
}
