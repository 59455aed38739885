package kernel

import "testing"

func TestRegularizeRange(t *testing.T) {
	tests := []struct {
		name                string
		start, stop, step   int64
		hasStart, hasStop   bool
		n                   int64
		wantStart, wantStop int64
		wantLen             int64
	}{
		{"full", 0, 0, 1, false, false, 5, 0, 5, 5},
		{"negative bounds", -3, -1, 1, true, true, 5, 2, 4, 2},
		{"clamped", -10, 10, 1, true, true, 5, 0, 5, 5},
		{"crossed", 4, 1, 1, true, true, 5, 4, 4, 0},
		{"step two", 1, 0, 2, true, false, 6, 1, 6, 3},
		{"reverse full", 0, 0, -1, false, false, 4, 3, -1, 4},
		{"reverse step two", 0, 0, -2, false, false, 5, 4, -1, 3},
		{"reverse bounded", 3, 0, -1, true, true, 5, 3, 0, 3},
		{"reverse past start", 10, -10, -1, true, true, 3, 2, -1, 3},
		{"empty dimension", 0, 0, 1, false, false, 0, 0, 0, 0},
		{"empty dimension reversed", 0, 0, -1, false, false, 0, -1, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, stop := RegularizeRange(tt.start, tt.stop, tt.step, tt.hasStart, tt.hasStop, tt.n)
			if start != tt.wantStart || stop != tt.wantStop {
				t.Errorf("RegularizeRange = %d, %d, want %d, %d", start, stop, tt.wantStart, tt.wantStop)
			}
			if got := RangeLen(start, stop, tt.step); got != tt.wantLen {
				t.Errorf("RangeLen = %d, want %d", got, tt.wantLen)
			}
		})
	}
}

func TestWrapAt(t *testing.T) {
	tests := []struct {
		at, n int64
		want  int64
		ok    bool
	}{
		{0, 3, 0, true},
		{-1, 3, 2, true},
		{-3, 3, 0, true},
		{3, 3, 3, false},
		{-4, 3, -1, false},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := WrapAt(tt.at, tt.n)
		if got != tt.want || ok != tt.ok {
			t.Errorf("WrapAt(%d, %d) = %d, %v, want %d, %v", tt.at, tt.n, got, ok, tt.want, tt.ok)
		}
	}
}
