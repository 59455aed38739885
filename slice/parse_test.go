package slice

import (
	"testing"

	"github.com/wippyai/jagged/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"", "[]"},
		{"0", "[0]"},
		{"-1", "[-1]"},
		{"1:3", "[1:3]"},
		{":", "[:]"},
		{"::2", "[::2]"},
		{"::-1", "[::-1]"},
		{"2:", "[2:]"},
		{"0, 1:", "[0, 1:]"},
		{"..., 0", "[..., 0]"},
		{"newaxis, :", "[newaxis, :]"},
		{"None", "[newaxis]"},
		{`"x"`, `["x"]`},
		{`'y'`, `["y"]`},
		{`["x", "y"]`, `[["x", "y"]]`},
		{"[0, 2, -1]", "[[0, 2, -1]]"},
		{"[0, None, 2]", "[[0, None, 2]]"},
		{"[[0, 1], [], [1]]", "[[[0, 1], [], [1]]]"},
		{"[[0, None], [1]]", "[[[0, None], [1]]]"},
		{"[[[0], [1, 1]], []]", "[[[[0], [1, 1]], []]]"},
		{"1,", "[1]"},
		{"0, 1:,", "[0, 1:]"},
		{"[0, 2,]", "[[0, 2]]"},
		{"[[0,], [1],],", "[[[0], [1]]]"},
		{`["x",]`, `[["x"]]`},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.expr, err)
			}
			if s := got.String(); s != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.expr, s, tt.want)
			}
		})
	}
}

func TestParseItemKinds(t *testing.T) {
	s, err := Parse(`[[0, None], [1]], [0, None], [1], "a"`)
	if err != nil {
		t.Fatal(err)
	}
	j, ok := s[0].(Jagged)
	if !ok {
		t.Fatalf("item 0 is %T, want Jagged", s[0])
	}
	if _, ok := j.Content.(Missing); !ok {
		t.Errorf("jagged content is %T, want Missing", j.Content)
	}
	if _, ok := s[1].(Missing); !ok {
		t.Errorf("item 1 is %T, want Missing", s[1])
	}
	if _, ok := s[2].(Array); !ok {
		t.Errorf("item 2 is %T, want Array", s[2])
	}
	if _, ok := s[3].(Field); !ok {
		t.Errorf("item 3 is %T, want Field", s[3])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"1 2",
		"[0, 1",
		"[0, \"x\"]",
		"[[0], 1]",
		"..",
		"foo",
		"\"open",
		"-",
		",",
		"1,,",
		"[,]",
		"[0,,]",
		"#",
		"99999999999999999999",
	}
	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded", expr)
			}
			e, ok := err.(*errors.Error)
			if !ok || e.Phase != errors.PhaseParse || e.Kind != errors.KindInvalidInput {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
