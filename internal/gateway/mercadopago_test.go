package gateway

import "testing"

func TestSplitNome(t *testing.T) {
	cases := []struct {
		in, first, last string
	}{
		{"Ana Silva", "Ana", "Silva"},
		{"Ana Maria da Silva", "Ana", "Maria da Silva"},
		{"Ana", "Ana", "Ana"},
		{"  Ana   Silva  ", "Ana", "Silva"},
		{"", "", ""},
	}
	for _, tc := range cases {
		first, last := splitNome(tc.in)
		if first != tc.first || last != tc.last {
			t.Errorf("splitNome(%q) = %q, %q; want %q, %q", tc.in, first, last, tc.first, tc.last)
		}
	}
}
