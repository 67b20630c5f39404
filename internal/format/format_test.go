package format

import (
	"testing"
	"time"
)

func TestMoeda(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{7.9, "R$ 7,90"},
		{29.90, "R$ 29,90"},
		{239.9, "R$ 239,90"},
		{0, "R$ 0,00"},
		{1234.5, "R$ 1234,50"},
	}
	for _, tc := range cases {
		if got := Moeda(tc.in); got != tc.want {
			t.Errorf("Moeda(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDataBR(t *testing.T) {
	d := time.Date(2026, 9, 6, 23, 59, 0, 0, time.UTC)
	if got := DataBR(d); got != "06/09/2026" {
		t.Errorf("DataBR = %q, want %q", got, "06/09/2026")
	}
	if got := DataHoraBR(d); got != "06/09/2026 23:59" {
		t.Errorf("DataHoraBR = %q, want %q", got, "06/09/2026 23:59")
	}
}

func TestSoDigitos(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"123.456.789-00", "12345678900"},
		{"+55 (11) 99999-0000", "5511999990000"},
		{"sem numeros", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SoDigitos(tc.in); got != tc.want {
			t.Errorf("SoDigitos(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
