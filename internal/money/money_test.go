package money

import (
	"errors"
	"testing"
)

func TestParseMinorUnits(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"25.00", 2_500},
		{"0.01", 1},
		{"100", 10_000},
		{"-3.50", -350},
	}
	for _, c := range cases {
		got, err := ParseMinorUnits(c.in)
		if err != nil {
			t.Fatalf("parse %q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("parse %q: expected %d got %d", c.in, c.want, got)
		}
	}
}

func TestParseMinorUnitsRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "10.001"} {
		if _, err := ParseMinorUnits(in); !errors.Is(err, ErrMalformedAmount) {
			t.Fatalf("expected malformed amount for %q, got %v", in, err)
		}
	}
}

func TestFormatMinorUnits(t *testing.T) {
	if got := FormatMinorUnits(4_000); got != "40.00" {
		t.Fatalf("expected 40.00, got %s", got)
	}
	if got := FormatMinorUnits(-5); got != "-0.05" {
		t.Fatalf("expected -0.05, got %s", got)
	}
}
