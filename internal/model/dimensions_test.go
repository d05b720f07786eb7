package model

import (
	"errors"
	"testing"
)

func TestParseDimensions(t *testing.T) {
	cases := []struct {
		in   string
		want Dimensions
	}{
		{"20", Dimensions{Width: 20, Height: 20}},
		{"10x8", Dimensions{Width: 10, Height: 8}},
		{" 5x5 ", Dimensions{Width: 5, Height: 5}},
	}
	for _, tc := range cases {
		got, err := ParseDimensions(tc.in)
		if err != nil {
			t.Fatalf("ParseDimensions(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDimensions(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseDimensionsRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "0", "-3", "abc", "10x", "x10", "10x0", "3x4x5", "10X8"} {
		if _, err := ParseDimensions(in); !errors.Is(err, ErrInvalidDimensions) {
			t.Fatalf("expected ErrInvalidDimensions for %q, got %v", in, err)
		}
	}
}

func TestMaxWordLength(t *testing.T) {
	d := Dimensions{Width: 10, Height: 8}
	if d.MaxWordLength() != 8 {
		t.Fatalf("expected 8, got %d", d.MaxWordLength())
	}
	if d.String() != "10x8" {
		t.Fatalf("unexpected string %q", d.String())
	}
}
