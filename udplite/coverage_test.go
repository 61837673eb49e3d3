// Copyright 2025 momentics@gmail.com
// License: Apache 2.0

package udplite

import (
	"errors"
	"testing"

	"github.com/momentics/hioload-udplite/api"
)

func TestCoverage_OptionValue(t *testing.T) {
	cases := []struct {
		in   Coverage
		want int
	}{
		{FullCoverage, 0},
		{PartialCoverage(0), 8},
		{PartialCoverage(8), 16},
		{PartialCoverage(MaxCoverage), 0xffff},
	}
	for _, tc := range cases {
		got, err := tc.in.optionValue()
		if err != nil {
			t.Fatalf("optionValue(%v): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("optionValue(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}

	if _, err := PartialCoverage(MaxCoverage + 1).optionValue(); !errors.Is(err, api.ErrInvalidArgument) {
		t.Errorf("coverage above MaxCoverage: got %v, want ErrInvalidArgument", err)
	}
}

func TestCoverage_FromOption(t *testing.T) {
	cases := []struct {
		in   int
		want Coverage
	}{
		{0, FullCoverage},
		{8, PartialCoverage(0)},
		{108, PartialCoverage(100)},
		{0xffff, PartialCoverage(MaxCoverage)},
	}
	for _, tc := range cases {
		got, err := coverageFromOption(tc.in)
		if err != nil {
			t.Fatalf("coverageFromOption(%d): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("coverageFromOption(%d) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []int{1, 7, -1, 0x10000} {
		if _, err := coverageFromOption(bad); !errors.Is(err, api.ErrInvalidCoverage) {
			t.Errorf("coverageFromOption(%d): got %v, want ErrInvalidCoverage", bad, err)
		}
	}
}

func TestParseCoverage(t *testing.T) {
	for _, s := range []string{"", "full", "FULL", " full "} {
		c, err := ParseCoverage(s)
		if err != nil || !c.IsFull() {
			t.Errorf("ParseCoverage(%q) = %v, %v; want full", s, c, err)
		}
	}

	c, err := ParseCoverage("12")
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := c.Bytes(); !ok || n != 12 {
		t.Errorf("ParseCoverage(12) = %v", c)
	}
	if c.String() != "12" {
		t.Errorf("String() = %q", c.String())
	}

	for _, bad := range []string{"-1", "abc", "65528", "70000"} {
		if _, err := ParseCoverage(bad); !errors.Is(err, api.ErrInvalidArgument) {
			t.Errorf("ParseCoverage(%q): got %v, want ErrInvalidArgument", bad, err)
		}
	}
}
