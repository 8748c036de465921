package util

import "testing"

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0},
		{1.015, 1.01},
		{2.675, 2.67},
		{10.999, 11.0},
		{0, 0},
		{-1.005, -1.0},
		{123.456, 123.46},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(10.50); err != nil {
		t.Errorf("valid amount rejected: %v", err)
	}
	if err := ValidateAmount(0); err == nil {
		t.Error("zero amount accepted")
	}
	if err := ValidateAmount(-5); err == nil {
		t.Error("negative amount accepted")
	}
	if err := ValidateAmount(10000000); err == nil {
		t.Error("amount above cap accepted")
	}
}

func TestValidateDate(t *testing.T) {
	if err := ValidateDate("2026-08-28"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	for _, bad := range []string{"", "28-08-2026", "2026-13-01", "2026-02-30", "today"} {
		if err := ValidateDate(bad); err == nil {
			t.Errorf("invalid date %q accepted", bad)
		}
	}
}

func TestValidateTime(t *testing.T) {
	if err := ValidateTime("09:30"); err != nil {
		t.Errorf("valid time rejected: %v", err)
	}
	for _, bad := range []string{"", "25:00", "9:75", "noon"} {
		if err := ValidateTime(bad); err == nil {
			t.Errorf("invalid time %q accepted", bad)
		}
	}
}
