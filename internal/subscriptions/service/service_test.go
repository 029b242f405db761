package service

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{from: "active", to: "cancelled", want: true},
		{from: "active", to: "past_due", want: true},
		{from: "past_due", to: "active", want: true},
		{from: "past_due", to: "cancelled", want: true},
		{from: "cancelled", to: "active", want: false},
		{from: "cancelled", to: "cancelled", want: false},
		{from: "unknown", to: "cancelled", want: false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
