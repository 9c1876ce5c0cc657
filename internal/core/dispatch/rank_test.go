package dispatch

import "testing"

func TestRank_Before(t *testing.T) {
	cases := []struct {
		name string
		a, b Rank
		want bool
	}{
		{"earlier known", KnownRank(1), KnownRank(3), true},
		{"later known", KnownRank(3), KnownRank(1), false},
		{"equal known", KnownRank(2), KnownRank(2), false},
		{"known beats unknown", KnownRank(9), UnknownRank, true},
		{"unknown never before known", UnknownRank, KnownRank(0), false},
		{"unknown never before unknown", UnknownRank, UnknownRank, false},
	}
	for _, c := range cases {
		if got := c.a.Before(c.b); got != c.want {
			t.Errorf("%s: Before = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestRank_String(t *testing.T) {
	if got := KnownRank(4).String(); got != "4" {
		t.Errorf("KnownRank(4).String() = %q, want 4", got)
	}
	if got := UnknownRank.String(); got != "-" {
		t.Errorf("UnknownRank.String() = %q, want -", got)
	}
}
