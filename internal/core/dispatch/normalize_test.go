package dispatch

import "testing"

func TestNormalizeToken(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"als", "ALS"},
		{" E ", "E"},
		{"d-d", "DD"},
		{"BLS", "BLS"},
		{"hm!", "HM"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeToken(c.raw); got != c.want {
			t.Errorf("NormalizeToken(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestCanonicalStation_TrailingDigits(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"905", "905"},
		{"ST905", "905"},
		{"CO905", "905"},
		{"fire905", "905"},
		{"STA-905", "905"},
	}
	for _, c := range cases {
		if got := CanonicalStation(c.raw); got != c.want {
			t.Errorf("CanonicalStation(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestCanonicalStation_NoNumericKey(t *testing.T) {
	// Out-of-county spellings without a 3-digit tail keep the cleaned token.
	if got := CanonicalStation("JC-1"); got != "JC1" {
		t.Errorf("CanonicalStation(JC-1) = %q, want JC1", got)
	}
	if got := CanonicalStation("fire"); got != "FIRE" {
		t.Errorf("CanonicalStation(fire) = %q, want FIRE", got)
	}
}

func TestCanonicalStation_MergesSpellings(t *testing.T) {
	if CanonicalStation("ST924") != CanonicalStation("924") {
		t.Error("ST924 and 924 should canonicalize to the same key")
	}
}
