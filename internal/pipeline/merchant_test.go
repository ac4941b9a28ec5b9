package pipeline

import "testing"

func TestNormalizeMerchant(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Starbucks", "starbucks"},
		{"  Starbucks  Inc.", "starbucks"},
		{"STARBUCKS INC", "starbucks"},
		{"Acme Holdings Ltd", "acme holdings"},
		{"Acme Holdings Ltd LLC", "acme holdings"},
		{"corner bistro", "corner bistro"},
		{"Trader Joe's", "trader joe's"},
		{"7-Eleven", "7-eleven"},
		// A bare legal word is a name, not a suffix.
		{"Ltd", "ltd"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeMerchant(tc.raw); got != tc.want {
			t.Errorf("NormalizeMerchant(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeMerchant_GroupsRepeatVisits(t *testing.T) {
	variants := []string{"Blue Bottle Coffee", "BLUE BOTTLE COFFEE", " blue  bottle   coffee ", "Blue Bottle Coffee, Inc."}
	want := NormalizeMerchant(variants[0])
	for _, v := range variants[1:] {
		if got := NormalizeMerchant(v); got != want {
			t.Errorf("NormalizeMerchant(%q) = %q, want %q", v, got, want)
		}
	}
}
