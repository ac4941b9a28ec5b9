package cmd

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"42.50", 4250},
		{"42", 4200},
		{"0.05", 5},
		{"$1,234.56", 123456},
		{".99", 99},
		{"42.5", 4250},
		{"-12.00", -1200},
	}

	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if err != nil {
			t.Errorf("parseAmount(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1.234", "12.x5"} {
		if _, err := parseAmount(in); err == nil {
			t.Errorf("parseAmount(%q) error = nil, want error", in)
		}
	}
}
