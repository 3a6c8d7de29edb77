package contact

import "testing"

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"5551234567", "+15551234567", true},
		{"(555) 123-4567", "+15551234567", true},
		{"15551234567", "+15551234567", true},
		{"1-555-123-4567", "+15551234567", true},
		{"+15551234567", "+15551234567", true},
		{"+44 20 7946 0958", "+442079460958", true},
		{"", "", false},
		{"   ", "", false},
		{"not a phone", "", false},
		{"12345", "", false},
		{"555123456789", "", false},
	}
	for _, tc := range cases {
		got, ok := FormatPhone(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("FormatPhone(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
