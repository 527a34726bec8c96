package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"author@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"UPPER@EXAMPLE.COM", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"author@", false},
		{"author@example", false},
		{"author example@example.com", false},
	}

	for _, tc := range cases {
		if got := ValidateEmail(tc.email); got != tc.valid {
			t.Errorf("ValidateEmail(%q) = %v, want %v", tc.email, got, tc.valid)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if ok, msg := ValidatePassword("short"); ok || msg == "" {
		t.Errorf("short password accepted: ok=%v msg=%q", ok, msg)
	}
	if ok, msg := ValidatePassword("longenough"); !ok || msg != "" {
		t.Errorf("valid password rejected: ok=%v msg=%q", ok, msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"with\x00null", "withnull"},
		{"\x00 padded \x00", "padded"},
		{"clean", "clean"},
	}

	for _, tc := range cases {
		if got := SanitizeInput(tc.in); got != tc.want {
			t.Errorf("SanitizeInput(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
