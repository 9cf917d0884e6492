package plate

import (
	"errors"
	"testing"
)

func TestNormalize_AcceptedForms(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"1234 ab AB",
		"1234-ab-AB",
		"1234abAB",
		"1234ABab",
		" 1234 - AB - ab ",
		"1234\tab\nAB",
	}

	for _, in := range inputs {
		got, err := Normalize(in)
		if err != nil {
			t.Errorf("Normalize(%q): unexpected error: %v", in, err)
			continue
		}
		if got != "1234abAB" {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, "1234abAB")
		}
	}
}

func TestNormalize_Rejected(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"12ab",
		"1234abABC",
		"123abcAB",
		"abcd12AB",
		"1234a1AB",
		"1234abA1",
		"1234_abAB",
		"1234абAB", // cyrillic letters
	}

	for _, in := range inputs {
		got, err := Normalize(in)
		if !errors.Is(err, ErrInvalidPlateFormat) {
			t.Errorf("Normalize(%q) = %q, %v; want ErrInvalidPlateFormat", in, got, err)
		}
	}
}

func TestFormatForDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1234abAB", "1234 ab AB"},
		{"1234ABab", "1234 ab AB"},
		{"1234-ab-AB", "1234 ab AB"},
		{"bad", "bad"},
		{"", ""},
		{"12345678", "12345678"},
		{"1234 ab", "1234 ab"},
	}

	for _, tt := range tests {
		if got := FormatForDisplay(tt.in); got != tt.want {
			t.Errorf("FormatForDisplay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	t.Parallel()

	if !IsCanonical("1234abAB") {
		t.Error("expected 1234abAB to be canonical")
	}
	if IsCanonical("1234 ab AB") {
		t.Error("expected display form not to be canonical")
	}
}
