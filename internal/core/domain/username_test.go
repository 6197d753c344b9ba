package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateUsername_Valid(t *testing.T) {
	names := []string{
		"Water_Bottle",
		"Water_Bottle123",
		"123Water_Bottle",
		"1234f",
		"alice12",
		"a2345",
		strings.Repeat("a", 32),
		"_a___",
	}
	for _, name := range names {
		if err := ValidateUsername(name); err != nil {
			t.Errorf("ValidateUsername(%q) = %v, want nil", name, err)
		}
	}
}

func TestValidateUsername_Length(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"four chars", "1234"},
		{"four letters", "abcd"},
		{"thirty-three chars", strings.Repeat("a", 33)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.raw)
			if !errors.Is(err, ErrInvalidUsername) {
				t.Errorf("ValidateUsername(%q) = %v, want ErrInvalidUsername", tt.raw, err)
			}
		})
	}
}

func TestValidateUsername_Charset(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"sql text", "DELETE * FROM accounts;"},
		{"inner space", "hello world"},
		{"leading space", "  falcon"},
		{"trailing space", "falcon  "},
		{"only spaces", "     "},
		{"dash", "ab-cde"},
		{"non-ascii letter", "héllo1"},
		{"emoji", "abc😀de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.raw)
			if !errors.Is(err, ErrInvalidUsername) {
				t.Errorf("ValidateUsername(%q) = %v, want ErrInvalidUsername", tt.raw, err)
			}
		})
	}
}

func TestValidateUsername_RequiresLetter(t *testing.T) {
	// Meets the length and charset rules but has no letter.
	for _, raw := range []string{"12345", "12345678", "_____", "_123_"} {
		if err := ValidateUsername(raw); !errors.Is(err, ErrInvalidUsername) {
			t.Errorf("ValidateUsername(%q) = %v, want ErrInvalidUsername", raw, err)
		}
	}
}

func TestValidateUsername_Pure(t *testing.T) {
	// The validator must not normalise its input: a name that is valid after
	// trimming is still rejected as submitted.
	if err := ValidateUsername(" alice12 "); !errors.Is(err, ErrInvalidUsername) {
		t.Errorf("expected surrounding whitespace to be rejected, got %v", err)
	}
}
