package domain

import "fmt"

const (
	UsernameMinLen = 5
	UsernameMaxLen = 32
)

// ValidateUsername applies the registration username rules, in order:
// length between 5 and 32, only ASCII letters/digits/underscore, and at least
// one letter. Whitespace is deliberately not trimmed — surrounding spaces are
// invalid content and fail the character rule.
//
// The check is pure: no I/O, no normalisation of the input.
func ValidateUsername(raw string) error {
	if len(raw) < UsernameMinLen || len(raw) > UsernameMaxLen {
		return fmt.Errorf("%w: must be between %d and %d characters", ErrInvalidUsername, UsernameMinLen, UsernameMaxLen)
	}

	hasLetter := false
	for _, c := range raw {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9', c == '_':
		default:
			return fmt.Errorf("%w: only letters, digits and underscores are allowed", ErrInvalidUsername)
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: must contain at least one letter", ErrInvalidUsername)
	}

	return nil
}
