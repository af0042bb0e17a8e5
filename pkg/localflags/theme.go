package localflags

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTheme is returned by ParseTheme for unknown names.
var ErrInvalidTheme = errors.New("invalid theme")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeLight
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w %q: must be %s or %s", ErrInvalidTheme, s, ThemeLight, ThemeDark)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Theme returns the stored theme. Unset or unreadable values fall back to
// DefaultTheme.
func (s *Store) Theme() (Theme, error) {
	v, ok, err := s.Get(KeyTheme)
	if err != nil || !ok {
		return DefaultTheme, err
	}
	t, err := ParseTheme(v)
	if err != nil {
		return DefaultTheme, nil
	}
	return t, nil
}

func (s *Store) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return s.Set(KeyTheme, string(t))
}

// ToggleTheme flips the stored theme and returns the new value.
func (s *Store) ToggleTheme() (Theme, error) {
	current, err := s.Theme()
	if err != nil {
		return current, err
	}
	next := current.Toggle()
	if err := s.SetTheme(next); err != nil {
		return current, err
	}
	return next, nil
}
