package localflags

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetSet(t *testing.T) {
	s := openTemp(t)

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}
	if err := s.Set("a", "1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("a", "2"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("b", "x"); err != nil {
		t.Fatal(err)
	}

	v, ok, err := s.Get("a")
	if err != nil || !ok || v != "2" {
		t.Errorf("Get(a) = %q, %v, %v", v, ok, err)
	}

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	want := []Flag{{Key: "a", Value: "2"}, {Key: "b", Value: "x"}}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("a"); ok {
		t.Error("a should be deleted")
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetLastNoticeDate("2024-06-01"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.LastNoticeDate()
	if err != nil || got != "2024-06-01" {
		t.Errorf("LastNoticeDate = %q, %v", got, err)
	}
}

func TestTheme(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if got, err := s.Theme(); err != nil || got != ThemeLight {
		t.Fatalf("default theme = %q, %v", got, err)
	}
	next, err := s.ToggleTheme()
	if err != nil || next != ThemeDark {
		t.Fatalf("ToggleTheme = %q, %v", next, err)
	}
	if got, _ := s.Theme(); got != ThemeDark {
		t.Errorf("stored theme = %q, want dark", got)
	}
	if err := s.SetTheme("purple"); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("SetTheme(purple) err = %v", err)
	}

	// garbage in the table is treated as unset
	if err := s.Set(KeyTheme, "neon"); err != nil {
		t.Fatal(err)
	}
	if got, err := s.Theme(); err != nil || got != DefaultTheme {
		t.Errorf("theme with bad value = %q, %v", got, err)
	}
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{in: "light", want: ThemeLight},
		{in: " Dark ", want: ThemeDark},
		{in: "", wantErr: true},
		{in: "blue", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTheme(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle should flip between light and dark")
	}
}
