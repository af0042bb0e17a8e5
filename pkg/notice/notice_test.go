package notice

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeReader map[string]string

func (f fakeReader) Read(_ context.Context, location string) ([]byte, error) {
	s, ok := f[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(s), nil
}

type memFlags struct {
	date string
	err  error
}

func (m *memFlags) LastNoticeDate() (string, error) {
	return m.date, m.err
}

func (m *memFlags) SetLastNoticeDate(date string) error {
	if m.err != nil {
		return m.err
	}
	m.date = date
	return nil
}

func TestLoad(t *testing.T) {
	r := fakeReader{
		"notice.json": `{"date":"2024-06-01","notice":"New seeds added"}`,
		"empty.json":  `{"date":"2024-06-01","notice":"  "}`,
		"bad.json":    `{"date":`,
	}
	ctx := context.Background()

	n, err := Load(ctx, r, "notice.json")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(&Notice{Date: "2024-06-01", Notice: "New seeds added"}, n); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}

	for _, loc := range []string{"", "empty.json"} {
		if n, err := Load(ctx, r, loc); n != nil || err != nil {
			t.Errorf("Load(%q) = %v, %v; want nothing", loc, n, err)
		}
	}
	for _, loc := range []string{"bad.json", "missing.json"} {
		if _, err := Load(ctx, r, loc); err == nil {
			t.Errorf("Load(%q) should fail", loc)
		}
	}
}

func TestPendingAndDismiss(t *testing.T) {
	n := &Notice{Date: "2024-06-01", Notice: "hello"}
	flags := &memFlags{}

	if !Pending(n, flags) {
		t.Fatal("fresh notice should be pending")
	}
	if err := Dismiss(flags, n); err != nil {
		t.Fatal(err)
	}
	if Pending(n, flags) {
		t.Error("dismissed notice should not be pending")
	}

	newer := &Notice{Date: "2024-07-01", Notice: "more"}
	if !Pending(newer, flags) {
		t.Error("a notice with a new date should be pending again")
	}
}

func TestPendingEdgeCases(t *testing.T) {
	n := &Notice{Date: "d", Notice: "x"}
	if Pending(nil, &memFlags{}) {
		t.Error("nil notice is never pending")
	}
	if !Pending(n, nil) {
		t.Error("without flags every notice is pending")
	}
	broken := &memFlags{date: "d", err: errors.New("disk")}
	if !Pending(n, broken) {
		t.Error("unreadable flags count as never dismissed")
	}
	if err := Dismiss(broken, n); err == nil {
		t.Error("Dismiss should surface store errors")
	}
}
