// Package notice loads the optional site announcement and tracks whether the
// user has already dismissed it.
package notice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"k8s.io/klog/v2"
)

type Notice struct {
	Date   string `json:"date" yaml:"date"`
	Notice string `json:"notice" yaml:"notice"`
}

// Reader fetches the raw notice document. *source.Reader satisfies it.
type Reader interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// Flags stores the date of the last dismissed notice.
// *localflags.Store satisfies it.
type Flags interface {
	LastNoticeDate() (string, error)
	SetLastNoticeDate(date string) error
}

// Load fetches the notice at location. A nil Notice with a nil error means
// there is nothing to show. Callers treat errors as "no notice".
func Load(ctx context.Context, r Reader, location string) (*Notice, error) {
	if strings.TrimSpace(location) == "" {
		return nil, nil
	}

	raw, err := r.Read(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load notice: %w", err)
	}

	var n Notice
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("parse notice: %w", err)
	}
	if strings.TrimSpace(n.Notice) == "" {
		return nil, nil
	}

	klog.FromContext(ctx).V(2).Info("notice loaded", "location", location, "date", n.Date)
	return &n, nil
}

// Pending reports whether n should be shown: its date differs from the last
// dismissed one. A flags read error counts as never dismissed.
func Pending(n *Notice, flags Flags) bool {
	if n == nil {
		return false
	}
	if flags == nil {
		return true
	}
	last, err := flags.LastNoticeDate()
	if err != nil {
		return true
	}
	return last != n.Date
}

// Dismiss records n as seen so Pending reports false until the date changes.
func Dismiss(flags Flags, n *Notice) error {
	if n == nil || flags == nil {
		return nil
	}
	if err := flags.SetLastNoticeDate(n.Date); err != nil {
		return fmt.Errorf("dismiss notice: %w", err)
	}
	return nil
}
