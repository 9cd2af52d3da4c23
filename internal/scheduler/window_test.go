package scheduler

import (
	"testing"
	"time"
)

func TestDateWindow_Shape(t *testing.T) {
	anchor := time.Date(2026, 1, 7, 14, 30, 0, 0, time.UTC)

	window := DateWindow(anchor, 15, 15)
	if len(window) != 31 {
		t.Fatalf("expected 31 entries, got %d", len(window))
	}
	if window[15].Key != "2026-01-07" {
		t.Errorf("expected anchor at index 15, got %s", window[15].Key)
	}

	for i := 1; i < len(window); i++ {
		if !window[i].Date.After(window[i-1].Date) {
			t.Errorf("window not strictly ascending at index %d", i)
		}
		if window[i].Date.Sub(window[i-1].Date) != 24*time.Hour {
			t.Errorf("gap at index %d: %v", i, window[i].Date.Sub(window[i-1].Date))
		}
	}
}

func TestDateWindow_KeysUnique(t *testing.T) {
	window := DateWindow(time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC), 15, 15)

	seen := make(map[string]bool, len(window))
	for _, day := range window {
		if seen[day.Key] {
			t.Errorf("duplicate key: %s", day.Key)
		}
		seen[day.Key] = true
	}
}

func TestDateWindow_CrossesMonthBoundary(t *testing.T) {
	anchor := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	window := DateWindow(anchor, 3, 0)
	want := []string{"2026-02-26", "2026-02-27", "2026-02-28", "2026-03-01"}
	for i, key := range want {
		if window[i].Key != key {
			t.Errorf("index %d: got %s, want %s", i, window[i].Key, key)
		}
	}
}

func TestDateWindow_ZeroRadius(t *testing.T) {
	anchor := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

	window := DateWindow(anchor, 0, 0)
	if len(window) != 1 {
		t.Fatalf("expected single entry, got %d", len(window))
	}
	if window[0].Key != "2026-01-07" {
		t.Errorf("got %s, want the anchor itself", window[0].Key)
	}
}
