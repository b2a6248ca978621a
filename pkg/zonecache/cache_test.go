package zonecache

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestCacheLoadsOnce(t *testing.T) {
	calls := 0
	c := New(16, func(name string) (*time.Location, error) {
		calls++
		return time.FixedZone(name, 3600), nil
	}, nil)

	for range 5 {
		loc, err := c.Get("Test/Zone")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if loc.String() != "Test/Zone" {
			t.Errorf("Get() = %v, want Test/Zone", loc)
		}
	}

	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
	stats := c.Stats()
	if stats["hits"] != 4 || stats["misses"] != 1 {
		t.Errorf("Stats() = %v, want 4 hits and 1 miss", stats)
	}
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	errBoom := errors.New("boom")
	calls := 0
	c := New(16, func(string) (*time.Location, error) {
		calls++
		return nil, errBoom
	}, nil)

	for range 3 {
		if _, err := c.Get("Nowhere/Land"); !errors.Is(err, errBoom) {
			t.Fatalf("Get() error = %v, want %v", err, errBoom)
		}
	}
	if calls != 3 {
		t.Errorf("loader called %d times, want 3", calls)
	}
}

func TestCacheInvalidate(t *testing.T) {
	calls := 0
	c := New(16, func(name string) (*time.Location, error) {
		calls++
		return time.UTC, nil
	}, nil)

	if _, err := c.Get("UTC"); err != nil {
		t.Fatal(err)
	}
	c.Invalidate("UTC")
	if _, err := c.Get("UTC"); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("loader called %d times after invalidate, want 2", calls)
	}
}

func TestDefaultLoader(t *testing.T) {
	c := New(0, nil, nil)
	loc, err := c.Get("UTC")
	if err != nil {
		t.Fatalf("Get(UTC) error = %v", err)
	}
	if loc != time.UTC && loc.String() != "UTC" {
		t.Errorf("Get(UTC) = %v", loc)
	}
}

func TestNilLoggerFollowsDefault(t *testing.T) {
	// Created before the default logger changes, as package-level caches are.
	c := New(16, func(name string) (*time.Location, error) {
		return time.FixedZone(name, 0), nil
	}, nil)

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if _, err := c.Get("Asia/Tokyo"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "location cached") {
		t.Errorf("default logger output = %q, want a location cached line", buf.String())
	}
}
