package lang

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestParseString_CacheReturnsPrivateTrees(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()

	first, err := ParseString(ctx, "a + b")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	second, err := ParseString(ctx, "a + b")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if first == second {
		t.Fatal("cached parse returned the same tree twice")
	}

	// Modifying one result must not leak into later parses.
	first.(*BinaryOp).Left = NewIdentifier("z")

	third, err := ParseString(ctx, "a + b")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got, want := third.String(), "(a + b)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got, want := second.String(), "(a + b)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseString_CacheKeepsErrors(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	for range 2 {
		if _, err := ParseString(context.Background(), "1 +"); !errors.Is(err, ErrParse) {
			t.Errorf("expected ErrParse, got %v", err)
		}
	}
}

func TestParseString_CacheSeparatesOptions(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	ctx := context.Background()
	src := "((1))"

	if _, err := ParseString(ctx, src); err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if _, err := ParseString(ctx, src, WithMaxDepth(1)); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Errorf("expected ErrMaxDepthExceeded with tighter limit, got %v", err)
	}
}

func TestParseString_WithoutCache(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	n, err := ParseString(context.Background(), "x * 2", WithCache(false))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got, want := n.String(), "(x * 2)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	count := 0

	globalCache.Range(func(any, any) bool {
		count++

		return true
	})

	if count != 0 {
		t.Errorf("cache holds %d entries, want 0", count)
	}
}

func TestParseString_CacheConcurrent(t *testing.T) {
	ClearCache()
	t.Cleanup(ClearCache)

	const workers = 32

	var wg sync.WaitGroup

	results := make([]string, workers)

	for i := range workers {
		wg.Go(func() {
			n, err := ParseString(context.Background(), "(p - q) / 2")
			if err != nil {
				t.Errorf("parse error: %v", err)

				return
			}

			results[i] = n.String()
		})
	}

	wg.Wait()

	for i, got := range results {
		if want := "((p - q) / 2)"; got != want {
			t.Errorf("worker %d: String() = %q, want %q", i, got, want)
		}
	}
}
