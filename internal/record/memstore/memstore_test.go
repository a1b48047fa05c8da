package memstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/linnemanlabs/sift/internal/feedback"
)

func TestStore_AppendAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	first, err := s.Append(ctx, "crash on login", feedback.CategoryBugs, 0.1)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	second, err := s.Append(ctx, "invoice wrong", feedback.CategoryBilling, 0.2)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if first.ID != 1 {
		t.Errorf("first ID = %d, want 1", first.ID)
	}
	if second.ID != 2 {
		t.Errorf("second ID = %d, want 2", second.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("expected store-assigned CreatedAt")
	}
}

func TestStore_RecentNewestFirst(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := s.Append(ctx, fmt.Sprintf("text %d", i), feedback.CategoryBugs, 0.5); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []int64{5, 4, 3} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, want)
		}
	}
}

func TestStore_RecentLimitLargerThanSet(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	if _, err := s.Append(ctx, "only one", feedback.CategoryBilling, 0.9); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.Recent(ctx, 50)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestStore_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := s.Append(ctx, fmt.Sprintf("text %d", n), feedback.CategoryBugs, 0.5); err != nil {
				t.Errorf("Append: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
	seen := make(map[int64]bool, 20)
	for _, r := range got {
		if seen[r.ID] {
			t.Errorf("duplicate ID %d", r.ID)
		}
		seen[r.ID] = true
	}
}
