package memstore

import (
	"context"
	"testing"

	"github.com/linnemanlabs/sift/internal/feedback"
	"github.com/linnemanlabs/sift/internal/pipeline"
)

func TestStore_PutAndGet(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	r := &pipeline.Run{ID: "r-1", InputText: "hello", Status: pipeline.StatusPending}
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := s.Get(ctx, "r-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected run to be found")
	}
	if got.InputText != "hello" {
		t.Errorf("InputText = %q, want %q", got.InputText, "hello")
	}
}

func TestStore_GetMissing(t *testing.T) {
	t.Parallel()

	s := New()
	_, ok, err := s.Get(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for missing ID")
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	cat := feedback.CategoryBilling
	r := &pipeline.Run{
		ID:       "r-2",
		Status:   pipeline.StatusScoring,
		Category: &cat,
		Attempts: map[pipeline.Step]int{pipeline.StepCategorize: 2},
	}
	if err := s.Put(ctx, r); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, _, err := s.Get(ctx, "r-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	*got.Category = feedback.CategoryBugs
	got.Attempts[pipeline.StepCategorize] = 99
	got.Status = pipeline.StatusFailed

	again, _, err := s.Get(ctx, "r-2")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if *again.Category != feedback.CategoryBilling {
		t.Errorf("category mutated through copy: %q", *again.Category)
	}
	if again.Attempts[pipeline.StepCategorize] != 2 {
		t.Errorf("attempts mutated through copy: %d", again.Attempts[pipeline.StepCategorize])
	}
	if again.Status != pipeline.StatusScoring {
		t.Errorf("status mutated through copy: %q", again.Status)
	}
}

func TestStore_ListByStatus(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := context.Background()
	for _, r := range []*pipeline.Run{
		{ID: "a", Status: pipeline.StatusFailed},
		{ID: "b", Status: pipeline.StatusComplete},
		{ID: "c", Status: pipeline.StatusFailed},
	} {
		if err := s.Put(ctx, r); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	failed, err := s.ListByStatus(ctx, pipeline.StatusFailed)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(failed) != 2 {
		t.Errorf("failed = %d, want 2", len(failed))
	}

	complete, err := s.ListByStatus(ctx, pipeline.StatusComplete)
	if err != nil {
		t.Fatalf("ListByStatus: %v", err)
	}
	if len(complete) != 1 {
		t.Errorf("complete = %d, want 1", len(complete))
	}
}
