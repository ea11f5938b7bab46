package library

import (
	"context"
	"testing"

	"github.com/rushteam/bookrec/core"
	"github.com/rushteam/bookrec/store"
)

type snapshotStore struct {
	snap core.RatingsSnapshot
}

func (s *snapshotStore) Name() string { return "test_ratings" }
func (s *snapshotStore) Snapshot(context.Context) (core.RatingsSnapshot, error) {
	return s.snap, nil
}

func TestLibrary_Recommendations(t *testing.T) {
	ctx := context.Background()

	ratings := &snapshotStore{snap: core.RatingsSnapshot{
		"Alice": {"b1": 5, "b2": 3},
		"Bob":   {"b1": 5, "b2": 3, "b3": 4},
		"Carl":  {"b3": 1},
	}}

	mem := store.NewMemoryStore()
	books := NewStoreBookAdapter(mem, "")
	if err := SeedBooks(ctx, books, []Book{
		{ID: "b1", Title: "Dune", Author: "Herbert", Genre: "sci-fi"},
		{ID: "b3", Title: "Foundation", Author: "Asimov", Genre: "sci-fi"},
	}); err != nil {
		t.Fatalf("SeedBooks error: %v", err)
	}

	lib := NewLibrary(ratings, books)
	recs, err := lib.Recommendations(ctx, "Alice", Options{Metric: "cosine"})
	if err != nil {
		t.Fatalf("Recommendations error: %v", err)
	}

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].Book.ID != "b3" || recs[0].Book.Title != "Foundation" {
		t.Errorf("book = %+v, want b3/Foundation", recs[0].Book)
	}
	if recs[0].Score != 4.0 {
		t.Errorf("score = %v, want 4.0", recs[0].Score)
	}
	if recs[0].MatchPercent != 100 {
		t.Errorf("match percent = %v, want 100", recs[0].MatchPercent)
	}
}

func TestLibrary_SkipsDanglingBookIDs(t *testing.T) {
	ctx := context.Background()

	// Bob 读过 b3 和 b4，但书目库里只有 b3
	ratings := &snapshotStore{snap: core.RatingsSnapshot{
		"Alice": {"b1": 5},
		"Bob":   {"b1": 5, "b3": 4, "b4": 2},
	}}

	mem := store.NewMemoryStore()
	books := NewStoreBookAdapter(mem, "")
	if err := SeedBooks(ctx, books, []Book{
		{ID: "b3", Title: "Foundation", Author: "Asimov"},
	}); err != nil {
		t.Fatalf("SeedBooks error: %v", err)
	}

	lib := NewLibrary(ratings, books)
	recs, err := lib.Recommendations(ctx, "Alice", Options{})
	if err != nil {
		t.Fatalf("Recommendations error: %v", err)
	}

	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1 (dangling b4 skipped)", len(recs))
	}
	if recs[0].Book.ID != "b3" {
		t.Errorf("book = %s, want b3", recs[0].Book.ID)
	}
}

func TestLibrary_MatchPercentRelativeToTop(t *testing.T) {
	ctx := context.Background()

	// sim(Alice, Bob) = 1（共同 b1 同分），b3 得 4.0、b4 得 2.0
	ratings := &snapshotStore{snap: core.RatingsSnapshot{
		"Alice": {"b1": 5},
		"Bob":   {"b1": 5, "b3": 4, "b4": 2},
	}}

	mem := store.NewMemoryStore()
	books := NewStoreBookAdapter(mem, "")
	if err := SeedBooks(ctx, books, []Book{
		{ID: "b3", Title: "Foundation"},
		{ID: "b4", Title: "Hyperion"},
	}); err != nil {
		t.Fatalf("SeedBooks error: %v", err)
	}

	lib := NewLibrary(ratings, books)
	recs, err := lib.Recommendations(ctx, "Alice", Options{})
	if err != nil {
		t.Fatalf("Recommendations error: %v", err)
	}

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	if recs[0].MatchPercent != 100 {
		t.Errorf("top match percent = %v, want 100", recs[0].MatchPercent)
	}
	if recs[1].MatchPercent != 50 {
		t.Errorf("second match percent = %v, want 50", recs[1].MatchPercent)
	}
}

func TestLibrary_UnknownUser(t *testing.T) {
	ctx := context.Background()
	ratings := &snapshotStore{snap: core.RatingsSnapshot{
		"Alice": {"b1": 5},
	}}
	lib := NewLibrary(ratings, NewStoreBookAdapter(store.NewMemoryStore(), ""))

	recs, err := lib.Recommendations(ctx, "ghost", Options{})
	if err != nil {
		t.Fatalf("Recommendations error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d recommendations for unknown user, want 0", len(recs))
	}
}
