package ratings

import (
	"context"
	"testing"
)

func TestRepository_BorrowAndReturn(t *testing.T) {
	repo := NewRepository()

	repo.BorrowBook("u1", "b1")
	if got := repo.Rating("u1", "b1"); got != BorrowRating {
		t.Errorf("rating after borrow = %v, want %v", got, BorrowRating)
	}

	repo.ReturnBook("u1", "b1")
	if got := repo.Rating("u1", "b1"); got != 0 {
		t.Errorf("rating after return = %v, want 0", got)
	}

	// 后写覆盖
	repo.AddRating("u1", "b1", 3)
	repo.AddRating("u1", "b1", 4)
	if got := repo.Rating("u1", "b1"); got != 4 {
		t.Errorf("rating after overwrite = %v, want 4", got)
	}
}

func TestRepository_EnsureUser(t *testing.T) {
	repo := NewRepository()
	repo.EnsureUser("newbie")

	if !repo.HasUser("newbie") {
		t.Fatal("user missing after EnsureUser")
	}

	snap, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if !snap.Has("newbie") {
		t.Error("user with empty ratings missing from snapshot")
	}
	if len(snap.User("newbie")) != 0 {
		t.Errorf("ratings = %v, want empty", snap.User("newbie"))
	}
}

func TestRepository_SnapshotIsolation(t *testing.T) {
	repo := NewRepository()
	repo.AddRating("u1", "b1", 5)

	snap, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}

	// 快照捕获后仓库继续写入，不得影响已发出的快照
	repo.AddRating("u1", "b1", 1)
	repo.AddRating("u1", "b2", 3)
	repo.AddRating("u2", "b1", 4)

	if got := snap.Rating("u1", "b1"); got != 5 {
		t.Errorf("snapshot rating = %v, want 5 (pre-mutation value)", got)
	}
	if snap.Has("u2") {
		t.Error("user added after snapshot must not appear in it")
	}
	if len(snap.User("u1")) != 1 {
		t.Errorf("snapshot user ratings = %v, want only b1", snap.User("u1"))
	}
}
