package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/gatherly/app/internal/models"
)

func TestPostsByUserNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	alice := createTestUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 5; i++ {
		post := &models.Post{
			Body:      fmt.Sprintf("post-%d", i),
			UserID:    alice.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.CreatePost(post); err != nil {
			t.Fatalf("create post: %v", err)
		}
	}

	page1, err := repo.PostsByUser(alice.ID, 1, 3)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page1.Posts) != 3 {
		t.Fatalf("page 1 has %d posts, want 3", len(page1.Posts))
	}
	if page1.Posts[0].Body != "post-5" {
		t.Errorf("first post = %q, want post-5", page1.Posts[0].Body)
	}
	if !page1.HasNext() || page1.HasPrev() {
		t.Errorf("page 1 HasNext=%v HasPrev=%v, want true/false", page1.HasNext(), page1.HasPrev())
	}

	page2, err := repo.PostsByUser(alice.ID, 2, 3)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2.Posts) != 2 {
		t.Fatalf("page 2 has %d posts, want 2", len(page2.Posts))
	}
	if page2.Posts[len(page2.Posts)-1].Body != "post-1" {
		t.Errorf("last post = %q, want post-1", page2.Posts[len(page2.Posts)-1].Body)
	}
	if page2.HasNext() {
		t.Error("page 2 should be the last page")
	}
}

func TestPostsByUserScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPostRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := repo.CreatePost(&models.Post{Body: "mine", UserID: alice.ID}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	page, err := repo.PostsByUser(bob.ID, 1, 10)
	if err != nil {
		t.Fatalf("PostsByUser: %v", err)
	}
	if len(page.Posts) != 0 {
		t.Errorf("bob has %d posts, want 0", len(page.Posts))
	}
}
