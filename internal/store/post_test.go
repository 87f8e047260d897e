package store

import (
	"testing"

	"atelier/internal/models"
)

func TestPostCreateAndSlugDedup(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	t.Cleanup(func() { cleanPosts(t, db, "test-net-zero-notes") })

	first, err := s.Create(&models.Post{
		Slug:   "test-net-zero-notes",
		Title:  "Net-Zero Notes",
		Tags:   []string{"Research", "research", "energy"},
		Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Slug != "test-net-zero-notes" {
		t.Errorf("slug: got %q", first.Slug)
	}
	if len(first.Tags) != 2 {
		t.Errorf("tags not normalized: %v", first.Tags)
	}
	if first.PublishedAt != nil {
		t.Error("draft should not carry published_at")
	}

	// Same base claims the next numeric suffix.
	second, err := s.Create(&models.Post{
		Slug:   "test-net-zero-notes",
		Title:  "Net-Zero Notes",
		Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.Slug != "test-net-zero-notes-2" {
		t.Errorf("dedup slug: got %q", second.Slug)
	}
}

func TestPostPublishLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	t.Cleanup(func() { cleanPosts(t, db, "test-timber-study") })

	post, err := s.Create(&models.Post{
		Slug:   "test-timber-study",
		Title:  "Timber Study",
		Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Drafts are invisible on the public path.
	if found, _ := s.FindPublishedBySlug("test-timber-study"); found != nil {
		t.Error("draft should not resolve publicly")
	}

	post.Status = models.StatusPublished
	published, err := s.Update(post)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("publish should stamp published_at")
	}
	stamped := *published.PublishedAt

	// Republishing preserves the original stamp.
	published.Title = "Timber Study, Revisited"
	again, err := s.Update(published)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if again.PublishedAt == nil || !again.PublishedAt.Equal(stamped) {
		t.Error("published_at should survive a published-state update")
	}

	// Messy public slugs resolve through normalization.
	if found, _ := s.FindPublishedBySlug("Test Timber Study"); found == nil {
		t.Error("normalized slug lookup failed")
	}

	// Unpublishing clears the stamp.
	again.Status = models.StatusDraft
	draft, err := s.Update(again)
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if draft.PublishedAt != nil {
		t.Error("reverting to draft should clear published_at")
	}
}

func TestPostListPublishedOrder(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	t.Cleanup(func() { cleanPosts(t, db, "test-journal-order") })

	older, err := s.Create(&models.Post{
		Slug:   "test-journal-order-a",
		Title:  "Journal Order A",
		Status: models.StatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	newer, err := s.Create(&models.Post{
		Slug:   "test-journal-order-b",
		Title:  "Journal Order B",
		Status: models.StatusPublished,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	posts, err := s.ListPublished()
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var gotNewer, gotOlder = -1, -1
	for i, p := range posts {
		switch p.ID {
		case newer.ID:
			gotNewer = i
		case older.ID:
			gotOlder = i
		}
	}
	if gotNewer == -1 || gotOlder == -1 {
		t.Fatal("published posts missing from listing")
	}
	if gotNewer > gotOlder {
		t.Error("listing should order newest publication first")
	}
}

func TestPostDelete(t *testing.T) {
	db := testDB(t)
	s := NewPostStore(db)
	t.Cleanup(func() { cleanPosts(t, db, "test-post-delete") })

	post, err := s.Create(&models.Post{
		Slug:   "test-post-delete",
		Title:  "Post Delete",
		Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Delete(post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if found, _ := s.FindByID(post.ID); found != nil {
		t.Error("deleted post still resolves")
	}
}
