package store

import (
	"testing"

	"atelier/internal/models"
)

func TestArchiveCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewArchiveStore(db)
	t.Cleanup(func() { cleanArchives(t, db, "test-granary-restoration") })

	created, err := s.Create(&models.ArchiveProject{
		Slug:             "test-granary-restoration",
		Title:            "Granary Restoration",
		OriginalYear:     intPtr(1887),
		InterventionYear: intPtr(2015),
		InterventionType: strPtr("adaptive reuse"),
		Constraints:      strPtr("listed facade, no exterior changes"),
		Status:           models.StatusPublished,
		Images: []models.Image{
			{URL: "https://img.example.com/granary.jpg", Alt: "Before and after"},
		},
	})
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}

	if created.PublishedAt == nil {
		t.Error("publishing at creation should stamp published_at")
	}
	if created.Constraints == nil || *created.Constraints != "listed facade, no exterior changes" {
		t.Errorf("constraints: got %v", created.Constraints)
	}

	pub, err := s.FindPublishedBySlug("test-granary-restoration")
	if err != nil {
		t.Fatalf("find published: %v", err)
	}
	if pub == nil || len(pub.Images) != 1 {
		t.Fatalf("public lookup: got %+v", pub)
	}
}

// Archives keep their own slug namespace. A project with the same slug
// must not force a suffix on the archive side.
func TestArchiveSlugNamespaceIndependent(t *testing.T) {
	db := testDB(t)
	projects := NewProjectStore(db)
	archives := NewArchiveStore(db)
	t.Cleanup(func() {
		cleanProjects(t, db, "test-shared-slug")
		cleanArchives(t, db, "test-shared-slug")
	})

	p, err := projects.Create(&models.Project{
		Slug: "test-shared-slug", Title: "Shared Slug Project", Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	a, err := archives.Create(&models.ArchiveProject{
		Slug: "test-shared-slug", Title: "Shared Slug Archive", Status: models.StatusDraft,
	})
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}

	if p.Slug != "test-shared-slug" || a.Slug != "test-shared-slug" {
		t.Errorf("namespaces collided: project %q, archive %q", p.Slug, a.Slug)
	}
}

func TestArchiveNormalizedSlugLookup(t *testing.T) {
	db := testDB(t)
	s := NewArchiveStore(db)
	t.Cleanup(func() { cleanArchives(t, db, "test-mill-house") })

	if _, err := s.Create(&models.ArchiveProject{
		Slug: "test-mill-house", Title: "Mill House", Status: models.StatusPublished,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A noisy slug resolves through normalization.
	found, err := s.FindPublishedBySlug("Test Mill House")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil {
		t.Error("normalized lookup should find the entry")
	}
}
