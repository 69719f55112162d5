package service

import (
	"context"
	"errors"
	"testing"

	"github.com/folio/portfolio-api/internal/core/domain"
	"github.com/folio/portfolio-api/internal/core/ports"
)

func seedPosts(repo *stubPostRepo) {
	repo.rows = []*domain.Post{
		{ID: "1", Slug: "first", Title: "First", Published: true, Tags: []string{"go"}},
		{ID: "2", Slug: "draft", Title: "Draft", Published: false, Tags: []string{"go"}},
		{ID: "3", Slug: "third", Title: "Third", Published: true, Tags: []string{"css"}},
	}
	repo.nextID = 3
}

func postInput(slug string) ports.PostInput {
	return ports.PostInput{
		Title:   "Hello",
		Slug:    slug,
		Excerpt: "short",
		Content: "long",
	}
}

// ---------------------------------------------------------------------------
// Public reads
// ---------------------------------------------------------------------------

func TestPostService_List_PublishedOnlyNewestFirst(t *testing.T) {
	repo := &stubPostRepo{}
	seedPosts(repo)
	svc := NewPostService(repo, nil, 0, discardLogger)

	items, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 published posts, got %d", len(items))
	}
	if items[0].Slug != "third" || items[1].Slug != "first" {
		t.Fatalf("expected newest first, got %q then %q", items[0].Slug, items[1].Slug)
	}
}

func TestPostService_List_TagFilterSkipsDrafts(t *testing.T) {
	repo := &stubPostRepo{}
	seedPosts(repo)
	svc := NewPostService(repo, nil, 0, discardLogger)

	items, err := svc.List(context.Background(), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "first" {
		t.Fatalf("expected only the published go post, got %#v", items)
	}

	items, err = svc.List(context.Background(), "rust")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
}

func TestPostService_List_Cached(t *testing.T) {
	repo := &stubPostRepo{}
	seedPosts(repo)
	cache := newMemoryCache()
	svc := NewPostService(repo, cache, 0, discardLogger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.List(ctx, "go"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("expected one store read, got %d", repo.listCalls)
	}

	// A different tag is a different cache entry.
	if _, err := svc.List(ctx, "css"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listCalls != 2 {
		t.Fatalf("expected a store read for a new tag, got %d", repo.listCalls)
	}
}

func TestPostService_List_WriteDuringFetchNotCached(t *testing.T) {
	repo := &stubPostRepo{}
	seedPosts(repo)
	cache := newMemoryCache()
	svc := NewPostService(repo, cache, 0, discardLogger)
	ctx := context.Background()

	// The admin unpublishes "first" after the reader's snapshot was taken
	// but before the reader writes it to the cache.
	repo.afterList = func() {
		repo.afterList = nil
		if _, err := svc.Update(ctx, "1", domain.PostPatch{Published: ptr(false)}); err != nil {
			t.Fatalf("unexpected update error: %v", err)
		}
	}

	stale, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stale) != 2 {
		t.Fatalf("expected the in-flight read to see its own snapshot, got %d posts", len(stale))
	}

	items, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range items {
		if p.Slug == "first" {
			t.Fatal("unpublished post served from a snapshot cached before the write")
		}
	}
	if repo.listCalls != 2 {
		t.Fatalf("expected the second list to read the store, got %d reads", repo.listCalls)
	}
}

func TestPostService_List_CacheReadFailureSkipsWrite(t *testing.T) {
	repo := &stubPostRepo{}
	seedPosts(repo)
	cache := newMemoryCache()
	cache.failGet = true
	svc := NewPostService(repo, cache, 0, discardLogger)

	if _, err := svc.List(context.Background(), ""); err != nil {
		t.Fatalf("expected cache failure to be absorbed, got %v", err)
	}
	if len(cache.entries) != 0 {
		t.Fatalf("a list read without a known generation must not be cached, got %d entries", len(cache.entries))
	}
}

func TestPostService_GetBySlug(t *testing.T) {
	repo := &stubPostRepo{}
	seedPosts(repo)
	svc := NewPostService(repo, nil, 0, discardLogger)
	ctx := context.Background()

	p, err := svc.GetBySlug(ctx, "first")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Title != "First" {
		t.Fatalf("unexpected post %q", p.Title)
	}

	if _, err := svc.GetBySlug(ctx, "draft"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected drafts to be hidden, got %v", err)
	}
	if _, err := svc.GetBySlug(ctx, "missing"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

func TestPostService_Create_DefaultsToDraft(t *testing.T) {
	repo := &stubPostRepo{}
	svc := NewPostService(repo, nil, 0, discardLogger)

	p, err := svc.Create(context.Background(), postInput("hello-world"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected store-assigned id")
	}
	if p.Published {
		t.Fatal("expected new posts to be drafts by default")
	}
	if p.Tags == nil {
		t.Fatal("expected tags to be an empty list")
	}
	if _, err := svc.GetBySlug(context.Background(), "hello-world"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected draft to be invisible, got %v", err)
	}
}

func TestPostService_Create_SlugConflictBeforeInsert(t *testing.T) {
	repo := &stubPostRepo{}
	seedPosts(repo)
	svc := NewPostService(repo, nil, 0, discardLogger)

	// Drafts reserve their slug too.
	_, err := svc.Create(context.Background(), postInput("draft"))
	if !errors.Is(err, domain.ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict, got %v", err)
	}
	if repo.creates != 0 {
		t.Fatal("expected no insert attempt after a slug conflict")
	}
}

func TestPostService_Create_RaceSurfacesConflict(t *testing.T) {
	repo := &stubPostRepo{createErr: domain.ErrSlugConflict}
	svc := NewPostService(repo, nil, 0, discardLogger)

	_, err := svc.Create(context.Background(), postInput("racy"))
	if !errors.Is(err, domain.ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict from the store, got %v", err)
	}
}

func TestPostService_Create_NoRowReturned(t *testing.T) {
	repo := &stubPostRepo{createNil: true}
	svc := NewPostService(repo, nil, 0, discardLogger)

	_, err := svc.Create(context.Background(), postInput("ghost"))
	if !errors.Is(err, domain.ErrPostCreateFailed) {
		t.Fatalf("expected ErrPostCreateFailed, got %v", err)
	}
}

func TestPostService_Update(t *testing.T) {
	repo := &stubPostRepo{}
	seedPosts(repo)
	cache := newMemoryCache()
	svc := NewPostService(repo, cache, 0, discardLogger)
	ctx := context.Background()

	if _, err := svc.Update(ctx, "2", domain.PostPatch{}); !errors.Is(err, domain.ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatal("expected store not to be touched for an empty patch")
	}

	p, err := svc.Update(ctx, "2", domain.PostPatch{Published: ptr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Published || p.UpdatedAt == nil {
		t.Fatalf("expected published post with updated_at, got %#v", p)
	}
	if cache.invalidated[postsNamespace] != 1 {
		t.Fatal("expected update to invalidate the post list cache")
	}
	if _, err := svc.GetBySlug(ctx, "draft"); err != nil {
		t.Fatalf("expected post to be public after publishing, got %v", err)
	}

	if _, err := svc.Update(ctx, "2", domain.PostPatch{Slug: ptr("first")}); !errors.Is(err, domain.ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict when renaming onto an existing slug, got %v", err)
	}
	if _, err := svc.Update(ctx, "99", domain.PostPatch{Title: ptr("x")}); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Delete(t *testing.T) {
	repo := &stubPostRepo{}
	seedPosts(repo)
	svc := NewPostService(repo, nil, 0, discardLogger)
	ctx := context.Background()

	if err := svc.Delete(ctx, "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, "1"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
