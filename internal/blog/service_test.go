package blog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/expertgati/movers-web/internal/platform/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate())
	return NewService(repo)
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "packing-tips-for-2026", Slugify("  Packing Tips: for 2026! "))
	require.Equal(t, "", Slugify("---"))
}

func TestCreatePublishAndRender(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, Input{
		Title:        "Moving With Pets",
		BodyMarkdown: "# Hello\n\n<script>alert(1)</script>\n\n[link](https://example.com)",
	})
	require.NoError(t, err)
	require.Equal(t, "moving-with-pets", post.Slug)
	require.Nil(t, post.PublishedAt)

	_, err = svc.Published(ctx, post.Slug)
	require.ErrorIs(t, err, ErrNotFound)

	post, err = svc.Update(ctx, post.Slug, Input{Title: "Moving With Pets", BodyMarkdown: post.BodyMarkdown, Published: true})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)

	article, err := svc.Published(ctx, "moving-with-pets")
	require.NoError(t, err)
	html := string(article.BodyHTML)
	require.Contains(t, html, "<h1")
	require.NotContains(t, html, "<script>")
	require.Contains(t, html, `rel="nofollow"`)

	posts, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Title: "Rates explained"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Title: "Rates Explained"})
	require.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), Input{Title: strings.Repeat(" ", 3)})
	require.ErrorIs(t, err, ErrInvalidInput)
}
