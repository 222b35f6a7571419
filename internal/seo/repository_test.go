package seo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/expertgati/movers-web/internal/platform/database"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func TestCreateOrGetSeedsFromDefaults(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	meta, err := repo.CreateOrGet(ctx, PageHome, DefaultBundle(PageHome))
	require.NoError(t, err)
	require.Equal(t, PageHome, meta.PageName)
	require.Equal(t, DefaultBundle(PageHome).MetaTitle, meta.MetaTitle)
	require.Equal(t, DefaultOGType, meta.OGType)
	require.Equal(t, DefaultTwitterCard, meta.TwitterCard)
	require.Equal(t, DefaultRobots, meta.Robots)
}

func TestCreateOrGetKeepsExistingRecord(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.CreateOrGet(ctx, PageRates, Bundle{MetaTitle: "original"})
	require.NoError(t, err)

	second, err := repo.CreateOrGet(ctx, PageRates, Bundle{MetaTitle: "replacement"})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "original", second.MetaTitle)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCreateOrGetRejectsBlankName(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.CreateOrGet(context.Background(), "  ", Bundle{})
	require.ErrorIs(t, err, ErrInvalidPageName)
}

func TestCreateOrGetConcurrentFirstRequests(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	const workers = 8
	ids := make([]uint, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			meta, err := repo.CreateOrGet(ctx, PageFAQs, DefaultBundle(PageFAQs))
			errs[i] = err
			if meta != nil {
				ids[i] = meta.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, ids[0], ids[i])
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCreateOrGetRereadsAfterLosingInsert(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	// Without the default transaction the competing row commits before the losing insert runs.
	repo.db = repo.db.Session(&gorm.Session{SkipDefaultTransaction: true})

	var winner PageMetadata
	fired := false
	err := repo.db.Callback().Create().Before("gorm:create").Register("test:competing_insert", func(tx *gorm.DB) {
		if fired || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "page_metadata" {
			return
		}
		fired = true
		winner = PageMetadata{PageName: PageOurCompany}
		Bundle{MetaTitle: "winner"}.applyTo(&winner)
		require.NoError(t, tx.Session(&gorm.Session{NewDB: true}).Create(&winner).Error)
	})
	require.NoError(t, err)

	meta, err := repo.CreateOrGet(ctx, PageOurCompany, Bundle{MetaTitle: "loser"})
	require.NoError(t, err)
	require.True(t, fired)
	require.Equal(t, winner.ID, meta.ID)
	require.Equal(t, "winner", meta.MetaTitle)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestGetByPageNameIsCaseSensitive(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.CreateOrGet(ctx, PageHome, DefaultBundle(PageHome))
	require.NoError(t, err)

	_, err = repo.GetByPageName(ctx, "home")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertManyCountsCreatedThenUpdated(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	result, err := repo.UpsertMany(ctx, DefaultBundles())
	require.NoError(t, err)
	require.Equal(t, SeedResult{Created: 7, Updated: 0}, result)

	result, err = repo.UpsertMany(ctx, DefaultBundles())
	require.NoError(t, err)
	require.Equal(t, SeedResult{Created: 0, Updated: 7}, result)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 7)
}

func TestUpsertManyOverwritesFields(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.CreateOrGet(ctx, PageBlog, DefaultBundle(PageBlog))
	require.NoError(t, err)

	result, err := repo.UpsertMany(ctx, []Bundle{{PageName: PageBlog, MetaTitle: "Fresh title", Robots: "noindex"}})
	require.NoError(t, err)
	require.Equal(t, 1, result.Updated)

	meta, err := repo.GetByPageName(ctx, PageBlog)
	require.NoError(t, err)
	require.Equal(t, "Fresh title", meta.MetaTitle)
	require.Equal(t, "noindex", meta.Robots)
	require.Empty(t, meta.OGTitle)
}

func TestUpsertManyRollsBackOnInvalidEntry(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.UpsertMany(ctx, []Bundle{{PageName: PageHome}, {PageName: ""}})
	require.ErrorIs(t, err, ErrInvalidPageName)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestUpdateMissingPage(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Update(context.Background(), "Nowhere", Bundle{MetaTitle: "x"})
	require.ErrorIs(t, err, ErrNotFound)
}
