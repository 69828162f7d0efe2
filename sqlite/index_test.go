package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/foxmark"
	"github.com/fwojciec/foxmark/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upsertDoc(t *testing.T, ix *sqlite.Index, doc *foxmark.IndexDoc) {
	t.Helper()
	require.NoError(t, ix.Upsert(context.Background(), doc))
}

func TestIndex_Query(t *testing.T) {
	t.Parallel()

	t.Run("title match outranks body match", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)
		ctx := context.Background()

		upsertDoc(t, ix, &foxmark.IndexDoc{
			ID: 1, Title: "Cooking notes", BodyClean: "sqlite mentioned once here",
		})
		upsertDoc(t, ix, &foxmark.IndexDoc{
			ID: 2, Title: "SQLite internals", BodyClean: "all about the database",
		})

		ids, err := ix.Query(ctx, "sqlite", foxmark.SearchOptions{Match: foxmark.MatchAll})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 1}, ids)
	})

	t.Run("all mode requires every term", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)
		ctx := context.Background()

		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 1, BodyClean: "go concurrency patterns"})
		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 2, BodyClean: "go garbage collection"})

		ids, err := ix.Query(ctx, "go concurrency", foxmark.SearchOptions{Match: foxmark.MatchAll})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids)
	})

	t.Run("any mode matches either term", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)
		ctx := context.Background()

		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 1, BodyClean: "go concurrency patterns"})
		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 2, BodyClean: "rust ownership"})

		ids, err := ix.Query(ctx, "concurrency ownership", foxmark.SearchOptions{Match: foxmark.MatchAny})
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})

	t.Run("phrase mode requires adjacency", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)
		ctx := context.Background()

		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 1, BodyClean: "the quick brown fox"})
		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 2, BodyClean: "quick but not brown at all fox"})

		ids, err := ix.Query(ctx, "quick brown", foxmark.SearchOptions{Match: foxmark.MatchPhrase})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids)
	})

	t.Run("terms with query-syntax characters read as literals", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)
		ctx := context.Background()

		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 1, URI: "http://example.com/a-b", BodyClean: "page"})

		ids, err := ix.Query(ctx, "a-b", foxmark.SearchOptions{Match: foxmark.MatchAll})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids)
	})

	t.Run("max age restricts to recently modified documents", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)
		ctx := context.Background()
		now := time.Now().Unix()

		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 1, BodyClean: "fresh page", Modified: now - 60})
		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 2, BodyClean: "stale page", Modified: now - 7200})

		ids, err := ix.Query(ctx, "page", foxmark.SearchOptions{
			Match:  foxmark.MatchAll,
			MaxAge: time.Hour,
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids)
	})

	t.Run("attribute sort orders by the named column", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)
		ctx := context.Background()

		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 1, BodyClean: "page", Modified: 100})
		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 2, BodyClean: "page", Modified: 300})
		upsertDoc(t, ix, &foxmark.IndexDoc{ID: 3, BodyClean: "page", Modified: 200})

		ids, err := ix.Query(ctx, "page", foxmark.SearchOptions{
			Match: foxmark.MatchAll, Sort: foxmark.SortAttrDesc, SortAttr: "modified",
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3, 1}, ids)

		ids, err = ix.Query(ctx, "page", foxmark.SearchOptions{
			Match: foxmark.MatchAll, Sort: foxmark.SortAttrAsc, SortAttr: "modified",
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3, 2}, ids)
	})

	t.Run("rejects unknown sort attribute", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)

		_, err := ix.Query(context.Background(), "page", foxmark.SearchOptions{
			Match: foxmark.MatchAll, Sort: foxmark.SortAttrDesc, SortAttr: "tags; DROP TABLE marks",
		})
		require.Error(t, err)
		assert.Equal(t, foxmark.EINVALID, foxmark.ErrorCode(err))
	})

	t.Run("empty query matches nothing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)

		ids, err := ix.Query(context.Background(), "  ", foxmark.SearchOptions{Match: foxmark.MatchAll})
		require.NoError(t, err)
		assert.Empty(t, ids)
	})
}

func TestIndex_UpsertReplaces(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ix := sqlite.NewIndex(db)
	ctx := context.Background()

	upsertDoc(t, ix, &foxmark.IndexDoc{ID: 1, BodyClean: "original text"})
	upsertDoc(t, ix, &foxmark.IndexDoc{ID: 1, BodyClean: "replacement text"})

	ids, err := ix.Query(ctx, "original", foxmark.SearchOptions{Match: foxmark.MatchAll})
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = ix.Query(ctx, "replacement", foxmark.SearchOptions{Match: foxmark.MatchAll})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids)
}

func TestIndex_DeleteByID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ix := sqlite.NewIndex(db)
	ctx := context.Background()

	upsertDoc(t, ix, &foxmark.IndexDoc{ID: 1, BodyClean: "some text"})
	require.NoError(t, ix.DeleteByID(ctx, 1))

	ids, err := ix.Query(ctx, "text", foxmark.SearchOptions{Match: foxmark.MatchAll})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestIndex_BuildExcerpts(t *testing.T) {
	t.Parallel()

	t.Run("highlights matches positionally", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)
		ctx := context.Background()

		bodies := []string{
			"a page all about sqlite indexing and nothing else",
			"this one never mentions the topic",
			"sqlite again, near the start",
		}
		excerpts, err := ix.BuildExcerpts(ctx, bodies, "sqlite", foxmark.DefaultExcerptConfig())
		require.NoError(t, err)
		require.Len(t, excerpts, 3)

		assert.Contains(t, excerpts[0], "<b>sqlite</b>")
		assert.Empty(t, excerpts[1], "non-matching body yields empty excerpt")
		assert.Contains(t, excerpts[2], "<b>sqlite</b>")
	})

	t.Run("caps excerpt length", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)
		ctx := context.Background()

		cfg := foxmark.DefaultExcerptConfig()
		cfg.Limit = 20

		excerpts, err := ix.BuildExcerpts(ctx, []string{"sqlite is a long word in a long sentence"}, "sqlite", cfg)
		require.NoError(t, err)
		require.Len(t, excerpts, 1)
		assert.LessOrEqual(t, len([]rune(excerpts[0])), 20)
	})

	t.Run("no bodies yields no excerpts", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ix := sqlite.NewIndex(db)

		excerpts, err := ix.BuildExcerpts(context.Background(), nil, "sqlite", foxmark.DefaultExcerptConfig())
		require.NoError(t, err)
		assert.Empty(t, excerpts)
	})
}

func TestIndex_Seed(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewMarkService(db)
	ix := sqlite.NewIndex(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mark := mustRegister(t, svc, &foxmark.Mark{
			Title: fmt.Sprintf("Page %d", i),
			URI:   fmt.Sprintf("http://example.com/%d", i),
			Hash:  fmt.Sprintf("h%d", i),
		})
		require.NoError(t, svc.SaveSuccess(ctx, mark.ID, "body", "searchable body", ""))
	}

	// A stale entry from a previous seed disappears on rebuild.
	upsertDoc(t, ix, &foxmark.IndexDoc{ID: 99, BodyClean: "stale leftover"})

	count, err := ix.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	ids, err := ix.Query(ctx, "searchable", foxmark.SearchOptions{Match: foxmark.MatchAll})
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	ids, err = ix.Query(ctx, "leftover", foxmark.SearchOptions{Match: foxmark.MatchAll})
	require.NoError(t, err)
	assert.Empty(t, ids)
}
