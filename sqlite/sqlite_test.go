package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/foxmark"
	"github.com/fwojciec/foxmark/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

// mustRegister inserts a mark and returns it with its ID set.
func mustRegister(t *testing.T, svc *sqlite.MarkService, mark *foxmark.Mark) *foxmark.Mark {
	t.Helper()
	require.NoError(t, svc.Register(context.Background(), mark))
	require.NotZero(t, mark.ID)
	return mark
}
