package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dekarrin/mmtoolbox/internal/grammar"
	"github.com/dekarrin/mmtoolbox/internal/lrtable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLive builds the flattened TableData for g's canonical-LR(1) table,
// the same shape OpenSQLiteStore persists.
func buildLive(t *testing.T, g *grammar.Grammar) (*TableData, error) {
	t.Helper()
	live, err := lrtable.BuildCanonicalLR1(g)
	if err != nil {
		return nil, err
	}
	return BuildTableData(live, g), nil
}

func TestSQLiteStore_LoadMissReturnsFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parser-cache.db")
	st, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer st.Close()

	_, ok, err := st.Load(context.Background(), "no-such-digest")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_StoreThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parser-cache.db")
	st, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer st.Close()

	g, _ := buildArrowGrammar(t)
	table, buildErr := buildLive(t, g)
	require.NoError(t, buildErr)

	digest := Digest(g)
	ctx := context.Background()

	require.NoError(t, st.Store(ctx, digest, table))

	got, ok, err := st.Load(ctx, digest)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, table.Initial, got.Initial)
	assert.ElementsMatch(t, table.Actions, got.Actions)
	assert.ElementsMatch(t, table.Gotos, got.Gotos)
}

func TestSQLiteStore_StoreOverwritesExistingDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parser-cache.db")
	st, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer st.Close()

	g, _ := buildArrowGrammar(t)
	table, buildErr := buildLive(t, g)
	require.NoError(t, buildErr)

	digest := Digest(g)
	ctx := context.Background()

	require.NoError(t, st.Store(ctx, digest, table))

	modified := *table
	modified.Initial = modified.Initial + "-again"
	require.NoError(t, st.Store(ctx, digest, &modified))

	got, ok, err := st.Load(ctx, digest)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, modified.Initial, got.Initial)
}
