package settings

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/capkit/internal/capability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store := NewFileStore(path)
	ctx := context.Background()

	want := Values{"theme": "dark", "lang": "en"}
	require.NoError(t, store.Persist(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	// A missing file is a genuine operation failure, distinct from an
	// unsupported operation.
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, capability.ErrUnsupported)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStore_LoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	want := Values{"theme": "dark", "volume": "7"}
	require.NoError(t, store.Persist(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLiteStore_PersistReplacesSnapshot(t *testing.T) {
	// Persist is a full replacement: keys absent from the new snapshot
	// are gone afterwards.
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	require.NoError(t, store.Persist(ctx, Values{"a": "1", "b": "2"}))
	require.NoError(t, store.Persist(ctx, Values{"b": "3"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Values{"b": "3"}, got)
}

func TestSQLiteStore_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage path is required")
}

func TestEnvStore_LoadPrefixed(t *testing.T) {
	t.Setenv("CAPKIT_TEST_THEME", "dark")
	t.Setenv("CAPKIT_TEST_LANG", "en")
	t.Setenv("UNRELATED", "x")

	got, err := NewEnvStore("CAPKIT_TEST_").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Values{"theme": "dark", "lang": "en"}, got)
}

func TestEnvStore_PersistIsUnsupported(t *testing.T) {
	err := NewEnvStore("CAPKIT_TEST_").Persist(context.Background(), Values{"a": "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, capability.ErrUnsupported)
}

func TestSync_BetweenConformingStores(t *testing.T) {
	dir := t.TempDir()
	src := NewFileStore(filepath.Join(dir, "src.json"))
	dst, err := OpenSQLite(filepath.Join(dir, "dst.db"))
	require.NoError(t, err)
	defer func() { _ = dst.Close() }()
	ctx := context.Background()

	want := Values{"theme": "dark"}
	require.NoError(t, src.Persist(ctx, want))
	require.NoError(t, Sync(ctx, dst, src, capability.FailUnsupported, discardLogger()))

	got, err := dst.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSync_SkipPolicyToleratesReadOnlyTarget(t *testing.T) {
	// Syncing into a read-only variant is skipped under SkipUnsupported,
	// and fails under FailUnsupported. The driver decides by policy, not
	// by inspecting the store's type.
	t.Setenv("CAPKIT_TEST_THEME", "dark")
	src := NewEnvStore("CAPKIT_TEST_")
	dst := NewEnvStore("CAPKIT_OTHER_")
	ctx := context.Background()

	assert.NoError(t, Sync(ctx, dst, src, capability.SkipUnsupported, discardLogger()))

	err := Sync(ctx, dst, src, capability.FailUnsupported, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, capability.ErrUnsupported)
}

func TestSync_LoadFailureAlwaysSurfaces(t *testing.T) {
	src := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	dst := NewFileStore(filepath.Join(t.TempDir(), "dst.json"))

	err := Sync(context.Background(), dst, src, capability.SkipUnsupported, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading settings")
}
