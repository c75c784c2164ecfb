package credentials_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wedvenue/wedvenue-client/credentials"
	clienterrors "github.com/wedvenue/wedvenue-client/internal/errors"
	"github.com/wedvenue/wedvenue-client/session"
)

func testRecord() session.Record {
	return session.Record{
		Identity: &session.Identity{
			ID:       "user-1",
			Email:    "jane@example.com",
			FullName: "Jane Doe",
			Role:     session.RoleUser,
		},
		Token:     "abc",
		LoginTime: time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo, err := credentials.NewFileRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecord()))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, testRecord(), loaded)
	require.True(t, loaded.Complete())
}

func TestLoadMissingFileReturnsEmptyRecord(t *testing.T) {
	repo, err := credentials.NewFileRepo(t.TempDir())
	require.NoError(t, err)

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err, "a first run has nothing stored, which is fine")
	require.True(t, loaded.Empty())
}

func TestSaveOverwrites(t *testing.T) {
	repo, err := credentials.NewFileRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecord()))

	updated := testRecord()
	updated.Token = "def"
	require.NoError(t, repo.Save(ctx, updated))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "def", loaded.Token)
}

func TestSaveCreatesDataDirectory(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "state")
	repo, err := credentials.NewFileRepo(dataDir)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), testRecord()))

	info, err := os.Stat(filepath.Join(dataDir, credentials.StorageFileName))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestClearRemovesRecord(t *testing.T) {
	repo, err := credentials.NewFileRepo(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecord()))
	require.NoError(t, repo.Clear(ctx))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.True(t, loaded.Empty())

	// Clearing again is a no-op, not an error.
	require.NoError(t, repo.Clear(ctx))
}

func TestPassphraseRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	repo, err := credentials.NewFileRepo(dataDir, credentials.WithPassphrase("correct horse"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testRecord()))

	// The raw file must not leak the token.
	raw, err := os.ReadFile(filepath.Join(dataDir, credentials.StorageFileName))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "abc")
	require.NotContains(t, string(raw), "jane@example.com")

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, testRecord(), loaded)
}

func TestWrongPassphraseFailsDecryption(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	writer, err := credentials.NewFileRepo(dataDir, credentials.WithPassphrase("correct horse"))
	require.NoError(t, err)
	require.NoError(t, writer.Save(ctx, testRecord()))

	reader, err := credentials.NewFileRepo(dataDir, credentials.WithPassphrase("battery staple"))
	require.NoError(t, err)

	_, err = reader.Load(ctx)
	require.ErrorIs(t, err, clienterrors.ErrDecryptionFailed)
}

func TestPlaintextFileRejectedWhenSealed(t *testing.T) {
	dataDir := t.TempDir()
	ctx := context.Background()

	plain, err := credentials.NewFileRepo(dataDir)
	require.NoError(t, err)
	require.NoError(t, plain.Save(ctx, testRecord()))

	sealed, err := credentials.NewFileRepo(dataDir, credentials.WithPassphrase("correct horse"))
	require.NoError(t, err)

	_, err = sealed.Load(ctx)
	require.ErrorIs(t, err, clienterrors.ErrDecryptionFailed)
}

func TestRequiresDataDirectory(t *testing.T) {
	_, err := credentials.NewFileRepo("")
	require.Error(t, err)
}
