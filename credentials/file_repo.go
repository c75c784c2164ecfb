// Package credentials persists the client's credential record across process
// restarts. The record layout belongs to the session package; this package
// only provides durable storage for it.
package credentials

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	clienterrors "github.com/wedvenue/wedvenue-client/internal/errors"
	"github.com/wedvenue/wedvenue-client/session"
)

// StorageFileName is the single namespaced record written under the data
// directory, read once at process start.
const StorageFileName = "auth-storage.json"

var _ session.Repo = (*FileRepo)(nil)

// FileRepo stores the credential record as a JSON file. Writes are atomic
// (temp file + rename) so a crash mid-write cannot leave a truncated record.
// With a passphrase configured the record is sealed with secretbox before it
// touches disk.
type FileRepo struct {
	path       string
	passphrase string
}

// FileRepoOption defines a function type to modify the FileRepo instance.
type FileRepoOption func(*FileRepo)

// WithPassphrase enables encryption at rest for the stored record.
func WithPassphrase(passphrase string) FileRepoOption {
	return func(fr *FileRepo) {
		fr.passphrase = passphrase
	}
}

// NewFileRepo creates a FileRepo rooted at the given data directory.
func NewFileRepo(dataDir string, options ...FileRepoOption) (*FileRepo, error) {
	if dataDir == "" {
		return nil, errors.New("[NewFileRepo] data directory is required")
	}

	fr := &FileRepo{path: filepath.Join(dataDir, StorageFileName)}
	for _, option := range options {
		option(fr)
	}
	return fr, nil
}

// Load reads the persisted record. A missing file is not an error: it means
// no credentials have ever been stored.
func (fr *FileRepo) Load(ctx context.Context) (session.Record, error) {
	data, err := os.ReadFile(fr.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Record{}, nil
		}
		return session.Record{}, clienterrors.Wrapf(err, "credentials load")
	}

	if fr.passphrase != "" {
		data, err = unseal(data, fr.passphrase)
		if err != nil {
			return session.Record{}, err
		}
	}

	var rec session.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return session.Record{}, clienterrors.Wrapf(err, "credentials load: decode %s", fr.path)
	}
	return rec, nil
}

// Save overwrites the persisted record atomically.
func (fr *FileRepo) Save(ctx context.Context, rec session.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return clienterrors.Wrapf(err, "credentials save: encode")
	}

	if fr.passphrase != "" {
		data, err = seal(data, fr.passphrase)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(fr.path), 0o700); err != nil {
		return clienterrors.Wrapf(err, "credentials save")
	}

	tmp, err := os.CreateTemp(filepath.Dir(fr.path), StorageFileName+".tmp-*")
	if err != nil {
		return clienterrors.Wrapf(err, "credentials save")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return clienterrors.Wrapf(err, "credentials save")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return clienterrors.Wrapf(err, "credentials save")
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return clienterrors.Wrapf(err, "credentials save")
	}
	if err := os.Rename(tmpName, fr.path); err != nil {
		os.Remove(tmpName)
		return clienterrors.Wrapf(err, "credentials save")
	}
	return nil
}

// Clear removes the persisted record. Clearing an absent record is a no-op.
func (fr *FileRepo) Clear(ctx context.Context) error {
	if err := os.Remove(fr.path); err != nil && !os.IsNotExist(err) {
		return clienterrors.Wrapf(err, "credentials clear")
	}
	return nil
}
