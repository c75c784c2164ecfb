package session

import (
	"context"
	"time"
)

// Record is the single namespaced durable record persisted by a credentials
// repository. It mirrors the in-memory Session field for field.
type Record struct {
	Identity  *Identity `json:"identity,omitempty"`
	Token     string    `json:"token,omitempty"`
	LoginTime time.Time `json:"login_time"`
}

// Empty reports whether the record holds no credential data at all.
func (r Record) Empty() bool {
	return r.Identity == nil && r.Token == "" && r.LoginTime.IsZero()
}

// Complete reports whether the record holds a full identity/token pair.
// Partial records (one without the other) must never become a live session.
func (r Record) Complete() bool {
	return r.Identity != nil && r.Token != ""
}

// Repo defines the interface for durable credential storage. The Manager
// treats the repository as a write-through cache, not a separate authority:
// all writes go through the Manager, and the repository is read exactly once
// per process, during hydration.
type Repo interface {
	// Load reads the persisted record. A store that has never been written
	// returns the zero Record and no error.
	Load(ctx context.Context) (Record, error)

	// Save overwrites the persisted record.
	Save(ctx context.Context, rec Record) error

	// Clear removes the persisted record. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
