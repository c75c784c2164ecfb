package fakecredentialsrepo

import (
	"context"
	"sync"
	"time"

	"github.com/wedvenue/wedvenue-client/session"
)

var _ session.Repo = (*FakeCredentialsRepo)(nil)

// FakeCredentialsRepo is an in-memory credentials repository for tests.
// LoadDelay simulates slow hydration; the error fields inject failures.
type FakeCredentialsRepo struct {
	lock sync.RWMutex
	rec  session.Record

	LoadDelay time.Duration
	LoadErr   error
	SaveErr   error
	ClearErr  error

	loads  int
	saves  int
	clears int
}

func NewFakeCredentialsRepo() *FakeCredentialsRepo {
	return &FakeCredentialsRepo{}
}

// Seed sets the persisted record directly, bypassing Save accounting.
func (fr *FakeCredentialsRepo) Seed(rec session.Record) {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	fr.rec = rec
}

func (fr *FakeCredentialsRepo) Load(ctx context.Context) (session.Record, error) {
	if fr.LoadDelay > 0 {
		select {
		case <-ctx.Done():
			return session.Record{}, ctx.Err()
		case <-time.After(fr.LoadDelay):
		}
	}

	fr.lock.Lock()
	defer fr.lock.Unlock()
	fr.loads++
	if fr.LoadErr != nil {
		return session.Record{}, fr.LoadErr
	}
	return fr.rec, nil
}

func (fr *FakeCredentialsRepo) Save(ctx context.Context, rec session.Record) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	fr.saves++
	if fr.SaveErr != nil {
		return fr.SaveErr
	}
	fr.rec = rec
	return nil
}

func (fr *FakeCredentialsRepo) Clear(ctx context.Context) error {
	fr.lock.Lock()
	defer fr.lock.Unlock()
	fr.clears++
	if fr.ClearErr != nil {
		return fr.ClearErr
	}
	fr.rec = session.Record{}
	return nil
}

// Stored returns the currently persisted record.
func (fr *FakeCredentialsRepo) Stored() session.Record {
	fr.lock.RLock()
	defer fr.lock.RUnlock()
	return fr.rec
}

// Counts returns how many Load/Save/Clear calls the repo has seen.
func (fr *FakeCredentialsRepo) Counts() (loads, saves, clears int) {
	fr.lock.RLock()
	defer fr.lock.RUnlock()
	return fr.loads, fr.saves, fr.clears
}
