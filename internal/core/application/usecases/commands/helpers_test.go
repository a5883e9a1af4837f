package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"activation/internal/core/application/usecases/commands"
	"activation/internal/core/domain/model/credential"
	"activation/internal/core/domain/model/kernel"
	"activation/internal/core/domain/model/order"
	"activation/internal/core/ports"
	"activation/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memOrderStore keeps snapshots and enforces the version check the database does.
type memOrderStore struct {
	mu     sync.Mutex
	orders map[kernel.UUID]order.Snapshot
	writes int
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: map[kernel.UUID]order.Snapshot{}}
}

func (s *memOrderStore) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID()] = o.Snapshot()
	return nil
}

func (s *memOrderStore) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return order.RestoreOrder(snap)
}

func (s *memOrderStore) CompareAndSet(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("orderID", o.ID())
	}
	if stored.Version != o.Version() {
		return ports.ErrConcurrentModification
	}
	snap := o.Snapshot()
	snap.Version = stored.Version + 1
	s.orders[o.ID()] = snap
	s.writes++
	return nil
}

func (s *memOrderStore) Delete(_ context.Context, ids []kernel.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := s.orders[id]; ok {
			delete(s.orders, id)
			n++
		}
	}
	return n, nil
}

func (s *memOrderStore) put(t *testing.T, snap order.Snapshot) {
	t.Helper()
	_, err := order.RestoreOrder(snap)
	require.NoError(t, err)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[snap.ID] = snap
}

func (s *memOrderStore) snapshot(id kernel.UUID) order.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[id]
}

func (s *memOrderStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type memCredentialStore struct {
	credentials map[int64]*credential.Credential
}

func (s *memCredentialStore) Add(_ context.Context, c *credential.Credential) error {
	s.credentials[c.ID()] = c
	return nil
}

func (s *memCredentialStore) Get(_ context.Context, id int64) (*credential.Credential, error) {
	c, ok := s.credentials[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("credentialID", id)
	}
	return c, nil
}

type memUoW struct {
	orders      *memOrderStore
	credentials *memCredentialStore
}

func (u *memUoW) Begin(context.Context) error    { return nil }
func (u *memUoW) Commit(context.Context) error   { return nil }
func (u *memUoW) Rollback(context.Context) error { return nil }

func (u *memUoW) OrderRepository() ports.OrderRepository {
	return u.orders
}

func (u *memUoW) CredentialRepository() ports.CredentialRepository {
	return u.credentials
}

type memUoWFactory struct {
	uow *memUoW
}

func (f memUoWFactory) Create() commands.OrderUoW {
	return f.uow
}

type MockProviderClient struct{ mock.Mock }

func (m *MockProviderClient) AcquireNumber(ctx context.Context, c *credential.Credential) (order.Lease, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(order.Lease), args.Error(1)
}

func (m *MockProviderClient) CheckCode(ctx context.Context, c *credential.Credential, externalID string) (string, error) {
	args := m.Called(ctx, c, externalID)
	return args.String(0), args.Error(1)
}

const testCredentialID int64 = 7

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memOrderStore
	factory  memUoWFactory
	provider *MockProviderClient
	now      time.Time
	cred     *credential.Credential
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cred, err := credential.NewCredential(testCredentialID, "ru-tg", "secret-token",
		"russia", "any", "telegram", credential.Display{CountryDisplayName: "Russia", CountryAreaCode: "+7"})
	require.NoError(t, err)

	store := newMemOrderStore()
	creds := &memCredentialStore{credentials: map[int64]*credential.Credential{cred.ID(): cred}}
	return &fixture{
		store:    store,
		factory:  memUoWFactory{uow: &memUoW{orders: store, credentials: creds}},
		provider: new(MockProviderClient),
		now:      testNow,
		cred:     cred,
	}
}

func (f *fixture) clock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return f.now })
}

func (f *fixture) newOrder(t *testing.T) kernel.UUID {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), testCredentialID)
	require.NoError(t, err)
	require.NoError(t, f.store.Add(t.Context(), o))
	return o.ID()
}

// activeOrder stores an Active order leased at usedAt.
func (f *fixture) activeOrder(t *testing.T, usedAt time.Time, replacements int, code string) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	f.store.put(t, order.Snapshot{
		ID:               id,
		CredentialID:     testCredentialID,
		Status:           order.Active,
		PhoneNumber:      "79990000000",
		ExternalID:       "100",
		FirstUsedAt:      &usedAt,
		ReplacementCount: replacements,
		VerificationCode: code,
	})
	return id
}

func mustLease(t *testing.T, phone, externalID string) order.Lease {
	t.Helper()
	l, err := order.NewLease(phone, externalID)
	require.NoError(t, err)
	return l
}
