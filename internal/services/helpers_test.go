package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/unscroll-app/unscroll/internal/adapters/storage"
	"github.com/unscroll-app/unscroll/internal/domain"
	"github.com/unscroll-app/unscroll/internal/ports"
)

// testServices bundles the service graph over an in-memory store with a
// frozen clock.
type testServices struct {
	store     *storage.MemoryStore
	mirror    *fakeMirror
	ledger    *LedgerService
	plans     *PlanService
	stats     *StatsService
	accounts  *AccountService
	tracker   *TrackerService
	dashboard *DashboardService
	now       time.Time
}

func newTestServices() *testServices {
	store := storage.NewMemoryStore()
	mirror := &fakeMirror{}
	accounts := NewAccountService(store)
	ledger := NewLedgerService(store)
	plans := NewPlanService(store)
	stats := NewStatsService(store, mirror, accounts)
	tracker := NewTrackerService(ledger, plans, stats, accounts)
	dashboard := NewDashboardService(ledger, plans, stats, tracker)

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)
	clock := func() time.Time { return now }
	ledger.now = clock
	plans.now = clock
	tracker.now = clock
	dashboard.now = clock

	return &testServices{
		store:     store,
		mirror:    mirror,
		ledger:    ledger,
		plans:     plans,
		stats:     stats,
		accounts:  accounts,
		tracker:   tracker,
		dashboard: dashboard,
		now:       now,
	}
}

// advance moves the frozen clock forward.
func (ts *testServices) advance(d time.Duration) {
	ts.now = ts.now.Add(d)
	clock := func() time.Time { return ts.now }
	ts.ledger.now = clock
	ts.plans.now = clock
	ts.tracker.now = clock
	ts.dashboard.now = clock
}

// fakeMirror records upserts for assertions.
type fakeMirror struct {
	mu    sync.Mutex
	calls []mirrorCall
}

type mirrorCall struct {
	table  string
	record any
}

func (m *fakeMirror) Upsert(ctx context.Context, table string, record any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mirrorCall{table: table, record: record})
	return nil
}

func (m *fakeMirror) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *fakeMirror) tables() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	tables := make([]string, len(m.calls))
	for i, c := range m.calls {
		tables[i] = c.table
	}
	return tables
}

// failingStore errors on every operation, for exercising degraded reads.
type failingStore struct{}

var _ ports.KeyValueStore = (*failingStore)(nil)

var errStoreDown = errors.New("store unavailable")

func (f *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errStoreDown
}
func (f *failingStore) Set(ctx context.Context, key, value string) error    { return errStoreDown }
func (f *failingStore) Remove(ctx context.Context, key string) error        { return errStoreDown }
func (f *failingStore) RemoveMany(ctx context.Context, keys []string) error { return errStoreDown }
func (f *failingStore) Close() error                                        { return nil }

// openSessionAt inserts an open session starting at the given time and
// returns it.
func openSessionAt(ts *testServices, start time.Time, appID, activity string) domain.SessionEvent {
	session := domain.NewSession(appID, activity, start)
	if err := ts.ledger.SaveSession(context.Background(), session); err != nil {
		panic(err)
	}
	return session
}

// completedSessionAt inserts a finished session of the given length.
func completedSessionAt(ts *testServices, start time.Time, minutes int, activity string) domain.SessionEvent {
	session := domain.NewSession("focus", activity, start)
	session.Close("done", start.Add(time.Duration(minutes)*time.Minute))
	if err := ts.ledger.SaveSession(context.Background(), session); err != nil {
		panic(err)
	}
	return session
}
