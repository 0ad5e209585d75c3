package statistic

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chantd/internal/services"
	"chantd/internal/structures"
	"chantd/internal/testutil"
)

func newSchedulerFixture(t *testing.T, store *testutil.MockStore) (*Scheduler, services.StatsServiceInterface, *testutil.MockMetrics) {
	t.Helper()

	conf := &structures.Config{
		Stats:    structures.StatsConfig{TickInterval: time.Second, HistoryDays: 7, MaxHistoryDays: 365},
		Snapshot: structures.SnapshotConfig{FilePath: filepath.Join(t.TempDir(), "chantd.snap"), SaveInterval: time.Minute},
	}
	logger := &testutil.MockLogger{}
	service := services.NewStatsService(store, logger)
	snapshots := NewSnapshotManager(&testutil.MockCompressor{}, service, logger)
	metrics := &testutil.MockMetrics{}

	s := NewScheduler(conf, logger, service, snapshots, metrics).(*Scheduler)
	return s, service, metrics
}

func TestScheduler_RestoreFromStore(t *testing.T) {
	store := testutil.NewMockStore()
	store.Settings["total_count"] = 324
	store.Settings["achievements"] = []string{"begin", "mala_1"}

	s, service, _ := newSchedulerFixture(t, store)
	require.NoError(t, s.Restore())

	assert.Equal(t, 324, service.TotalCount())
	assert.Equal(t, []string{"begin", "mala_1"}, service.GetUnlocked())
}

// With data in the database the snapshot file is ignored even when present.
func TestScheduler_RestoreSkipsSnapshotWhenStoreHasData(t *testing.T) {
	store := testutil.NewMockStore()
	store.Settings["total_count"] = 500

	s, service, _ := newSchedulerFixture(t, store)

	donor := services.NewStatsService(testutil.NewMockStore(), &testutil.MockLogger{})
	donor.Increment(context.Background(), 999)
	m := NewSnapshotManager(&testutil.MockCompressor{}, donor, &testutil.MockLogger{})
	require.NoError(t, m.SaveToFile(s.config.Snapshot.FilePath))

	require.NoError(t, s.Restore())
	assert.Equal(t, 500, service.TotalCount())
}

func TestScheduler_RestoreImportsSnapshotWhenEmpty(t *testing.T) {
	s, service, _ := newSchedulerFixture(t, testutil.NewMockStore())

	donor := services.NewStatsService(testutil.NewMockStore(), &testutil.MockLogger{})
	donor.Increment(context.Background(), 250)
	m := NewSnapshotManager(&testutil.MockCompressor{}, donor, &testutil.MockLogger{})
	require.NoError(t, m.SaveToFile(s.config.Snapshot.FilePath))

	require.NoError(t, s.Restore())
	assert.Equal(t, 250, service.TotalCount())
	assert.Contains(t, service.GetUnlocked(), "mala_1")
}

func TestScheduler_RestoreWithoutSnapshotFile(t *testing.T) {
	s, service, _ := newSchedulerFixture(t, testutil.NewMockStore())

	require.NoError(t, s.Restore())
	assert.Equal(t, 0, service.TotalCount())
	assert.True(t, service.IsEmpty())
}

func TestScheduler_PersistWritesSnapshotAndClearsPending(t *testing.T) {
	store := testutil.NewMockStore()
	s, service, metrics := newSchedulerFixture(t, store)

	// A failed row write leaves the flag set; the next successful export
	// clears it.
	store.SetSettingErr = errors.New("disk full")
	service.Increment(context.Background(), 10)
	require.True(t, service.PendingSync())
	store.SetSettingErr = nil

	require.NoError(t, s.Persist())

	assert.False(t, service.PendingSync())
	assert.Equal(t, 1, metrics.PersistObservations)

	snap, err := s.snapshots.LoadFromFile(s.config.Snapshot.FilePath)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 10, snap.Total)
}

func TestScheduler_PersistErrorKeepsPending(t *testing.T) {
	store := testutil.NewMockStore()
	s, service, metrics := newSchedulerFixture(t, store)
	s.config.Snapshot.FilePath = "/nonexistent/dir/chantd.snap"

	store.SetSettingErr = errors.New("disk full")
	service.Increment(context.Background(), 5)
	store.SetSettingErr = nil

	assert.Error(t, s.Persist())
	assert.True(t, service.PendingSync())
	assert.Equal(t, 0, metrics.PersistObservations)
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s, _, _ := newSchedulerFixture(t, testutil.NewMockStore())
	assert.NotPanics(t, func() { s.Stop() })
}

func TestScheduler_InitAndStop(t *testing.T) {
	s, _, _ := newSchedulerFixture(t, testutil.NewMockStore())
	s.Init()
	assert.NotPanics(t, func() { s.Stop() })
}
