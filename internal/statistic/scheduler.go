package statistic

import (
	"context"
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"chantd/internal/providers"
	"chantd/internal/services"
	"chantd/internal/statistic/interfaces"
	"chantd/internal/structures"
)

// Scheduler drives the two periodic jobs: the activity tick (one second of
// accrual per live activity flag) and the snapshot export.
type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	service   services.StatsServiceInterface
	snapshots *SnapshotManager
	metrics   providers.MetricsProviderInterface
	cron      *gron.Cron
	opsMu     sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Stats.TickInterval), func() {
		s.service.Tick(context.Background())
	})

	s.cron.AddFunc(gron.Every(s.config.Snapshot.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.saveSnapshot(); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while exporting snapshot: %s", err)
			return
		}
		s.logger.Infof(providers.TypeApp, "Exported snapshot to %s", s.config.Snapshot.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Restore rehydrates the aggregator from the database, then imports the
// snapshot file when the database turned out to be empty (fresh device or
// recovered profile).
func (s *Scheduler) Restore() error {
	ctx := context.Background()

	if err := s.service.Load(ctx); err != nil {
		s.logger.Errorf(providers.TypeApp, "Partial load from storage, defaults applied: %s", err)
	}

	if !s.service.IsEmpty() {
		return nil
	}

	snap, err := s.snapshots.LoadFromFile(s.config.Snapshot.FilePath)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	s.logger.Infof(providers.TypeApp, "Importing snapshot from %s (%d days)", s.config.Snapshot.FilePath, len(snap.Daily))
	s.service.PutSnapshot(ctx, snap)
	return nil
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Exporting final snapshot...")
	if err := s.saveSnapshot(); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while exporting snapshot: %s", err)
		return err
	}
	return nil
}

// saveSnapshot writes the snapshot file and clears the pending-sync flag on
// success. Caller holds opsMu.
func (s *Scheduler) saveSnapshot() error {
	start := time.Now()
	if err := s.snapshots.SaveToFile(s.config.Snapshot.FilePath); err != nil {
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.service.MarkSynced(context.Background())
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.StatsServiceInterface, snapshots *SnapshotManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:    config,
		logger:    logger,
		service:   service,
		snapshots: snapshots,
		metrics:   metrics,
	}
}
