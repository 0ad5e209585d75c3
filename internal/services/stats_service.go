package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/atomic"

	"chantd/internal/models"
	"chantd/internal/providers"
	"chantd/internal/storage"
)

const dateKeyLayout = "2006-01-02"

// Trailing-window sizes for GetTimeStats.
const (
	RangeToday = "today"
	RangeWeek  = "week"
	RangeMonth = "month"
)

var rangeDays = map[string]int{
	RangeToday: 1,
	RangeWeek:  7,
	RangeMonth: 30,
}

type StatsServiceInterface interface {
	Load(ctx context.Context) error
	Increment(ctx context.Context, n int)
	Tick(ctx context.Context)
	SetJapaActive(active bool)
	SetAudioActive(active bool)
	JapaActive() bool
	AudioActive() bool
	TotalCount() int
	TodayCount() int
	GetStreak() int
	GetHistory(days int) []models.HistoryEntry
	GetTimeStats(rng string) (models.TimeStats, error)
	GetAchievements() []models.AchievementStatus
	GetUnlocked() []string
	GetSummary() models.Summary
	PendingSync() bool
	MarkSynced(ctx context.Context)
	IsEmpty() bool
	Reset(ctx context.Context) error
	GetSnapshot() *models.Snapshot
	PutSnapshot(ctx context.Context, snap *models.Snapshot)
}

// StatsService owns the in-memory counters for the lifetime of the process.
// The store holds the durable copy; on a failed write the in-memory state
// stays authoritative and the write is only logged, never rolled back.
type StatsService struct {
	store  storage.StoreInterface
	logger providers.Logger
	now    func() time.Time

	mu            sync.RWMutex
	total         int
	daily         map[string]int
	bundle        *models.TimeBundle
	unlocked      map[string]struct{}
	unlockedOrder []string
	pendingSync   bool

	japaActive  atomic.Bool
	audioActive atomic.Bool
}

func NewStatsService(store storage.StoreInterface, logger providers.Logger) StatsServiceInterface {
	return &StatsService{
		store:    store,
		logger:   logger,
		now:      time.Now,
		daily:    make(map[string]int),
		bundle:   models.NewTimeBundle(),
		unlocked: make(map[string]struct{}),
	}
}

// dateKey derives the per-day key from the device-local calendar date.
// All daily and streak logic depends on this exact derivation.
func dateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

func (ss *StatsService) todayKey() string {
	return dateKey(ss.now())
}

// Load rehydrates state from the store. Each piece that fails to load is
// defaulted instead of aborting the whole load; the first error is returned
// so the caller can log it.
func (ss *StatsService) Load(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	totalVal, err := ss.store.GetSetting(ctx, models.SettingTotalCount, 0)
	keep(err)
	ss.total = cast.ToInt(totalVal)

	daily, err := ss.store.GetAllDailyStats(ctx)
	keep(err)
	if daily == nil {
		daily = make(map[string]int)
	}
	ss.daily = daily

	bundle := models.NewTimeBundle()
	_, err = ss.store.GetSettingJSON(ctx, models.SettingTimeStats, bundle)
	keep(err)
	bundle.Normalize()
	ss.bundle = bundle

	var ids []string
	_, err = ss.store.GetSettingJSON(ctx, models.SettingAchievements, &ids)
	keep(err)
	ss.unlocked = make(map[string]struct{}, len(ids))
	ss.unlockedOrder = ss.unlockedOrder[:0]
	for _, id := range ids {
		if _, dup := ss.unlocked[id]; dup {
			continue
		}
		ss.unlocked[id] = struct{}{}
		ss.unlockedOrder = append(ss.unlockedOrder, id)
	}

	pendingVal, err := ss.store.GetSetting(ctx, models.SettingPendingSync, false)
	keep(err)
	ss.pendingSync = cast.ToBool(pendingVal)

	return firstErr
}

// Increment adds n chants to today and to the lifetime total, persists both
// and evaluates achievements. Also implicitly marks the japa activity live.
func (ss *StatsService) Increment(ctx context.Context, n int) {
	if n <= 0 {
		return
	}
	ss.japaActive.Store(true)

	ss.mu.Lock()
	key := ss.todayKey()
	ss.daily[key] += n
	ss.total += n
	todayCount := ss.daily[key]
	total := ss.total

	newIDs := ss.evaluateAchievementsLocked()
	var unlockedCopy []string
	if len(newIDs) > 0 {
		unlockedCopy = append(unlockedCopy, ss.unlockedOrder...)
	}
	ss.mu.Unlock()

	// Fire-and-forget persistence: errors are logged and flagged for the
	// next snapshot sync, never surfaced to the caller.
	failed := false
	if err := ss.store.SaveDailyStat(ctx, key, todayCount); err != nil {
		ss.logger.Errorf(providers.TypeApp, "Persist daily stat %s failed: %s", key, err)
		failed = true
	}
	if err := ss.store.SetSetting(ctx, models.SettingTotalCount, total); err != nil {
		ss.logger.Errorf(providers.TypeApp, "Persist total count failed: %s", err)
		failed = true
	}
	if len(newIDs) > 0 {
		ss.logger.Infof(providers.TypeApp, "Unlocked achievements: %v", newIDs)
		if err := ss.store.SetSetting(ctx, models.SettingAchievements, unlockedCopy); err != nil {
			ss.logger.Errorf(providers.TypeApp, "Persist achievements failed: %s", err)
			failed = true
		}
	}
	if failed {
		ss.setPendingSync(ctx, true)
	}
}

// evaluateAchievementsLocked appends every not-yet-unlocked achievement whose
// threshold the current total or streak crosses. Caller holds ss.mu.
// Simultaneous unlocks land in catalog order.
func (ss *StatsService) evaluateAchievementsLocked() []string {
	var streak = -1
	var newIDs []string
	for _, a := range models.AchievementCatalog() {
		if _, done := ss.unlocked[a.ID]; done {
			continue
		}
		qualified := false
		switch a.Type {
		case models.AchievementCount:
			qualified = ss.total >= a.Threshold
		case models.AchievementStreak:
			if streak < 0 {
				streak = ss.streakLocked()
			}
			qualified = streak >= a.Threshold
		}
		if qualified {
			ss.unlocked[a.ID] = struct{}{}
			ss.unlockedOrder = append(ss.unlockedOrder, a.ID)
			newIDs = append(newIDs, a.ID)
		}
	}
	return newIDs
}

// Tick accrues one second per live activity into today's series and persists
// the bundle. Driven by the scheduler once per second.
func (ss *StatsService) Tick(ctx context.Context) {
	japa := ss.japaActive.Load()
	audio := ss.audioActive.Load()
	if !japa && !audio {
		return
	}

	ss.mu.Lock()
	key := ss.todayKey()
	if japa {
		ss.bundle.Japa[key]++
	}
	if audio {
		ss.bundle.Audio[key]++
	}
	if japa && audio {
		ss.bundle.Overlap[key]++
	}
	snapshot := ss.bundle.Clone()
	ss.mu.Unlock()

	if err := ss.store.SetSetting(ctx, models.SettingTimeStats, snapshot); err != nil {
		ss.logger.Errorf(providers.TypeApp, "Persist time stats failed: %s", err)
		ss.setPendingSync(ctx, true)
	}
}

// No idle auto-timeout on either flag: an activity stays live until its
// setter is called with false.
func (ss *StatsService) SetJapaActive(active bool)  { ss.japaActive.Store(active) }
func (ss *StatsService) SetAudioActive(active bool) { ss.audioActive.Store(active) }
func (ss *StatsService) JapaActive() bool           { return ss.japaActive.Load() }
func (ss *StatsService) AudioActive() bool          { return ss.audioActive.Load() }

func (ss *StatsService) TotalCount() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.total
}

func (ss *StatsService) TodayCount() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.daily[ss.todayKey()]
}

func (ss *StatsService) GetStreak() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.streakLocked()
}

// streakLocked counts consecutive non-zero days ending at today. Today only
// joins the streak once it has a non-zero count; a zero today still lets
// prior days count. Caller holds ss.mu (read or write).
func (ss *StatsService) streakLocked() int {
	day := ss.now()
	streak := 0
	if ss.daily[dateKey(day)] > 0 {
		streak++
	}
	day = day.AddDate(0, 0, -1)
	for ss.daily[dateKey(day)] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// GetHistory returns one entry per calendar day, oldest to newest, with a
// zero count for days without a record.
func (ss *StatsService) GetHistory(days int) []models.HistoryEntry {
	if days <= 0 {
		return nil
	}
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	entries := make([]models.HistoryEntry, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := ss.now().AddDate(0, 0, -i)
		key := dateKey(day)
		entries = append(entries, models.HistoryEntry{
			Date:  key,
			Label: day.Format("Jan 2"),
			Count: ss.daily[key],
		})
	}
	return entries
}

// GetTimeStats sums the three series over the trailing window for rng
// (today, week, month). total = japa + audio - overlap.
func (ss *StatsService) GetTimeStats(rng string) (models.TimeStats, error) {
	days, ok := rangeDays[rng]
	if !ok {
		return models.TimeStats{}, fmt.Errorf("unknown time range %q", rng)
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	stats := models.TimeStats{Range: rng, Days: days}
	for i := 0; i < days; i++ {
		key := dateKey(ss.now().AddDate(0, 0, -i))
		stats.Japa += ss.bundle.Japa[key]
		stats.Audio += ss.bundle.Audio[key]
		stats.Overlap += ss.bundle.Overlap[key]
	}
	stats.Total = stats.Japa + stats.Audio - stats.Overlap
	return stats, nil
}

func (ss *StatsService) GetAchievements() []models.AchievementStatus {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	catalog := models.AchievementCatalog()
	out := make([]models.AchievementStatus, 0, len(catalog))
	for _, a := range catalog {
		_, unlocked := ss.unlocked[a.ID]
		out = append(out, models.AchievementStatus{Achievement: a, Unlocked: unlocked})
	}
	return out
}

func (ss *StatsService) GetUnlocked() []string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	out := make([]string, len(ss.unlockedOrder))
	copy(out, ss.unlockedOrder)
	return out
}

func (ss *StatsService) GetSummary() models.Summary {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return models.Summary{
		Total:       ss.total,
		Today:       ss.daily[ss.todayKey()],
		Streak:      ss.streakLocked(),
		JapaActive:  ss.japaActive.Load(),
		AudioActive: ss.audioActive.Load(),
	}
}

func (ss *StatsService) PendingSync() bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.pendingSync
}

// MarkSynced clears the pending-sync flag after a successful snapshot export.
func (ss *StatsService) MarkSynced(ctx context.Context) {
	ss.setPendingSync(ctx, false)
}

func (ss *StatsService) setPendingSync(ctx context.Context, pending bool) {
	ss.mu.Lock()
	changed := ss.pendingSync != pending
	ss.pendingSync = pending
	ss.mu.Unlock()
	if !changed {
		return
	}
	if err := ss.store.SetSetting(ctx, models.SettingPendingSync, pending); err != nil {
		ss.logger.Errorf(providers.TypeApp, "Persist pending-sync flag failed: %s", err)
	}
}

// IsEmpty reports whether the service holds no counted history yet, which
// makes a startup snapshot import safe.
func (ss *StatsService) IsEmpty() bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.total == 0 && len(ss.daily) == 0
}

// Reset clears the settings namespace and the in-memory state derived from
// it. Daily history rows are kept; they live in the stats partition and
// never expire.
func (ss *StatsService) Reset(ctx context.Context) error {
	if err := ss.store.ResetSettings(ctx); err != nil {
		return err
	}
	ss.mu.Lock()
	ss.total = 0
	ss.bundle = models.NewTimeBundle()
	ss.unlocked = make(map[string]struct{})
	ss.unlockedOrder = nil
	ss.pendingSync = false
	ss.mu.Unlock()
	return nil
}

func (ss *StatsService) GetSnapshot() *models.Snapshot {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	daily := make(map[string]int, len(ss.daily))
	for k, v := range ss.daily {
		daily[k] = v
	}
	ids := make([]string, len(ss.unlockedOrder))
	copy(ids, ss.unlockedOrder)

	return &models.Snapshot{
		Version:      models.SnapshotVersion,
		Total:        ss.total,
		Daily:        daily,
		Time:         ss.bundle.Clone(),
		Achievements: ids,
		ExportedAt:   ss.now(),
	}
}

// PutSnapshot replaces the in-memory state with snap and writes everything
// back to the store. Used when restoring a backup into an empty database.
func (ss *StatsService) PutSnapshot(ctx context.Context, snap *models.Snapshot) {
	if snap == nil {
		return
	}

	ss.mu.Lock()
	ss.total = snap.Total
	ss.daily = make(map[string]int, len(snap.Daily))
	for k, v := range snap.Daily {
		ss.daily[k] = v
	}
	if snap.Time != nil {
		snap.Time.Normalize()
		ss.bundle = snap.Time.Clone()
	} else {
		ss.bundle = models.NewTimeBundle()
	}
	ss.unlocked = make(map[string]struct{}, len(snap.Achievements))
	ss.unlockedOrder = nil
	for _, id := range snap.Achievements {
		if _, dup := ss.unlocked[id]; dup {
			continue
		}
		ss.unlocked[id] = struct{}{}
		ss.unlockedOrder = append(ss.unlockedOrder, id)
	}
	daily := make(map[string]int, len(ss.daily))
	for k, v := range ss.daily {
		daily[k] = v
	}
	total := ss.total
	bundle := ss.bundle.Clone()
	ids := append([]string(nil), ss.unlockedOrder...)
	ss.mu.Unlock()

	for date, count := range daily {
		if err := ss.store.SaveDailyStat(ctx, date, count); err != nil {
			ss.logger.Errorf(providers.TypeApp, "Restore daily stat %s failed: %s", date, err)
		}
	}
	if err := ss.store.SetSetting(ctx, models.SettingTotalCount, total); err != nil {
		ss.logger.Errorf(providers.TypeApp, "Restore total count failed: %s", err)
	}
	if err := ss.store.SetSetting(ctx, models.SettingTimeStats, bundle); err != nil {
		ss.logger.Errorf(providers.TypeApp, "Restore time stats failed: %s", err)
	}
	if err := ss.store.SetSetting(ctx, models.SettingAchievements, ids); err != nil {
		ss.logger.Errorf(providers.TypeApp, "Restore achievements failed: %s", err)
	}
}
