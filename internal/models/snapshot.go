package models

import "time"

// SnapshotVersion is the current snapshot envelope version.
const SnapshotVersion = 2

// Snapshot is the export/backup envelope for the whole aggregator state.
// Version 1 files carry the same fields without the version marker and
// without time stats; LoadSnapshot-side code treats Version==0 as v1.
type Snapshot struct {
	Version      int            `json:"version"`
	Total        int            `json:"total_count"`
	Daily        map[string]int `json:"daily"`
	Time         *TimeBundle    `json:"time_stats,omitempty"`
	Achievements []string       `json:"achievements"`
	ExportedAt   time.Time      `json:"exported_at"`
}
