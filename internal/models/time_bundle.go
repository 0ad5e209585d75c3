package models

// TimeBundle holds the three per-day activity series, in seconds.
// Overlap is only incremented on ticks where both activities are live,
// so overlap[d] <= min(japa[d], audio[d]) holds by construction.
type TimeBundle struct {
	Japa    map[string]int `json:"japa"`
	Audio   map[string]int `json:"audio"`
	Overlap map[string]int `json:"overlap"`
}

func NewTimeBundle() *TimeBundle {
	return &TimeBundle{
		Japa:    make(map[string]int),
		Audio:   make(map[string]int),
		Overlap: make(map[string]int),
	}
}

// Normalize replaces nil sub-maps with empty ones. Needed after JSON
// decoding of partial or legacy bundles.
func (tb *TimeBundle) Normalize() {
	if tb.Japa == nil {
		tb.Japa = make(map[string]int)
	}
	if tb.Audio == nil {
		tb.Audio = make(map[string]int)
	}
	if tb.Overlap == nil {
		tb.Overlap = make(map[string]int)
	}
}

func (tb *TimeBundle) Clone() *TimeBundle {
	out := NewTimeBundle()
	for k, v := range tb.Japa {
		out.Japa[k] = v
	}
	for k, v := range tb.Audio {
		out.Audio[k] = v
	}
	for k, v := range tb.Overlap {
		out.Overlap[k] = v
	}
	return out
}

// TimeStats is an aggregation of the bundle over a trailing window.
// Total uses inclusion-exclusion for the two possibly-simultaneous
// activities: japa + audio - overlap.
type TimeStats struct {
	Range   string `json:"range"`
	Days    int    `json:"days"`
	Japa    int    `json:"japa_seconds"`
	Audio   int    `json:"audio_seconds"`
	Overlap int    `json:"overlap_seconds"`
	Total   int    `json:"total_seconds"`
}

// HistoryEntry is one calendar day in a history window.
type HistoryEntry struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summary is the top-level counters view.
type Summary struct {
	Total       int  `json:"total"`
	Today       int  `json:"today"`
	Streak      int  `json:"streak"`
	JapaActive  bool `json:"japa_active"`
	AudioActive bool `json:"audio_active"`
}
