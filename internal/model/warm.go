package model

import "time"

// WarmReport summarizes one cache warm-up run.
type WarmReport struct {
	StartedAt time.Time
	Elapsed   time.Duration
	Refreshed map[string]int    // symbol -> records fetched
	Failed    map[string]string // symbol -> error text
	Purged    int
	PurgeErr  string
}

// OK reports whether every symbol was refreshed and the purge succeeded.
func (r *WarmReport) OK() bool {
	return len(r.Failed) == 0 && r.PurgeErr == ""
}
