package history

import (
	"sync"

	"github.com/google/uuid"

	"github.com/phishguard-ai/phishguard/internal/scan"
)

const defaultMaxEntries = 100

// Entry is one logged scan, tagged with an opaque id for display layers.
type Entry struct {
	ID     string
	Result scan.Result
}

// Stats are the running session counters.
type Stats struct {
	TotalScans     int
	DangerousCount int
	LastVerdict    scan.Verdict
}

// Log is an in-memory, newest-first record of scans for the current process.
// Nothing is persisted beyond the process lifetime.
type Log struct {
	mu      sync.Mutex
	max     int
	entries []Entry
	stats   Stats
}

// NewLog builds a log holding at most max entries; max <= 0 uses the default.
func NewLog(max int) *Log {
	if max <= 0 {
		max = defaultMaxEntries
	}
	return &Log{max: max}
}

// Add records one scan result, newest first, and updates the session stats.
func (l *Log) Add(res scan.Result) Entry {
	e := Entry{ID: uuid.NewString(), Result: res}
	if l == nil {
		return e
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = e
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}

	l.stats.TotalScans++
	l.stats.LastVerdict = res.Verdict
	if res.Verdict == scan.VerdictDangerous {
		l.stats.DangerousCount++
	}
	return e
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []Entry {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Stats returns a snapshot of the session counters.
func (l *Log) Stats() Stats {
	if l == nil {
		return Stats{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}
