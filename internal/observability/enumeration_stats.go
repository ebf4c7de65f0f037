// Package observability tracks enumeration progress and rejection statistics
// and exports them as Prometheus metrics.
package observability

import (
	"sort"
	"sync"
	"time"
)

// EnumerationStats counts the candidates a job visits, how many pass
// validation and which law rejected the rest. It is safe for concurrent use
// so the metrics endpoint can read it while the job runs.
type EnumerationStats struct {
	mu         sync.RWMutex
	job        string
	accepted   int64
	rejections map[string]*RejectionStats
	done       int64
	total      int64
	started    time.Time
	metrics    *Metrics
}

// RejectionStats holds the counters for one law code.
type RejectionStats struct {
	Code     string
	Count    int64
	LastSeen time.Time
}

// Snapshot is a point-in-time copy of EnumerationStats.
type Snapshot struct {
	Job        string
	Visited    int64
	Accepted   int64
	Rejected   int64
	Rejections map[string]int64
	Progress   float64
	Elapsed    time.Duration
}

// NewEnumerationStats creates a tracker for job. m may be nil.
func NewEnumerationStats(job string, m *Metrics) *EnumerationStats {
	return &EnumerationStats{
		job:        job,
		rejections: make(map[string]*RejectionStats),
		started:    time.Now(),
		metrics:    m,
	}
}

// Job returns the job label.
func (s *EnumerationStats) Job() string { return s.job }

// RecordAccepted records n candidates that passed validation.
func (s *EnumerationStats) RecordAccepted(n int64) {
	s.mu.Lock()
	s.accepted += n
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.candidates.WithLabelValues(s.job, OutcomeAccepted).Add(float64(n))
	}
}

// RecordRejections records n candidates rejected with code.
func (s *EnumerationStats) RecordRejections(code string, n int64) {
	s.mu.Lock()
	stats, exists := s.rejections[code]
	if !exists {
		stats = &RejectionStats{Code: code}
		s.rejections[code] = stats
	}
	stats.Count += n
	stats.LastSeen = time.Now()
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.candidates.WithLabelValues(s.job, OutcomeRejected).Add(float64(n))
		s.metrics.rejections.WithLabelValues(s.job, code).Add(float64(n))
	}
}

// OnReject records a batch of n rejections with code. It makes
// EnumerationStats a set.Observer.
func (s *EnumerationStats) OnReject(code string, n int64) {
	s.RecordRejections(code, n)
}

// SetProgress records that done of total units of outer work are finished.
func (s *EnumerationStats) SetProgress(done, total int64) {
	s.mu.Lock()
	s.done, s.total = done, total
	s.mu.Unlock()

	if s.metrics != nil && total > 0 {
		s.metrics.progress.WithLabelValues(s.job).Set(float64(done) / float64(total))
	}
}

// TopRejections returns the n most frequent rejection codes, most frequent
// first. Ties are broken by code.
func (s *EnumerationStats) TopRejections(n int) []RejectionStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.rejections) == 0 {
		return []RejectionStats{}
	}

	stats := make([]RejectionStats, 0, len(s.rejections))
	for _, r := range s.rejections {
		stats = append(stats, *r)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Code < stats[j].Code
	})

	if n > len(stats) {
		n = len(stats)
	}
	return stats[:n]
}

// Snapshot returns a copy of the current counters.
func (s *EnumerationStats) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Job:        s.job,
		Accepted:   s.accepted,
		Rejections: make(map[string]int64, len(s.rejections)),
		Elapsed:    time.Since(s.started),
	}
	for code, r := range s.rejections {
		snap.Rejections[code] = r.Count
		snap.Rejected += r.Count
	}
	snap.Visited = snap.Accepted + snap.Rejected
	if s.total > 0 {
		snap.Progress = float64(s.done) / float64(s.total)
	}
	return snap
}
