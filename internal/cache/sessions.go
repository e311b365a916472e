package cache

import (
	"time"

	"github.com/google/uuid"

	"gocardlessosm/internal/core"
	"gocardlessosm/internal/log"
)

// Sessions holds the latest report of each browser session. A new upload
// replaces the session's previous report.
type Sessions struct {
	reports Cache[core.Report]
}

var _ Cache[core.Report] = (*LRUCache[core.Report])(nil)

// NewSessions creates a session store of at most size sessions.
func NewSessions(size int, ttl time.Duration, logger *log.Logger) *Sessions {
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentCache)
	return &Sessions{
		reports: NewLRUCache[core.Report](size, ttl, WithEvictHook(func(id string) {
			logger.Debug("Session evicted", log.FieldSessionID, id)
		})),
	}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an identifier from NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Sessions) Store(id string, r core.Report) {
	s.reports.Set(id, r)
}

func (s *Sessions) Load(id string) (core.Report, bool) {
	return s.reports.Get(id)
}

func (s *Sessions) Forget(id string) {
	s.reports.Delete(id)
}

func (s *Sessions) Size() int {
	return s.reports.Size()
}

// CleanExpired lets a Manager expire idle sessions.
func (s *Sessions) CleanExpired() int {
	return s.reports.CleanExpired()
}
