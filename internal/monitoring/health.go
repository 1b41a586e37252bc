package monitoring

import (
	"database/sql"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// HealthMonitor periodically pings the database and caches the result so
// the health endpoint can report connectivity without a per-request ping.
type HealthMonitor struct {
	db     *sql.DB
	ticker *time.Ticker
	done   chan bool

	mu      sync.RWMutex
	healthy bool
}

// NewHealthMonitor creates a new HealthMonitor and performs an initial check.
func NewHealthMonitor(db *sql.DB) *HealthMonitor {
	hm := &HealthMonitor{
		db:   db,
		done: make(chan bool),
	}
	hm.check()
	return hm
}

// Run starts the periodic checks.
func (hm *HealthMonitor) Run() {
	log.Info().Msg("Starting background health monitor...")
	hm.ticker = time.NewTicker(15 * time.Second)
	defer hm.ticker.Stop()

	for {
		select {
		case <-hm.done:
			log.Info().Msg("Stopping background health monitor.")
			return
		case <-hm.ticker.C:
			hm.check()
		}
	}
}

// Stop halts the periodic checks.
func (hm *HealthMonitor) Stop() {
	hm.done <- true
}

// Healthy reports the result of the most recent database ping.
func (hm *HealthMonitor) Healthy() bool {
	hm.mu.RLock()
	defer hm.mu.RUnlock()
	return hm.healthy
}

func (hm *HealthMonitor) check() {
	err := hm.db.Ping()
	if err != nil {
		log.Warn().Err(err).Msg("HealthMonitor: database ping failed")
	}

	hm.mu.Lock()
	hm.healthy = err == nil
	hm.mu.Unlock()
}
