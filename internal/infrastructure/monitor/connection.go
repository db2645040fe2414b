package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dayflow/backend/internal/infrastructure/boltdb"
)

// Monitor periodically probes the datastore so the tracker and the health
// endpoint see a consistent view of storage availability.
type Monitor struct {
	store *boltdb.Client

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	logger   *zap.Logger
}

func New(store *boltdb.Client, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Storage
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	ok, schedules := m.checkStorage()
	status := Status{
		Storage:   ok,
		Schedules: schedules,
		LastCheck: time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkStorage() (bool, int) {
	if m.store == nil {
		return false, 0
	}
	count, err := m.store.Count(boltdb.BucketSchedules)
	if err != nil {
		m.logger.Warn("storage check failed", zap.Error(err))
		return false, count
	}
	return true, count
}
