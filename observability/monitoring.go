// Package observability samples process health and realtime load for the
// health endpoint.
package observability

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// Snapshot aggregates the metrics exposed by the health endpoint.
type Snapshot struct {
	Sessions          int     `json:"sessions"`
	Rooms             int     `json:"rooms"`
	ConnectionsOpened uint64  `json:"connections_opened"`
	ConnectionsClosed uint64  `json:"connections_closed"`
	CPUPercent        float64 `json:"cpu_percent"`
	RSSBytes          uint64  `json:"rss_bytes"`
	PidStatus         string  `json:"pid_status"`
	AllocMemMb        uint64  `json:"alloc_mem_mb"`
	NumGC             uint32  `json:"num_gc"`
	CollectedAt       string  `json:"collected_at"`
}

// SizeProvider reports the live session and room counts.
type SizeProvider func() (sessions, rooms int)

// Monitor keeps a periodically refreshed snapshot of process and realtime
// stats. Counters are atomic; the snapshot is guarded by the mutex.
type Monitor struct {
	log      *slog.Logger
	sizes    SizeProvider
	interval time.Duration
	proc     *process.Process

	connectionsOpened uint64
	connectionsClosed uint64

	mu     sync.RWMutex
	latest Snapshot
}

func NewMonitor(log *slog.Logger, sizes SizeProvider, interval time.Duration) (*Monitor, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &Monitor{log: log, sizes: sizes, interval: interval, proc: p}, nil
}

func (m *Monitor) IncrConnectionsOpened() {
	atomic.AddUint64(&m.connectionsOpened, 1)
}

func (m *Monitor) IncrConnectionsClosed() {
	atomic.AddUint64(&m.connectionsClosed, 1)
}

// Run refreshes the snapshot on a fixed interval until the context ends.
// Runs under the supervisor like any other worker.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.refresh()
		}
	}
}

func (m *Monitor) refresh() {
	snapshot := Snapshot{
		ConnectionsOpened: atomic.LoadUint64(&m.connectionsOpened),
		ConnectionsClosed: atomic.LoadUint64(&m.connectionsClosed),
		CollectedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if m.sizes != nil {
		snapshot.Sessions, snapshot.Rooms = m.sizes()
	}

	if memInfo, err := m.proc.MemoryInfo(); err == nil {
		snapshot.RSSBytes = memInfo.RSS
	} else {
		m.log.Debug("failed to read process memory", "error", err)
	}
	if cpu, err := m.proc.CPUPercent(); err == nil {
		snapshot.CPUPercent = cpu
	}
	if status, err := m.proc.Status(); err == nil {
		snapshot.PidStatus = status
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	snapshot.AllocMemMb = stats.Alloc / 1024 / 1024
	snapshot.NumGC = stats.NumGC

	m.mu.Lock()
	m.latest = snapshot
	m.mu.Unlock()
}

func (m *Monitor) Latest() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
