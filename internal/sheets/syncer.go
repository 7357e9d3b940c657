package sheets

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// State is the coarse sync indicator shown to operators
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateSynced  State = "synced"
	StateError   State = "error"
)

// timestampLayout matches JavaScript's Date.toISOString
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Status is a point-in-time view of the syncer
type Status struct {
	State         State      `json:"state"`
	URLConfigured bool       `json:"urlConfigured"`
	InFlight      bool       `json:"inFlight"`
	LastSyncedAt  *time.Time `json:"lastSyncedAt,omitempty"`
	LastError     string     `json:"lastError,omitempty"`
}

// Syncer is a single-slot outbox in front of a Sender. Only Run sends, so at
// most one request is in flight.
type Syncer struct {
	sender Sender
	log    *slog.Logger
	now    func() time.Time
	wake   chan struct{}

	mu       sync.Mutex
	url      string
	pending  []Row
	queued   bool
	version  uint64
	inflight uint64
	cancel   context.CancelFunc
	status   Status
}

// NewSyncer creates a syncer posting to url. An empty url leaves the
// syncer pending until SetURL provides one.
func NewSyncer(sender Sender, url string, log *slog.Logger) *Syncer {
	s := &Syncer{
		sender: sender,
		log:    log,
		now:    time.Now,
		wake:   make(chan struct{}, 1),
		url:    url,
	}
	s.status.State = StateIdle
	if url == "" {
		s.status.State = StatePending
	}
	return s
}

// SetURL changes the webhook target for subsequent sends
func (s *Syncer) SetURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.url = url
	switch {
	case url == "":
		s.status.State = StatePending
	case s.status.State == StatePending:
		s.status.State = StateIdle
	}
}

// URL returns the current webhook target
func (s *Syncer) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Enqueue replaces the pending snapshot with rows and wakes the worker.
// It never blocks on the network.
func (s *Syncer) Enqueue(rows []Row) {
	if rows == nil {
		rows = []Row{}
	}

	s.mu.Lock()
	s.version++
	s.pending = rows
	s.queued = true
	if s.cancel != nil && s.inflight < s.version {
		s.cancel()
	}
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Status returns a copy of the current status
func (s *Syncer) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.status
	st.URLConfigured = s.url != ""
	if st.LastSyncedAt != nil {
		t := *st.LastSyncedAt
		st.LastSyncedAt = &t
	}
	return st
}

// Run sends queued snapshots until ctx is cancelled
func (s *Syncer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
			s.drain(ctx)
		}
	}
}

func (s *Syncer) drain(ctx context.Context) {
	for {
		s.mu.Lock()
		if !s.queued {
			s.mu.Unlock()
			return
		}
		rows, version, url := s.pending, s.version, s.url
		s.pending, s.queued = nil, false

		if url == "" {
			s.status.State = StatePending
			s.mu.Unlock()
			s.log.Debug("sheet sync skipped, no webhook configured", "orders", len(rows))
			continue
		}

		sendCtx, cancel := context.WithCancel(ctx)
		s.inflight, s.cancel = version, cancel
		s.status.InFlight = true
		s.mu.Unlock()

		err := s.sender.Send(sendCtx, url, Payload{
			Timestamp: s.now().UTC().Format(timestampLayout),
			Orders:    rows,
		})
		superseded := sendCtx.Err() != nil && ctx.Err() == nil
		cancel()

		s.mu.Lock()
		s.inflight, s.cancel = 0, nil
		s.status.InFlight = false

		switch {
		case err == nil:
			t := s.now()
			s.status.State = StateSynced
			s.status.LastSyncedAt = &t
			s.status.LastError = ""
			s.mu.Unlock()
			s.log.Info("sheet sync completed", "orders", len(rows))
		case superseded:
			// A newer snapshot is queued; its outcome sets the status.
			s.mu.Unlock()
			s.log.Debug("sheet sync superseded", "orders", len(rows))
		case ctx.Err() != nil:
			s.mu.Unlock()
			return
		default:
			s.status.State = StateError
			s.status.LastError = err.Error()
			s.mu.Unlock()
			s.log.Error("sheet sync failed", "error", err, "orders", len(rows))
		}
	}
}
