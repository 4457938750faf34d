// Package daemon provides the long-running read-only challenge progress feed.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/mchallenge/internal/logging"
	"github.com/theirongolddev/mchallenge/internal/model"
	"github.com/theirongolddev/mchallenge/internal/pipeline"
	"github.com/theirongolddev/mchallenge/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

// Loader returns the current day store and goal map.
type Loader func() (model.Days, model.Goals, error)

// StoreLoader opens the SQLite store at path for each poll, so writes made
// by other mchallenge processes are picked up.
func StoreLoader(path string, logger *slog.Logger) Loader {
	return func() (model.Days, model.Goals, error) {
		db, err := store.Open(path)
		if err != nil {
			return model.Days{}, nil, err
		}
		defer func() { _ = db.Close() }()
		return pipeline.LoadDays(db, logger), pipeline.LoadGoals(db), nil
	}
}

// Config controls the daemon runtime behavior.
type Config struct {
	StorePath    string
	Length       int
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Loader       Loader // defaults to StoreLoader(StorePath)
	Logger       *slog.Logger
}

// Snapshot is a compact progress state for status/event payloads.
type Snapshot struct {
	At           time.Time       `json:"at"`
	Length       int             `json:"length"`
	Total        decimal.Decimal `json:"total"`
	Goal         decimal.Decimal `json:"goal"`
	GoalProgress float64         `json:"goal_progress"`
	DaysDone     int             `json:"days_done"`
	Wins         int             `json:"wins"`
	Losses       int             `json:"losses"`
	AvgPerDone   decimal.Decimal `json:"avg_per_done"`
	AvgPerDay    decimal.Decimal `json:"avg_per_day"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Total    decimal.Decimal `json:"total"`
	Goal     decimal.Decimal `json:"goal"`
	DaysDone int             `json:"days_done"`
	Wins     int             `json:"wins"`
	Losses   int             `json:"losses"`
}

func (d Delta) isZero() bool {
	return d.Total.IsZero() &&
		d.Goal.IsZero() &&
		d.DaysDone == 0 &&
		d.Wins == 0 &&
		d.Losses == 0
}

// Event is emitted whenever the progress snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	StorePath       string    `json:"store_path"`
	Length          int       `json:"length"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	logger *slog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 10 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if !model.ValidLength(cfg.Length) {
		cfg.Length = model.Lengths[0]
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Loader == nil {
		cfg.Loader = StoreLoader(cfg.StorePath, cfg.Logger)
	}

	return &Service{
		cfg:       cfg,
		logger:    cfg.Logger,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API. Everything but the stream is bounded by a
// request timeout.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/v1/stream", s.handleStream)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Get("/healthz", s.handleHealth)
		r.Get("/v1/status", s.handleStatus)
		r.Get("/v1/events", s.handleEvents)
	})

	return r
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	days, goals, err := s.cfg.Loader()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = time.Now()
		s.pollCount++
		s.mu.Unlock()
		s.logger.Error("daemon poll failed", "store", s.cfg.StorePath, "err", err)
		return
	}

	now := time.Now()
	totals := pipeline.ComputeTotals(&days, s.cfg.Length, goals.For(s.cfg.Length))
	snap := snapshotFromTotals(totals, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "progress_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.logger.Debug("progress changed", "event", ev.Type, "total", snap.Total.String())
		s.publishEvent(ev)
	}
}

func snapshotFromTotals(t model.Totals, at time.Time) Snapshot {
	return Snapshot{
		At:           at,
		Length:       t.Length,
		Total:        t.Total,
		Goal:         t.Goal,
		GoalProgress: t.GoalProgress,
		DaysDone:     t.DaysDone,
		Wins:         t.Wins,
		Losses:       t.Losses,
		AvgPerDone:   t.AvgPerDone,
		AvgPerDay:    t.AvgPerDay,
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Total:    curr.Total.Sub(prev.Total),
		Goal:     curr.Goal.Sub(prev.Goal),
		DaysDone: curr.DaysDone - prev.DaysDone,
		Wins:     curr.Wins - prev.Wins,
		Losses:   curr.Losses - prev.Losses,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		StorePath:       s.cfg.StorePath,
		Length:          s.cfg.Length,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
