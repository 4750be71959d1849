package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	pgBatchSize     = 50
	pgFlushInterval = 5 * time.Second
)

// pgSink is the buffer and flush loop shared by a PGHandler and every
// handler derived from it with WithAttrs.
type pgSink struct {
	db       *gorm.DB
	mu       sync.Mutex
	buffer   []models.SystemLog
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	// failures must not be slog.Default, which may include this sink.
	failures *slog.Logger
}

// PGHandler is an slog.Handler that batches ERROR+ records into system_logs.
type PGHandler struct {
	sink  *pgSink
	attrs []slog.Attr
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	sink := &pgSink{
		db:       db,
		buffer:   make([]models.SystemLog, 0, pgBatchSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		failures: slog.New(NewJSONHandler(os.Stderr, "error")),
	}
	go sink.flushLoop()
	return &PGHandler{sink: sink}
}

func (s *pgSink) flushLoop() {
	defer close(s.stopped)
	ticker := time.NewTicker(pgFlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *pgSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, pgBatchSize)
	s.mu.Unlock()

	if err := s.db.CreateInBatches(batch, pgBatchSize).Error; err != nil {
		s.failures.Error("failed to flush system logs", "error", err, "count", len(batch))
	}
}

func (s *pgSink) add(entry models.SystemLog) {
	s.mu.Lock()
	s.buffer = append(s.buffer, entry)
	full := len(s.buffer) >= pgBatchSize
	s.mu.Unlock()

	if full {
		go s.flush()
	}
}

// Stop writes what is buffered and waits for the flush loop to end.
func (h *PGHandler) Stop() {
	h.sink.stopOnce.Do(func() { close(h.sink.done) })
	<-h.sink.stopped
}

// Flush writes buffered records synchronously.
func (h *PGHandler) Flush() {
	h.sink.flush()
}

func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time.UTC(),
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	lift := func(a slog.Attr) bool {
		if !liftColumn(&entry, a) {
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		lift(a)
	}
	record.Attrs(lift)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}
	h.sink.add(entry)
	return nil
}

// liftColumn copies the attributes that have their own system_logs column.
func liftColumn(entry *models.SystemLog, a slog.Attr) bool {
	switch a.Key {
	case "tool":
		entry.Tool = a.Value.String()
	case "trace_id":
		entry.TraceID = a.Value.String()
	case "user_id":
		s := a.Value.String()
		entry.UserID = &s
	case "handle":
		entry.Handle = a.Value.String()
	case "error":
		entry.Error = a.Value.String()
	case "latency_ms":
		switch a.Value.Kind() {
		case slog.KindInt64:
			entry.LatencyMs = int(a.Value.Int64())
		case slog.KindFloat64:
			entry.LatencyMs = int(math.Round(a.Value.Float64()))
		default:
			return false
		}
	default:
		return false
	}
	return true
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PGHandler{
		sink:  h.sink,
		attrs: append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

// WithGroup is a no-op; system_logs rows are flat.
func (h *PGHandler) WithGroup(string) slog.Handler {
	return h
}
