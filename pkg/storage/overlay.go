package storage

import (
	"context"
	"encoding/json"

	"github.com/jordanlanch/listingpro/pkg/logger"
	"github.com/jordanlanch/listingpro/pkg/metrics"
)

// OverlayStore reads and writes JSON overlay documents. Every operation is
// fail-soft: a corrupt or missing document reads as absent, and a failed
// write is logged and counted but never surfaced to the caller. Session
// state stays authoritative; storage only has to catch up on the next
// successful write.
type OverlayStore struct {
	kv      KV
	log     logger.Logger
	metrics *metrics.Metrics
}

// NewOverlayStore wraps kv with fail-soft JSON semantics. metrics may be nil.
func NewOverlayStore(kv KV, log logger.Logger, m *metrics.Metrics) *OverlayStore {
	return &OverlayStore{kv: kv, log: log, metrics: m}
}

// Load decodes the document at key into dest. It returns false, leaving dest
// untouched, when the key is absent, the read fails or the JSON is corrupt.
func (s *OverlayStore) Load(ctx context.Context, key string, dest interface{}) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn("overlay read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.log.Warn("overlay document corrupt, ignoring", "key", key, "error", err)
		return false
	}
	return true
}

// Save encodes v and writes it at key. Failures are logged and counted.
func (s *OverlayStore) Save(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.recordFailure(key, err)
		return
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		s.recordFailure(key, err)
	}
}

// Remove deletes the document at key. Failures are logged and counted.
func (s *OverlayStore) Remove(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.recordFailure(key, err)
	}
}

func (s *OverlayStore) recordFailure(key string, err error) {
	s.log.Error("overlay write failed", "key", key, "error", err)
	if s.metrics != nil {
		s.metrics.OverlaySaveFailures.WithLabelValues(key).Inc()
	}
}
