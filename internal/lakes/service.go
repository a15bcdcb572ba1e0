// Package lakes serves reservoir readings from a freshness-windowed cache,
// scraping the upstream reports only when the persisted snapshot is stale or
// missing.
package lakes

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/anchorpoint/lakewatch/internal/domain"
	"github.com/anchorpoint/lakewatch/internal/observability"
)

// Source labels in the response envelope.
const (
	SourceCached = "cached"
	SourceFresh  = "fresh"
	SourceError  = "error"
)

// ReportFetcher retrieves and parses the two upstream reports. A nil basin
// project reading with nil error means the page held nothing usable.
type ReportFetcher interface {
	FetchLakeReport(ctx context.Context) ([]domain.ProjectReading, error)
	FetchBasinProject(ctx context.Context) (*domain.ProjectReading, error)
}

// SnapshotStore persists the latest successful snapshot.
type SnapshotStore interface {
	Load() (domain.Snapshot, bool)
	Save(domain.Snapshot) error
}

// Result is the response envelope for both read paths.
type Result struct {
	Source      string                  `json:"source"`
	Lakes       []domain.ProjectReading `json:"lakes,omitempty"`
	CapturedAt  *time.Time              `json:"capturedAt,omitempty"`
	DisplayDate string                  `json:"displayDate,omitempty"`
	Warning     string                  `json:"warning,omitempty"`
	Message     string                  `json:"message,omitempty"`
}

// Service composes the fetcher, the snapshot store, and a clock into the
// cached read and forced refresh operations. The clock is injected so the
// freshness window can be tested without real time passing.
type Service struct {
	fetcher ReportFetcher
	store   SnapshotStore
	clock   clockwork.Clock
	ttl     time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates the service. ttl is the freshness window for cached snapshots.
func New(fetcher ReportFetcher, store SnapshotStore, clock clockwork.Clock, ttl time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		fetcher: fetcher,
		store:   store,
		clock:   clock,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

// Get returns the persisted snapshot while it is inside the freshness window,
// otherwise scrapes. A failed scrape falls back to the stale snapshot with a
// warning attached, so this path keeps returning data as long as any scrape
// ever succeeded. Only a failure with no prior snapshot yields an error
// envelope.
func (s *Service) Get(ctx context.Context) Result {
	stored, ok := s.store.Load()
	if ok && s.clock.Since(stored.CapturedAt) < s.ttl {
		s.metrics.CacheResults.WithLabelValues("hit").Inc()
		return cachedResult(stored, "")
	}

	snap, err := s.scrape(ctx)
	if err != nil {
		if ok {
			s.metrics.CacheResults.WithLabelValues("stale_fallback").Inc()
			s.logger.Warn("scrape failed, serving stale snapshot",
				"error", err, "captured_at", stored.CapturedAt)
			return cachedResult(stored, err.Error())
		}
		s.metrics.CacheResults.WithLabelValues("error").Inc()
		s.logger.Error("scrape failed with no snapshot to fall back on", "error", err)
		return Result{Source: SourceError, Message: err.Error()}
	}

	s.metrics.CacheResults.WithLabelValues("refresh").Inc()
	s.persist(snap)
	return freshResult(snap)
}

// Refresh always scrapes. The caller asked for live data, so a failure is
// reported instead of falling back to the stale snapshot.
func (s *Service) Refresh(ctx context.Context) Result {
	snap, err := s.scrape(ctx)
	if err != nil {
		s.logger.Error("forced refresh failed", "error", err)
		return Result{Source: SourceError, Message: err.Error()}
	}
	s.persist(snap)
	return freshResult(snap)
}

// scrape builds a fresh snapshot from both reports. The lake report is
// required; the basin project page is supplementary, and losing it costs one
// project's gap-fill, not the whole dataset.
func (s *Service) scrape(ctx context.Context) (domain.Snapshot, error) {
	primary, err := s.fetcher.FetchLakeReport(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}

	secondary, err := s.fetcher.FetchBasinProject(ctx)
	if err != nil {
		s.logger.Warn("basin project scrape failed", "error", err)
		secondary = nil
	}

	now := s.clock.Now().UTC()
	snap := domain.Snapshot{
		Lakes:       domain.MergeReadings(primary, secondary),
		CapturedAt:  now,
		DisplayDate: now.Format("2006-01-02"),
	}
	s.metrics.SnapshotRows.Set(float64(len(snap.Lakes)))
	return snap, nil
}

// persist saves the snapshot; a write failure is logged, not surfaced, so a
// transient disk problem never fails a request that already holds fresh data.
func (s *Service) persist(snap domain.Snapshot) {
	if err := s.store.Save(snap); err != nil {
		s.logger.Warn("snapshot save failed", "error", err)
	}
}

func cachedResult(snap domain.Snapshot, warning string) Result {
	capturedAt := snap.CapturedAt
	return Result{
		Source:      SourceCached,
		Lakes:       snap.Lakes,
		CapturedAt:  &capturedAt,
		DisplayDate: snap.DisplayDate,
		Warning:     warning,
	}
}

func freshResult(snap domain.Snapshot) Result {
	capturedAt := snap.CapturedAt
	return Result{
		Source:      SourceFresh,
		Lakes:       snap.Lakes,
		CapturedAt:  &capturedAt,
		DisplayDate: snap.DisplayDate,
	}
}
