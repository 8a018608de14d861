// Package analytics ingests behavioral events and serves read-side
// aggregate views over the append-only event log.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/asaskevich/EventBus"
	"github.com/montanaflynn/stats"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/pkg/common"
)

// TopicEventRecorded is published on the bus for every accepted event
const TopicEventRecorded = "analytics:event:recorded"

var knownEventTypes = map[string]bool{
	domain.EventPageView:    true,
	domain.EventProductView: true,
	domain.EventAddToCart:   true,
	domain.EventCheckout:    true,
	domain.EventPurchase:    true,
}

var ErrUnknownEventType = errors.New("unknown analytics event type")

// Service records events through a bounded writer pool and computes the
// summary, funnel and timeline views.
type Service struct {
	db   *gorm.DB
	bus  EventBus.Bus
	pool *ants.Pool
}

func NewService(db *gorm.DB, bus EventBus.Bus, poolSize int) (*Service, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, errors.Wrap(err, "create analytics pool")
	}
	return &Service{db: db, bus: bus, pool: pool}, nil
}

// Stop releases the writer pool
func (s *Service) Stop() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Record validates the event and hands the insert to the writer pool so the
// request path never blocks on the store. The event is also published on
// the bus for in-process subscribers.
func (s *Service) Record(ev *domain.AnalyticsEvent) error {
	ev.EventType = strings.TrimSpace(ev.EventType)
	if !knownEventTypes[ev.EventType] {
		return ErrUnknownEventType
	}
	ev.ID = common.UUIDint64()
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	e := *ev
	err := s.pool.Submit(func() {
		if err := s.db.Create(&e).Error; err != nil {
			zap.L().Error("analytics event insert failed",
				zap.String("event_type", e.EventType), zap.Error(err))
			return
		}
		if s.bus != nil {
			s.bus.Publish(TopicEventRecorded, &e)
		}
	})
	return errors.Wrap(err, "submit analytics write")
}

// ParseRange resolves from/to query values into a concrete window. Empty
// values default to the trailing 30 days.
func ParseRange(fromStr, toStr string, now time.Time) (time.Time, time.Time, error) {
	from := now.AddDate(0, 0, -30)
	to := now
	if strings.TrimSpace(fromStr) != "" {
		t, err := dateparse.ParseAny(fromStr)
		if err != nil {
			return from, to, errors.Wrap(err, "parse 'from'")
		}
		from = t
	}
	if strings.TrimSpace(toStr) != "" {
		t, err := dateparse.ParseAny(toStr)
		if err != nil {
			return from, to, errors.Wrap(err, "parse 'to'")
		}
		to = t
	}
	if to.Before(from) {
		return from, to, errors.New("'to' precedes 'from'")
	}
	return from, to, nil
}

func (s *Service) fetch(from, to time.Time) ([]domain.AnalyticsEvent, error) {
	var rows []domain.AnalyticsEvent
	err := s.db.Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC").Find(&rows).Error
	return rows, err
}

// Summary is the headline aggregate view
type Summary struct {
	TotalEvents     int64            `json:"total_events"`
	EventCounts     map[string]int64 `json:"event_counts"`
	UniqueSessions  int64            `json:"unique_sessions"`
	AverageDuration float64          `json:"average_duration"`
}

// Summarize computes counts per type, session cardinality and average
// duration over the given rows.
func Summarize(rows []domain.AnalyticsEvent) Summary {
	counts := make(map[string]int64)
	sessions := make(map[string]struct{})
	durations := make([]float64, 0, len(rows))
	for _, ev := range rows {
		counts[ev.EventType]++
		if ev.SessionId != "" {
			sessions[ev.SessionId] = struct{}{}
		}
		if ev.Duration > 0 {
			durations = append(durations, ev.Duration)
		}
	}
	avg := 0.0
	if len(durations) > 0 {
		avg, _ = stats.Mean(durations)
	}
	return Summary{
		TotalEvents:     int64(len(rows)),
		EventCounts:     counts,
		UniqueSessions:  int64(len(sessions)),
		AverageDuration: avg,
	}
}

// FunnelStep is one stage of the conversion funnel
type FunnelStep struct {
	Stage string  `json:"stage"`
	Count int64   `json:"count"`
	Rate  float64 `json:"rate"`
}

var funnelStages = []string{
	domain.EventPageView,
	domain.EventProductView,
	domain.EventAddToCart,
	domain.EventCheckout,
	domain.EventPurchase,
}

// Funnel computes each stage's count and its ratio against the page-view
// count. A zero page-view denominator yields zero rates everywhere instead
// of a division panic.
func Funnel(rows []domain.AnalyticsEvent) []FunnelStep {
	counts := make(map[string]int64)
	for _, ev := range rows {
		counts[ev.EventType]++
	}
	pageViews := counts[domain.EventPageView]

	steps := make([]FunnelStep, 0, len(funnelStages))
	for _, stage := range funnelStages {
		rate := 0.0
		if pageViews > 0 {
			rate = float64(counts[stage]) / float64(pageViews)
		}
		steps = append(steps, FunnelStep{Stage: stage, Count: counts[stage], Rate: rate})
	}
	return steps
}

// TimelineBucket aggregates one day of events
type TimelineBucket struct {
	Date     string           `json:"date"`
	Total    int64            `json:"total"`
	ByType   map[string]int64 `json:"by_type"`
	Sessions int64            `json:"sessions"`
}

// Timeline buckets events per day, sorted ascending
func Timeline(rows []domain.AnalyticsEvent) []TimelineBucket {
	type acc struct {
		total    int64
		byType   map[string]int64
		sessions map[string]struct{}
	}
	days := make(map[string]*acc)
	for _, ev := range rows {
		day := ev.CreatedAt.Format("2006-01-02")
		a, ok := days[day]
		if !ok {
			a = &acc{byType: make(map[string]int64), sessions: make(map[string]struct{})}
			days[day] = a
		}
		a.total++
		a.byType[ev.EventType]++
		if ev.SessionId != "" {
			a.sessions[ev.SessionId] = struct{}{}
		}
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]TimelineBucket, 0, len(keys))
	for _, k := range keys {
		a := days[k]
		out = append(out, TimelineBucket{
			Date:     k,
			Total:    a.total,
			ByType:   a.byType,
			Sessions: int64(len(a.sessions)),
		})
	}
	return out
}

// SummaryView fetches and summarizes the window
func (s *Service) SummaryView(from, to time.Time) (Summary, error) {
	rows, err := s.fetch(from, to)
	if err != nil {
		return Summary{}, errors.Wrap(err, "fetch events")
	}
	return Summarize(rows), nil
}

// FunnelView fetches the window and computes the funnel
func (s *Service) FunnelView(from, to time.Time) ([]FunnelStep, error) {
	rows, err := s.fetch(from, to)
	if err != nil {
		return nil, errors.Wrap(err, "fetch events")
	}
	return Funnel(rows), nil
}

// TimelineView fetches the window and buckets it per day
func (s *Service) TimelineView(from, to time.Time) ([]TimelineBucket, error) {
	rows, err := s.fetch(from, to)
	if err != nil {
		return nil, errors.Wrap(err, "fetch events")
	}
	return Timeline(rows), nil
}

// PruneBefore deletes events older than cutoff (retention job)
func (s *Service) PruneBefore(cutoff time.Time) {
	res := s.db.Where("created_at < ?", cutoff).Delete(&domain.AnalyticsEvent{})
	if res.Error != nil {
		zap.L().Error("analytics prune failed", zap.Error(res.Error))
		return
	}
	if res.RowsAffected > 0 {
		zap.L().Info("pruned analytics events", zap.Int64("count", res.RowsAffected))
	}
}
