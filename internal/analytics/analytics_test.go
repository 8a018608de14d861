package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

func eventsFixture() []domain.AnalyticsEvent {
	day1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	return []domain.AnalyticsEvent{
		{EventType: domain.EventPageView, SessionId: "s1", Duration: 10, CreatedAt: day1},
		{EventType: domain.EventPageView, SessionId: "s2", Duration: 30, CreatedAt: day1},
		{EventType: domain.EventProductView, SessionId: "s1", CreatedAt: day1},
		{EventType: domain.EventAddToCart, SessionId: "s1", CreatedAt: day2},
		{EventType: domain.EventPurchase, SessionId: "s1", CreatedAt: day2},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(eventsFixture())
	assert.Equal(t, int64(5), s.TotalEvents)
	assert.Equal(t, int64(2), s.EventCounts[domain.EventPageView])
	assert.Equal(t, int64(1), s.EventCounts[domain.EventPurchase])
	assert.Equal(t, int64(2), s.UniqueSessions)
	// Mean over the two nonzero durations only.
	assert.InDelta(t, 20.0, s.AverageDuration, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, int64(0), s.TotalEvents)
	assert.Equal(t, int64(0), s.UniqueSessions)
	assert.Zero(t, s.AverageDuration)
}

func TestFunnelRates(t *testing.T) {
	steps := Funnel(eventsFixture())
	assert.Len(t, steps, 5)
	assert.Equal(t, domain.EventPageView, steps[0].Stage)
	assert.InDelta(t, 1.0, steps[0].Rate, 1e-9)
	assert.InDelta(t, 0.5, steps[1].Rate, 1e-9)
	assert.InDelta(t, 0.5, steps[4].Rate, 1e-9)
}

func TestFunnelZeroPageViews(t *testing.T) {
	rows := []domain.AnalyticsEvent{
		{EventType: domain.EventPurchase, SessionId: "s1"},
	}
	steps := Funnel(rows)
	for _, st := range steps {
		assert.Zero(t, st.Rate, "stage %s", st.Stage)
	}
	assert.Equal(t, int64(1), steps[4].Count)
}

func TestTimelineBucketsSorted(t *testing.T) {
	buckets := Timeline(eventsFixture())
	assert.Len(t, buckets, 2)
	assert.Equal(t, "2026-08-01", buckets[0].Date)
	assert.Equal(t, "2026-08-02", buckets[1].Date)
	assert.Equal(t, int64(3), buckets[0].Total)
	assert.Equal(t, int64(2), buckets[0].Sessions)
	assert.Equal(t, int64(1), buckets[1].Sessions)
}

func TestParseRangeDefaults(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	from, to, err := ParseRange("", "", now)
	assert.NoError(t, err)
	assert.Equal(t, now, to)
	assert.Equal(t, now.AddDate(0, 0, -30), from)
}

func TestParseRangeExplicit(t *testing.T) {
	now := time.Now()
	from, to, err := ParseRange("2026-08-01", "2026-08-15", now)
	assert.NoError(t, err)
	assert.Equal(t, 2026, from.Year())
	assert.Equal(t, time.August, from.Month())
	assert.Equal(t, 1, from.Day())
	assert.Equal(t, 15, to.Day())
}

func TestParseRangeInverted(t *testing.T) {
	_, _, err := ParseRange("2026-08-15", "2026-08-01", time.Now())
	assert.Error(t, err)
}

func TestParseRangeGarbage(t *testing.T) {
	_, _, err := ParseRange("not a date", "", time.Now())
	assert.Error(t, err)
}
