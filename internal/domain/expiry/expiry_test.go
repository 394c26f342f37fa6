package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed reference day for deterministic day counts.
var now = time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)

func TestDaysUntil(t *testing.T) {
	tests := []struct {
		name   string
		expiry string
		want   int
	}{
		{"today", "2026-03-15", 0},
		{"tomorrow", "2026-03-16", 1},
		{"yesterday", "2026-03-14", -1},
		{"next week", "2026-03-22", 7},
		{"next month", "2026-04-14", 30},
		{"far future", "2027-03-15", 365},
		{"no date", "", NoExpiry},
		{"garbage", "not-a-date", NoExpiry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.expiry, now))
		})
	}
}

func TestDaysUntil_IndependentOfTimeOfDay(t *testing.T) {
	morning := time.Date(2026, 3, 15, 0, 1, 0, 0, time.Local)
	evening := time.Date(2026, 3, 15, 23, 59, 0, 0, time.Local)

	assert.Equal(t, DaysUntil("2026-03-20", morning), DaysUntil("2026-03-20", evening))
}

func TestDaysUntil_AcrossDSTTransition(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// Clocks spring forward on 2026-03-29, making that midnight-to-midnight
	// span 23 hours. The count is calendar days, not 24h spans.
	before := time.Date(2026, 3, 28, 10, 0, 0, 0, berlin)
	assert.Equal(t, 2, DaysUntil("2026-03-30", before))
	assert.Equal(t, 1, DaysUntil("2026-03-29", before))

	// Fall back on 2026-10-25 makes the span 25 hours; no extra day either.
	autumn := time.Date(2026, 10, 24, 10, 0, 0, 0, berlin)
	assert.Equal(t, 2, DaysUntil("2026-10-26", autumn))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		days int
		want Status
	}{
		{-30, StatusExpired},
		{-1, StatusExpired},
		{0, StatusWarning},
		{7, StatusWarning},
		{8, StatusOK},
		{365, StatusOK},
		{NoExpiry, StatusNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.days), "days=%d", tt.days)
	}
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-1, BucketExpired},
		{0, BucketThisWeek},
		{7, BucketThisWeek},
		{8, BucketThisMonth},
		{30, BucketThisMonth},
		{31, BucketLater},
		{NoExpiry, BucketLater},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BucketFor(tt.days), "days=%d", tt.days)
	}
}

func TestCache_Memoizes(t *testing.T) {
	c := NewCache()

	first := c.Get("2026-03-20", now)
	second := c.Get("2026-03-20", now)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, c.Len())

	// A different moment does not recompute a cached date.
	later := now.Add(48 * time.Hour)
	stale := c.Get("2026-03-20", later)
	assert.Equal(t, first, stale)
}

func TestCache_Clear(t *testing.T) {
	c := NewCache()

	c.Get("2026-03-20", now)
	c.Get("2026-04-01", now)
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())

	// After clearing, the same date recomputes against the new moment.
	later := now.AddDate(0, 0, 2)
	info := c.Get("2026-03-20", later)
	assert.Equal(t, 3, info.Days)
}
