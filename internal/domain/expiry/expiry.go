// Package expiry derives freshness state from item expiry dates. All results
// are computed relative to local midnight so an item's remaining days only
// change when the calendar day changes, not with the time of day.
package expiry

import (
	"time"
)

// NoExpiry is the day count assigned to items without an expiry date. It
// sorts such items after every real date.
const NoExpiry = 9999

// Classification thresholds in days.
const (
	WarningDays = 7
	MonthDays   = 30
)

// Status is the freshness classification of an item.
type Status string

const (
	StatusNone    Status = ""
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusExpired Status = "expired"
)

// Bucket labels for expiry grouping, in display order.
const (
	BucketExpired   = "Abgelaufen"
	BucketThisWeek  = "Diese Woche"
	BucketThisMonth = "Diesen Monat"
	BucketLater     = "Später"
)

// DateLayout is the wire format of expiry and purchase dates.
const DateLayout = "2006-01-02"

// DaysUntil returns the number of whole days from today until the given
// expiry date, negative when the date lies in the past. An empty or
// unparseable date yields NoExpiry.
func DaysUntil(expiryDate string, now time.Time) int {
	if expiryDate == "" {
		return NoExpiry
	}
	exp, err := time.ParseInLocation(DateLayout, expiryDate, now.Location())
	if err != nil {
		return NoExpiry
	}
	// Count calendar days, not 24h spans: across a DST transition the
	// midnight-to-midnight distance is not a whole multiple of 24h.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	expDay := time.Date(exp.Year(), exp.Month(), exp.Day(), 0, 0, 0, 0, time.UTC)
	return int(expDay.Sub(today).Hours() / 24)
}

// Classify maps a day count to a freshness status. The NoExpiry sentinel
// classifies as StatusNone: absence of a date is not a warning.
func Classify(days int) Status {
	switch {
	case days == NoExpiry:
		return StatusNone
	case days < 0:
		return StatusExpired
	case days <= WarningDays:
		return StatusWarning
	default:
		return StatusOK
	}
}

// BucketFor maps a day count to its display bucket label.
func BucketFor(days int) string {
	switch {
	case days == NoExpiry:
		return BucketLater
	case days < 0:
		return BucketExpired
	case days <= WarningDays:
		return BucketThisWeek
	case days <= MonthDays:
		return BucketThisMonth
	default:
		return BucketLater
	}
}

// Info is the derived freshness state of one expiry date.
type Info struct {
	Days   int
	Status Status
	Bucket string
}

// Compute derives the full freshness info for one expiry date.
func Compute(expiryDate string, now time.Time) Info {
	days := DaysUntil(expiryDate, now)
	return Info{
		Days:   days,
		Status: Classify(days),
		Bucket: BucketFor(days),
	}
}
