// Package view computes display-ready projections of the item collection.
// The projection is a pure function of the items and the criteria: filtering,
// ordering and grouping never mutate the collection itself.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/SimplyTil/HeimInventar/internal/domain/expiry"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
)

// Grouping modes.
const (
	GroupNone     = "none"
	GroupLocation = "location"
	GroupExpiry   = "expiry"
)

// Fallback group labels.
const (
	LabelAll        = "Alle Produkte"
	LabelNoLocation = "Sonstiges"
)

// maxSortDate places items without a parseable expiry date after every
// dated item.
var maxSortDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// Criteria selects and arranges items for display. Zero-value fields are
// inactive: an empty criteria set yields all items in one group.
type Criteria struct {
	SearchText string
	Locations  []string
	DateFrom   string
	DateTo     string
	GroupBy    string
}

// Group is one display section of the projection.
type Group struct {
	Label string
	Items []product.Item
}

// Compute filters, sorts and groups the items according to the criteria.
// Filters combine conjunctively. Within every group items are ordered by
// ascending expiry date, undated items last; ties keep their collection
// order. The cache memoizes per-date freshness lookups across calls and must
// be cleared by the caller when the collection is replaced.
func Compute(items []product.Item, c Criteria, cache *expiry.Cache, now time.Time) []Group {
	filtered := filter(items, c)

	sort.SliceStable(filtered, func(i, j int) bool {
		return sortDate(filtered[i]).Before(sortDate(filtered[j]))
	})

	return group(filtered, c.GroupBy, cache, now)
}

func filter(items []product.Item, c Criteria) []product.Item {
	search := strings.ToLower(strings.TrimSpace(c.SearchText))

	locations := make(map[string]bool, len(c.Locations))
	for _, loc := range c.Locations {
		locations[loc] = true
	}

	// Bounds are parsed once; an unparseable bound is inactive.
	from, hasFrom := parseDate(c.DateFrom)
	to, hasTo := parseDate(c.DateTo)
	dateBound := hasFrom || hasTo

	out := make([]product.Item, 0, len(items))
	for _, it := range items {
		if search != "" && !matchesSearch(it, search) {
			continue
		}
		if len(locations) > 0 && !locations[it.Location] {
			continue
		}
		if dateBound {
			d, ok := parseDate(it.ExpiryDate)
			if !ok {
				continue
			}
			if hasFrom && d.Before(from) {
				continue
			}
			if hasTo && d.After(to) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// parseDate reads a wire-format date; ok is false for empty or malformed
// values.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(expiry.DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func matchesSearch(it product.Item, search string) bool {
	return strings.Contains(strings.ToLower(it.Name), search) ||
		strings.Contains(strings.ToLower(it.Notes), search) ||
		strings.Contains(strings.ToLower(it.Barcode), search)
}

func sortDate(it product.Item) time.Time {
	d, ok := parseDate(it.ExpiryDate)
	if !ok {
		return maxSortDate
	}
	return d
}

// group partitions the sorted items into labeled sections. Sections appear
// in the order their first member was encountered.
func group(items []product.Item, groupBy string, cache *expiry.Cache, now time.Time) []Group {
	if groupBy == "" || groupBy == GroupNone {
		return []Group{{Label: LabelAll, Items: items}}
	}

	index := make(map[string]int)
	var groups []Group

	for _, it := range items {
		var label string
		switch groupBy {
		case GroupLocation:
			label = it.Location
			if label == "" {
				label = LabelNoLocation
			}
		case GroupExpiry:
			label = cache.Get(it.ExpiryDate, now).Bucket
		default:
			label = LabelAll
		}

		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	if groups == nil {
		groups = []Group{}
	}
	return groups
}
