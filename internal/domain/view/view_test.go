package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyTil/HeimInventar/internal/domain/expiry"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
)

var now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local)

func fixtureItems() []product.Item {
	return []product.Item{
		{ID: 1, Name: "Vollmilch", Barcode: "4311501043622", ExpiryDate: "2026-03-18", Location: "Kühlschrank"},
		{ID: 2, Name: "Bread", Notes: "vom Bäcker", ExpiryDate: "2026-03-16", Location: "Küche"},
		{ID: 3, Name: "Reis", ExpiryDate: "2027-01-01", Location: "Speisekammer"},
		{ID: 4, Name: "Honig", Location: "Speisekammer"},
		{ID: 5, Name: "Joghurt", ExpiryDate: "2026-03-10", Location: "Kühlschrank"},
	}
}

func flatten(groups []Group) []int64 {
	var ids []int64
	for _, g := range groups {
		for _, it := range g.Items {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func TestCompute_NoCriteria(t *testing.T) {
	groups := Compute(fixtureItems(), Criteria{}, expiry.NewCache(), now)

	require.Len(t, groups, 1)
	assert.Equal(t, LabelAll, groups[0].Label)
	// Ascending expiry, undated item last.
	assert.Equal(t, []int64{5, 2, 1, 3, 4}, flatten(groups))
}

func TestCompute_SearchCaseInsensitive(t *testing.T) {
	cache := expiry.NewCache()

	groups := Compute(fixtureItems(), Criteria{SearchText: "milch"}, cache, now)
	assert.Equal(t, []int64{1}, flatten(groups))

	groups = Compute(fixtureItems(), Criteria{SearchText: "BREAD"}, cache, now)
	assert.Equal(t, []int64{2}, flatten(groups))

	// Notes and barcodes are searched too.
	groups = Compute(fixtureItems(), Criteria{SearchText: "bäcker"}, cache, now)
	assert.Equal(t, []int64{2}, flatten(groups))

	groups = Compute(fixtureItems(), Criteria{SearchText: "43115"}, cache, now)
	assert.Equal(t, []int64{1}, flatten(groups))
}

func TestCompute_FiltersAreConjunctive(t *testing.T) {
	c := Criteria{
		SearchText: "o",
		Locations:  []string{"Kühlschrank"},
		DateFrom:   "2026-03-15",
	}

	// Location keeps Vollmilch and Joghurt out of the search matches; the
	// date bound drops Joghurt (expired before the range).
	groups := Compute(fixtureItems(), c, expiry.NewCache(), now)
	assert.Equal(t, []int64{1}, flatten(groups))
}

func TestCompute_DateRangeExcludesUndated(t *testing.T) {
	c := Criteria{DateFrom: "2026-01-01", DateTo: "2027-12-31"}

	groups := Compute(fixtureItems(), c, expiry.NewCache(), now)
	assert.NotContains(t, flatten(groups), int64(4), "undated item excluded while a date bound is active")
	assert.Equal(t, []int64{5, 2, 1, 3}, flatten(groups))
}

func TestCompute_DateRangeInclusive(t *testing.T) {
	c := Criteria{DateFrom: "2026-03-16", DateTo: "2026-03-18"}

	groups := Compute(fixtureItems(), c, expiry.NewCache(), now)
	assert.Equal(t, []int64{2, 1}, flatten(groups))
}

func TestCompute_DateRangeComparesParsedDates(t *testing.T) {
	// Malformed bounds (e.g. unvalidated CLI input) are inactive, not a
	// lexicographic filter that would drop everything.
	c := Criteria{DateFrom: "15.03.2026", DateTo: "2026-03-18"}

	groups := Compute(fixtureItems(), c, expiry.NewCache(), now)
	assert.Equal(t, []int64{5, 2, 1}, flatten(groups))
}

func TestCompute_MalformedExpirySortsLast(t *testing.T) {
	items := fixtureItems()
	items[2].ExpiryDate = "bald"

	groups := Compute(items, Criteria{}, expiry.NewCache(), now)
	assert.Equal(t, []int64{5, 2, 1, 3, 4}, flatten(groups))

	// And a date bound excludes it like an undated item.
	groups = Compute(items, Criteria{DateFrom: "2026-01-01"}, expiry.NewCache(), now)
	assert.Equal(t, []int64{5, 2, 1}, flatten(groups))
}

func TestCompute_GroupByLocation(t *testing.T) {
	items := fixtureItems()
	items[3].Location = ""

	groups := Compute(items, Criteria{GroupBy: GroupLocation}, expiry.NewCache(), now)

	labels := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Label
	}
	// First-seen order of the sorted collection.
	assert.Equal(t, []string{"Kühlschrank", "Küche", "Speisekammer", LabelNoLocation}, labels)
}

func TestCompute_GroupByExpiry(t *testing.T) {
	groups := Compute(fixtureItems(), Criteria{GroupBy: GroupExpiry}, expiry.NewCache(), now)

	byLabel := map[string][]int64{}
	for _, g := range groups {
		for _, it := range g.Items {
			byLabel[g.Label] = append(byLabel[g.Label], it.ID)
		}
	}

	assert.Equal(t, []int64{5}, byLabel[expiry.BucketExpired])
	assert.Equal(t, []int64{2, 1}, byLabel[expiry.BucketThisWeek])
	assert.Equal(t, []int64{3, 4}, byLabel[expiry.BucketLater])
}

func TestCompute_GroupsPartitionItems(t *testing.T) {
	for _, groupBy := range []string{GroupNone, GroupLocation, GroupExpiry} {
		groups := Compute(fixtureItems(), Criteria{GroupBy: groupBy}, expiry.NewCache(), now)

		seen := map[int64]int{}
		for _, id := range flatten(groups) {
			seen[id]++
		}
		assert.Len(t, seen, 5, "groupBy=%s", groupBy)
		for id, n := range seen {
			assert.Equal(t, 1, n, "groupBy=%s item=%d", groupBy, id)
		}
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	items := fixtureItems()
	Compute(items, Criteria{GroupBy: GroupExpiry}, expiry.NewCache(), now)

	assert.Equal(t, fixtureItems(), items)
}

func TestCompute_EmptyCollection(t *testing.T) {
	groups := Compute(nil, Criteria{GroupBy: GroupLocation}, expiry.NewCache(), now)
	assert.Empty(t, groups)

	groups = Compute(nil, Criteria{}, expiry.NewCache(), now)
	require.Len(t, groups, 1)
	assert.Empty(t, groups[0].Items)
}
