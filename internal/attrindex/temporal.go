package attrindex

import "time"

// TemporalIndex buckets engram ids by the year, month, day, and hour of a
// timestamp (spec §4.D), so range-style temporal queries can be served by
// unioning whichever bucket granularity the caller needs instead of
// scanning every engram.
type TemporalIndex struct {
	byYear  map[int]map[string]bool
	byMonth map[string]map[string]bool // "2026-07"
	byDay   map[string]map[string]bool // "2026-07-31"
	byHour  map[string]map[string]bool // "2026-07-31T14"
}

// NewTemporalIndex returns an empty TemporalIndex.
func NewTemporalIndex() *TemporalIndex {
	return &TemporalIndex{
		byYear:  make(map[int]map[string]bool),
		byMonth: make(map[string]map[string]bool),
		byDay:   make(map[string]map[string]bool),
		byHour:  make(map[string]map[string]bool),
	}
}

func addToSet(m map[string]map[string]bool, key, id string) {
	set, ok := m[key]
	if !ok {
		set = make(map[string]bool)
		m[key] = set
	}
	set[id] = true
}

func removeFromSet(m map[string]map[string]bool, key, id string) {
	set, ok := m[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(m, key)
	}
}

// Add records engramID under ts's year, month, day, and hour buckets.
func (t *TemporalIndex) Add(ts time.Time, engramID string) {
	ts = ts.UTC()

	yset, ok := t.byYear[ts.Year()]
	if !ok {
		yset = make(map[string]bool)
		t.byYear[ts.Year()] = yset
	}
	yset[engramID] = true

	addToSet(t.byMonth, ts.Format("2006-01"), engramID)
	addToSet(t.byDay, ts.Format("2006-01-02"), engramID)
	addToSet(t.byHour, ts.Format("2006-01-02T15"), engramID)
}

// Remove drops engramID from ts's year, month, day, and hour buckets.
func (t *TemporalIndex) Remove(ts time.Time, engramID string) {
	ts = ts.UTC()

	if yset, ok := t.byYear[ts.Year()]; ok {
		delete(yset, engramID)
		if len(yset) == 0 {
			delete(t.byYear, ts.Year())
		}
	}

	removeFromSet(t.byMonth, ts.Format("2006-01"), engramID)
	removeFromSet(t.byDay, ts.Format("2006-01-02"), engramID)
	removeFromSet(t.byHour, ts.Format("2006-01-02T15"), engramID)
}

// Year returns every engram id recorded in the given year.
func (t *TemporalIndex) Year(year int) map[string]bool {
	return t.byYear[year]
}

// Day returns every engram id recorded on the given date (UTC,
// "2006-01-02").
func (t *TemporalIndex) Day(date string) map[string]bool {
	return t.byDay[date]
}

// Hour returns every engram id recorded in the given hour (UTC,
// "2006-01-02T15").
func (t *TemporalIndex) Hour(hour string) map[string]bool {
	return t.byHour[hour]
}

// Month returns every engram id recorded in the given month (UTC,
// "2006-01").
func (t *TemporalIndex) Month(month string) map[string]bool {
	return t.byMonth[month]
}
