package series

import (
	"sort"
	"time"

	"github.com/salespipe/forecast-engine/internal/models"
)

// SortThreshold is the input size at which Prepare switches from the stdlib
// stable sort to the explicit merge sort. Large imports routinely exceed it.
const SortThreshold = 10000

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Prepare normalizes raw records into an ordered series. Values are coerced
// to finite numbers (missing or malformed fields become 0), timestamps are
// resolved through dateKey, and the result is sorted ascending by timestamp
// when any timestamps are present. Records never cause an error; the output
// ordering is load-bearing for every downstream forecaster.
func Prepare(records []Record, valueKey, dateKey string) []models.DataPoint {
	if len(records) == 0 {
		return []models.DataPoint{}
	}
	if valueKey == "" {
		valueKey = DefaultValueKey
	}
	if dateKey == "" {
		dateKey = DefaultDateKey
	}

	points := make([]models.DataPoint, 0, len(records))
	dated := false
	for _, rec := range records {
		if rec.IsNumber() {
			points = append(points, models.DataPoint{Value: CoerceValue(*rec.number)})
			continue
		}
		var p models.DataPoint
		if raw, ok := rec.Field(valueKey); ok {
			p.Value = CoerceValue(raw)
		}
		if raw, ok := rec.Field(dateKey); ok {
			if ts, ok := parseTimestamp(raw); ok {
				p.Timestamp = ts
				dated = true
			}
		}
		points = append(points, p)
	}

	if !dated {
		return points
	}
	return sortByTimestamp(points)
}

// sortByTimestamp orders points ascending by timestamp, keeping undated
// points stable relative to each other. Above SortThreshold the explicit
// merge sort guarantees O(n log n); below it the stdlib stable sort is used.
func sortByTimestamp(points []models.DataPoint) []models.DataPoint {
	less := func(a, b models.DataPoint) bool {
		if !a.HasTimestamp() || !b.HasTimestamp() {
			return false
		}
		return a.Timestamp.Before(b.Timestamp)
	}
	if len(points) >= SortThreshold {
		return MergeSort(points, less)
	}
	out := make([]models.DataPoint, len(points))
	copy(out, points)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func parseTimestamp(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
	case float64:
		if t > 0 {
			return time.Unix(int64(t), 0).UTC(), true
		}
	case int64:
		if t > 0 {
			return time.Unix(t, 0).UTC(), true
		}
	}
	return time.Time{}, false
}

// Values extracts the numeric column of a series.
func Values(points []models.DataPoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Value
	}
	return out
}

// Clone deep-copies a series. Computations never mutate their input; every
// transformation works on a copy.
func Clone(points []models.DataPoint) []models.DataPoint {
	out := make([]models.DataPoint, len(points))
	copy(out, points)
	return out
}
