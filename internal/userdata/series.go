package userdata

import (
	"time"
)

type SeriesName string

const (
	SeriesWorkouts    SeriesName = "workouts"
	SeriesNutrition   SeriesName = "nutrition"
	SeriesRecovery    SeriesName = "recovery"
	SeriesInjuries    SeriesName = "injuries"
	SeriesPrograms    SeriesName = "programs"
	SeriesBloodwork   SeriesName = "bloodwork"
	SeriesCycle       SeriesName = "cycle"
	SeriesConversions SeriesName = "conversions"
)

// AllSeries lists every series in a fixed order.
func AllSeries() []SeriesName {
	return []SeriesName{
		SeriesWorkouts,
		SeriesNutrition,
		SeriesRecovery,
		SeriesInjuries,
		SeriesPrograms,
		SeriesBloodwork,
		SeriesCycle,
		SeriesConversions,
	}
}

func (s SeriesName) String() string {
	return string(s)
}

func (s SeriesName) IsValid() bool {
	for _, name := range AllSeries() {
		if s == name {
			return true
		}
	}
	return false
}

const (
	FieldID        = "id"
	FieldTimestamp = "timestamp"
)

// Record is an opaque series entry. Values are JSON types (string,
// float64, bool, nil, []any, map[string]any) so that a record survives
// a save/load round trip unchanged.
type Record map[string]any

// Timestamp parses the timestamp field, the bool is false when the field
// is missing or not RFC 3339.
func (r Record) Timestamp() (time.Time, bool) {
	raw, ok := r[FieldTimestamp].(string)
	if !ok {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (r Record) String(field string) string {
	s, _ := r[field].(string)
	return s
}

func (r Record) Number(field string) (float64, bool) {
	n, ok := r[field].(float64)
	return n, ok
}

// Data holds every series, each always non-nil.
type Data map[SeriesName][]Record

func NewData() Data {
	d := make(Data, len(AllSeries()))
	for _, name := range AllSeries() {
		d[name] = []Record{}
	}
	return d
}
