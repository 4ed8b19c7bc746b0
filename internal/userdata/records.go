package userdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type WorkoutSet struct {
	Timestamp time.Time `json:"timestamp"`
	Exercise  string    `json:"exercise"`
	Sets      int       `json:"sets"`
	Reps      int       `json:"reps"`
	Load      float64   `json:"load"`
	RPE       float64   `json:"rpe,omitempty"`
}

type BodyweightReport struct {
	Timestamp time.Time `json:"timestamp"`
	Weight    float64   `json:"weight"`
}

type PainReport struct {
	Timestamp time.Time `json:"timestamp"`
	Level     int       `json:"level"`
	Location  string    `json:"location"`
}

type RecoveryReport struct {
	Timestamp  time.Time `json:"timestamp"`
	SleepHours float64   `json:"sleepHours"`
	Score      int       `json:"score"`
}

type BloodworkMarker struct {
	Timestamp time.Time `json:"timestamp"`
	Marker    string    `json:"marker"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
}

type Injection struct {
	Timestamp time.Time `json:"timestamp"`
	Compound  string    `json:"compound"`
	DoseMg    float64   `json:"doseMg"`
	VolumeMl  float64   `json:"volumeMl"`
	Site      string    `json:"site"`
}

type Conversion struct {
	Timestamp time.Time `json:"timestamp"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Input     float64   `json:"input"`
	Output    float64   `json:"output"`
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339Nano)
}

// Stamp fills in the id and timestamp of a record when they are missing.
func Stamp(r Record, now time.Time) Record {
	if r == nil {
		r = Record{}
	}
	if _, ok := r[FieldID].(string); !ok {
		r[FieldID] = uuid.NewString()
	}
	if _, ok := r[FieldTimestamp].(string); !ok {
		r[FieldTimestamp] = formatTimestamp(now)
	}
	return r
}

func NewWorkoutRecord(ws WorkoutSet) Record {
	r := Record{
		FieldTimestamp: formatTimestamp(ws.Timestamp),
		"type":         "set",
		"exercise":     ws.Exercise,
		"sets":         float64(ws.Sets),
		"reps":         float64(ws.Reps),
		"load":         ws.Load,
	}
	if ws.RPE > 0 {
		r["rpe"] = ws.RPE
	}
	return r
}

func NewBodyweightRecord(wr BodyweightReport) Record {
	return Record{
		FieldTimestamp: formatTimestamp(wr.Timestamp),
		"type":         "bodyweight",
		"weight":       wr.Weight,
	}
}

func NewInjuryRecord(pr PainReport) Record {
	return Record{
		FieldTimestamp: formatTimestamp(pr.Timestamp),
		"type":         "pain",
		"level":        float64(pr.Level),
		"location":     pr.Location,
	}
}

func NewRecoveryRecord(rr RecoveryReport) Record {
	return Record{
		FieldTimestamp: formatTimestamp(rr.Timestamp),
		"type":         "recovery",
		"sleepHours":   rr.SleepHours,
		"score":        float64(rr.Score),
	}
}

func NewBloodworkRecord(bm BloodworkMarker) Record {
	return Record{
		FieldTimestamp: formatTimestamp(bm.Timestamp),
		"type":         "marker",
		"marker":       bm.Marker,
		"value":        bm.Value,
		"unit":         bm.Unit,
	}
}

func NewInjectionRecord(in Injection) Record {
	return Record{
		FieldTimestamp: formatTimestamp(in.Timestamp),
		"type":         "injection",
		"compound":     in.Compound,
		"doseMg":       in.DoseMg,
		"volumeMl":     in.VolumeMl,
		"site":         in.Site,
	}
}

func NewConversionRecord(c Conversion) Record {
	return Record{
		FieldTimestamp: formatTimestamp(c.Timestamp),
		"type":         "conversion",
		"from":         c.From,
		"to":           c.To,
		"input":        c.Input,
		"output":       c.Output,
	}
}

// ParseRecordFields builds a record from key=value pairs. Numbers and
// booleans are stored as such, everything else as a string.
func ParseRecordFields(pairs []string) (Record, error) {
	r := Record{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid field %q, expected key=value", pair)
		}
		r[k] = parseFieldValue(strings.TrimSpace(v))
	}
	return r, nil
}

func parseFieldValue(v string) any {
	// NaN and Inf would not survive JSON encoding
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}
