// Package perf records lightweight performance marks and measures, backed by
// runtime/trace regions and OpenTelemetry spans for the command lifecycle.
package perf

import (
	"context"
	"fmt"
	"runtime/trace"
	"slices"
	"time"
)

type EntryType string

const (
	MarkType    EntryType = "MarkType"
	MeasureType EntryType = "MeasureType"
)

type Details map[string]interface{}

type Entry struct {
	Name      string        `json:"name"`
	Type      EntryType     `json:"type"`
	StartTime time.Time     `json:"start_time,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Details   *Details      `json:"details,omitempty"`
}

type Log []Entry

var perfLog = make(Log, 0)

type Region struct {
	region *trace.Region
	marker *Entry
}

func (r *Region) End() {
	r.EndWithDetails(nil)
}

func (r *Region) EndWithDetails(details *Details) {
	r.region.End()
	startName := r.marker.Name
	endName := fmt.Sprintf("%s-end", startName)
	Mark(endName, details)
	Measure(fmt.Sprintf("%s-duration", startName), startName, endName, r.marker.Details)
}

func StartRegion(marker string) *Region {
	return StartRegionWithDetails(marker, nil)
}

func StartRegionWithDetails(marker string, details *Details) *Region {
	return &Region{
		region: trace.StartRegion(context.Background(), marker),
		marker: Mark(marker, details),
	}
}

func Mark(marker string, details *Details) *Entry {
	entry := Entry{
		Name:      marker,
		Type:      MarkType,
		StartTime: time.Now(),
		Details:   details,
	}
	perfLog = append(perfLog, entry)

	return &entry
}

func Measure(marker string, fromMarker string, toMarker string, details *Details) {
	fromIdx := slices.IndexFunc(perfLog, func(e Entry) bool { return e.Name == fromMarker })
	if fromIdx == -1 {
		return
	}

	toIdx := slices.IndexFunc(perfLog, func(e Entry) bool { return e.Name == toMarker })
	if toIdx == -1 {
		return
	}

	from := perfLog[fromIdx].StartTime
	to := perfLog[toIdx].StartTime

	perfLog = append(perfLog, Entry{
		Name:      marker,
		Type:      MeasureType,
		StartTime: from,
		Duration:  to.Sub(from),
		Details:   details,
	})
}

func GetLog() Log {
	return perfLog
}

func GetMeasurements() Log {
	var out Log
	for _, entry := range perfLog {
		if entry.Type == MeasureType {
			out = append(out, entry)
		}
	}
	return out
}

func ClearLog() {
	perfLog = make(Log, 0)
}
