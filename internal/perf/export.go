package perf

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultExportFilename = "lockey-perf.json"

type exportEntry struct {
	Name           string     `json:"name"`
	Type           EntryType  `json:"type"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
	StartTimestamp *time.Time `json:"start_timestamp,omitempty"`
	DurationNS     int64      `json:"duration_ns,omitempty"`
	Details        *Details   `json:"details,omitempty"`
}

// ExportToFile writes the supplied performance log as JSON to
// <outDir>/lockey-perf.json. Absolute filesystem paths in path-like detail
// keys are rewritten relative to baseDir so the artifact stays portable.
// Best-effort diagnostic output; callers should treat errors as non-fatal.
func ExportToFile(outDir string, baseDir string, log Log) (string, error) {
	if outDir == "" {
		outDir = "."
	}

	exported := make([]exportEntry, 0, len(log))
	for _, entry := range log {
		exported = append(exported, exportEntry{
			Name:           entry.Name,
			Type:           entry.Type,
			Timestamp:      markTimestamp(entry),
			StartTimestamp: measureStartTimestamp(entry),
			DurationNS:     measureDuration(entry),
			Details:        normalizeDetails(entry.Details, baseDir),
		})
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, defaultExportFilename)
	data, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return "", err
	}

	return path, os.WriteFile(path, data, 0644)
}

func markTimestamp(entry Entry) *time.Time {
	if entry.Type != MarkType {
		return nil
	}
	return &entry.StartTime
}

func measureStartTimestamp(entry Entry) *time.Time {
	if entry.Type != MeasureType {
		return nil
	}
	return &entry.StartTime
}

func measureDuration(entry Entry) int64 {
	if entry.Type != MeasureType {
		return 0
	}
	return entry.Duration.Nanoseconds()
}

func normalizeDetails(details *Details, baseDir string) *Details {
	if details == nil || len(*details) == 0 {
		return details
	}

	normalized := make(Details, len(*details))
	for key, value := range *details {
		normalized[key] = normalizeValue(key, value, baseDir)
	}
	return &normalized
}

func normalizeValue(key string, value interface{}, baseDir string) interface{} {
	stringValue, ok := value.(string)
	if !ok || !looksLikePathKey(key) {
		return value
	}

	if baseDir != "" && filepath.IsAbs(stringValue) {
		rel, err := filepath.Rel(baseDir, stringValue)
		if err == nil {
			return exportPath(rel)
		}
	}

	return exportPath(stringValue)
}

func looksLikePathKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	return key == "path" || strings.HasSuffix(key, "path")
}

func exportPath(value string) string {
	cleaned := filepath.Clean(value)
	cleaned = strings.TrimPrefix(cleaned, "./")
	return filepath.ToSlash(cleaned)
}
