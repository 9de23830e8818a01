// Command lang merges the per-topic message files under
// internal/i18n/localise/<locale>/ into the single embedded catalog at
// internal/i18n/lang/<locale>.json. Run it after editing any message file.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	localiseDir = "internal/i18n/localise"
	outputDir   = "internal/i18n/lang"
)

func main() {
	if err := buildCatalogs(localiseDir, outputDir); err != nil {
		fmt.Fprintln(os.Stderr, "Error building language catalogs:", err)
		os.Exit(1)
	}
}

func buildCatalogs(sourceDir string, targetDir string) error {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return err
	}

	localeDirs, err := os.ReadDir(sourceDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourceDir, err)
	}

	for _, localeDir := range localeDirs {
		if !localeDir.IsDir() {
			continue
		}

		locale := localeDir.Name()
		merged, err := mergeLocale(filepath.Join(sourceDir, locale))
		if err != nil {
			return fmt.Errorf("locale %s: %w", locale, err)
		}

		// encoding/json sorts map keys, which keeps catalog diffs stable
		// regardless of merge order.
		data, err := json.MarshalIndent(merged, "", "  ")
		if err != nil {
			return fmt.Errorf("locale %s: %w", locale, err)
		}

		outputPath := filepath.Join(targetDir, locale+".json")
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return err
		}
	}

	return nil
}

func mergeLocale(dir string) (map[string]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]string)
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}

		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("%s: %w", file.Name(), err)
		}

		for key, message := range messages {
			if _, exists := merged[key]; exists {
				return nil, fmt.Errorf("duplicate message key %q in %s", key, file.Name())
			}
			merged[key] = message
		}
	}

	return merged, nil
}
