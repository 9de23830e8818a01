// Package config handles the lockey.json project configuration.
package config

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"lockey/internal/constants"
	"lockey/internal/locfile"
	"lockey/internal/perf"
)

// ProjectConfig supplies the defaults for languages, namespaces and the
// locales root so none of them need to be hardcoded into command invocations.
type ProjectConfig struct {
	LocalesDir        string   `json:"localesDir"`
	ReferenceLanguage string   `json:"referenceLanguage"`
	TargetLanguages   []string `json:"targetLanguages"`
	Namespaces        []string `json:"namespaces"`
}

func Default() ProjectConfig {
	return ProjectConfig{
		LocalesDir:        constants.DefaultLocalesDir,
		ReferenceLanguage: "en",
		TargetLanguages:   []string{},
		Namespaces:        []string{"common"},
	}
}

func ReadConfig(fs afero.Fs, meta Metadata) (ProjectConfig, error) {
	region := perf.StartRegion("io.config.read")
	defer region.End()

	exists, _ := afero.Exists(fs, meta.ConfigPath)
	if !exists {
		return ProjectConfig{}, &ConfigFileNotFoundError{Path: meta.ConfigPath}
	}

	data, err := afero.ReadFile(fs, meta.ConfigPath)
	if err != nil {
		return ProjectConfig{}, errors.Wrap(err, "failed to read configuration file")
	}

	var config ProjectConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return ProjectConfig{}, &ConfigFileInvalidError{Err: err}
	}

	return config, nil
}

// ReadConfigOrDefault falls back to the built-in defaults when the config
// file does not exist, so the tool works in a bare directory. Any other
// failure is still an error.
func ReadConfigOrDefault(fs afero.Fs, meta Metadata) (ProjectConfig, error) {
	config, err := ReadConfig(fs, meta)
	if err == nil {
		return config, nil
	}
	if errors.Is(err, &ConfigFileNotFoundError{}) {
		return Default(), nil
	}
	return ProjectConfig{}, err
}

func WriteConfig(fs afero.Fs, meta Metadata, config ProjectConfig) error {
	region := perf.StartRegion("io.config.write")
	defer region.End()

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return locfile.WriteAtomic(fs, meta.ConfigPath, data)
}

// InitConfig writes the default configuration. An existing file is left
// untouched unless force is set.
func InitConfig(fs afero.Fs, meta Metadata, force bool) (ProjectConfig, error) {
	region := perf.StartRegion("io.config.init")
	defer region.End()

	exists, err := afero.Exists(fs, meta.ConfigPath)
	if err != nil {
		return ProjectConfig{}, err
	}
	if exists && !force {
		return ProjectConfig{}, &ConfigFileExistsError{Path: meta.ConfigPath}
	}

	config := Default()
	if err := WriteConfig(fs, meta, config); err != nil {
		return ProjectConfig{}, err
	}
	return config, nil
}
