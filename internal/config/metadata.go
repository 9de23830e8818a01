package config

import (
	"path/filepath"
	"strings"
)

type Metadata struct {
	ConfigPath string
}

func NewMetadata(configPath string) Metadata {
	return Metadata{ConfigPath: configPath}
}

func (m Metadata) Dir() string {
	return filepath.Dir(filepath.FromSlash(m.ConfigPath))
}

// LocalesDirPath resolves the locales root relative to the config file's
// directory unless it is absolute.
func (m Metadata) LocalesDirPath(config ProjectConfig) string {
	if isAbsoluteOrRootedPath(config.LocalesDir) {
		return config.LocalesDir
	}
	return filepath.Join(m.Dir(), config.LocalesDir)
}

func isAbsoluteOrRootedPath(path string) bool {
	if filepath.IsAbs(path) {
		return true
	}
	return strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\")
}
