// Package constants defines shared constant values.
package constants

// AppName is the project identifier used in logs and metadata.
const AppName = "lockey"

// CommandName is the primary CLI command name.
const CommandName = "lockey"

// DefaultConfigFile is the project configuration looked up in the working
// directory when --config is not given.
const DefaultConfigFile = "lockey.json"

// DefaultLocalesDir is where namespace files live when neither the config
// file nor --locales-dir says otherwise.
const DefaultLocalesDir = "public/locales"
