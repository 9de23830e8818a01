// Package environment reads runtime environment configuration.
package environment

import (
	"os"
)

var posthogAPIKeyDefault = "REPL_POSTHOG_API_KEY" // #nosec G101 -- build-time placeholder replaced in release builds.

func PosthogAPIKey() string {
	key, present := os.LookupEnv("POSTHOG_API_KEY")
	if present {
		return key
	}

	return posthogAPIKeyDefault
}

func AppVersion() string {
	return "REPL_VERSION"
}

func HelpURL() string {
	return "REPL_HELP_URL"
}
