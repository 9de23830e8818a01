// Package telemetry reports anonymous command usage. Reporting is skipped
// under DO_NOT_TRACK, LOCKEY_NO_TELEMETRY, or the test environment.
package telemetry

import (
	"io"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/posthog/posthog-go"

	"lockey/internal/environment"
)

type Client interface {
	io.Closer
	Enqueue(posthog.Message) error
}

var singleClient Client
var machineId string

type CommandTelemetry struct {
	Command     string                 `json:"command"`
	Success     bool                   `json:"success"`
	Error       error                  `json:"error,omitempty"`
	ExitCode    int                    `json:"exitCode"`
	Interactive bool                   `json:"interactive"`
	Arguments   map[string]interface{} `json:"arguments,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

// SetClientForTesting swaps the posthog client and returns a restore func.
func SetClientForTesting(client Client) func() {
	previous := singleClient
	singleClient = client
	return func() {
		singleClient = previous
	}
}

func disabled() bool {
	if _, present := os.LookupEnv("LOCKEY_TEST"); present {
		return true
	}
	if _, present := os.LookupEnv("LOCKEY_NO_TELEMETRY"); present {
		return true
	}
	if value, present := os.LookupEnv("DO_NOT_TRACK"); present && value != "0" {
		return true
	}
	return false
}

func getMachineId() string {
	envMachineId, hasEnvId := os.LookupEnv("MACHINE_ID")

	if hasEnvId {
		return envMachineId
	}

	machineId, _ = machineid.ID()
	return machineId
}

func initClient() Client {
	if singleClient != nil {
		return singleClient
	}
	machineId = getMachineId()

	pc, _ := posthog.NewWithConfig(
		environment.PosthogAPIKey(),
		posthog.Config{
			Endpoint: "https://eu.i.posthog.com",
		},
	)
	singleClient = pc
	return singleClient
}

func Capture(event string, properties map[string]interface{}) {
	if disabled() {
		return
	}

	client := initClient()
	_ = client.Enqueue(posthog.Capture{
		Event:      event,
		DistinctId: machineId,
		Properties: properties,
	})
	_ = client.Close()
}

func RecordCommand(command CommandTelemetry) {
	properties := map[string]interface{}{
		"type":        "command",
		"success":     command.Success,
		"exitCode":    command.ExitCode,
		"interactive": command.Interactive,
		"version":     environment.AppVersion(),
	}

	if command.Error != nil {
		properties["error"] = command.Error.Error()
	}

	if command.Arguments != nil {
		properties["arguments"] = command.Arguments
	}

	if command.Extra != nil {
		properties["extra"] = command.Extra
	}

	Capture(command.Command, properties)
}
