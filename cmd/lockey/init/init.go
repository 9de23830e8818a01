package init

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"lockey/internal/config"
	"lockey/internal/fileutils"
	"lockey/internal/i18n"
	"lockey/internal/logger"
	"lockey/internal/perf"
	"lockey/internal/telemetry"
)

type initDeps struct {
	fs        afero.Fs
	logger    *logger.Logger
	telemetry func(telemetry.CommandTelemetry)
}

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: i18n.T("cmd.init.short"),
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			_, span := perf.StartSpan(cmd.Context(), "app.command.init")

			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}
			quiet, err := cmd.Flags().GetBool("quiet")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}

			log := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), quiet, debug)

			deps := initDeps{
				fs:        fileutils.InitFilesystem(),
				logger:    log,
				telemetry: telemetry.RecordCommand,
			}

			err = runInit(configPath, force, deps)
			span.SetAttributes(attribute.Bool("success", err == nil))
			span.End()

			payload := telemetry.CommandTelemetry{
				Command:  "init",
				Success:  err == nil,
				Error:    err,
				ExitCode: 0,
				Arguments: map[string]interface{}{
					"force": force,
				},
			}
			if err != nil {
				payload.ExitCode = 1
			}
			deps.telemetry(payload)

			return err
		},
	}

	cmd.Flags().BoolP("force", "f", false, i18n.T("cmd.init.flag.force"))

	return cmd
}

func runInit(configPath string, force bool, deps initDeps) error {
	meta := config.NewMetadata(configPath)

	if _, err := config.InitConfig(deps.fs, meta, force); err != nil {
		return err
	}

	deps.logger.Log(i18n.T("cmd.init.success", i18n.Tvars{
		Data: &i18n.TData{"path": meta.ConfigPath},
	}), false)
	return nil
}
