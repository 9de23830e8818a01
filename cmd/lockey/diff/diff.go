package diff

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"lockey/internal/config"
	"lockey/internal/fileutils"
	"lockey/internal/i18n"
	"lockey/internal/locfile"
	"lockey/internal/loctree"
	"lockey/internal/logger"
	"lockey/internal/perf"
	"lockey/internal/telemetry"
)

type diffOptions struct {
	ConfigPath string
	LocalesDir string
	Reference  string
	Target     string
	Namespaces []string
	Quiet      bool
	Debug      bool
}

type diffDeps struct {
	fs        afero.Fs
	logger    *logger.Logger
	telemetry func(telemetry.CommandTelemetry)
}

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: i18n.T("cmd.diff.short"),
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			_, span := perf.StartSpan(cmd.Context(), "app.command.diff")

			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}
			localesDir, err := cmd.Flags().GetString("locales-dir")
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
			reference, err := cmd.Flags().GetString("reference")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}
			target, err := cmd.Flags().GetString("target")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}
			namespaces, err := cmd.Flags().GetStringSlice("namespace")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}

			log := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), quiet, debug)

			deps := diffDeps{
				fs:        fileutils.InitFilesystem(),
				logger:    log,
				telemetry: telemetry.RecordCommand,
			}

			missingCount, err := runDiff(diffOptions{
				ConfigPath: configPath,
				LocalesDir: localesDir,
				Reference:  reference,
				Target:     target,
				Namespaces: namespaces,
				Quiet:      quiet,
				Debug:      debug,
			}, deps)
			span.SetAttributes(attribute.Bool("success", err == nil))
			span.End()

			payload := telemetry.CommandTelemetry{
				Command:  "diff",
				Success:  err == nil,
				Error:    err,
				ExitCode: 0,
				Arguments: map[string]interface{}{
					"reference":  reference,
					"target":     target,
					"namespaces": namespaces,
				},
			}
			if err != nil {
				payload.ExitCode = 1
			} else {
				payload.Extra = map[string]interface{}{
					"missingKeys": missingCount,
				}
			}
			deps.telemetry(payload)

			return err
		},
	}

	cmd.Flags().StringP("reference", "r", "", i18n.T("cmd.diff.flag.reference"))
	cmd.Flags().StringP("target", "t", "", i18n.T("cmd.diff.flag.target"))
	cmd.Flags().StringSliceP("namespace", "n", nil, i18n.T("cmd.diff.flag.namespace"))

	return cmd
}

func runDiff(opts diffOptions, deps diffDeps) (int, error) {
	meta := config.NewMetadata(opts.ConfigPath)

	cfg, err := config.ReadConfigOrDefault(deps.fs, meta)
	if err != nil {
		return 0, err
	}

	reference := opts.Reference
	if reference == "" {
		reference = cfg.ReferenceLanguage
	}
	if reference == "" {
		return 0, errors.New("a reference language is required (--reference or referenceLanguage in the config)")
	}

	targets := cfg.TargetLanguages
	if opts.Target != "" {
		targets = []string{opts.Target}
	}
	if len(targets) == 0 {
		return 0, errors.New("a target language is required (--target or targetLanguages in the config)")
	}

	namespaces := opts.Namespaces
	if len(namespaces) == 0 {
		namespaces = cfg.Namespaces
	}
	if len(namespaces) == 0 {
		return 0, errors.New("at least one namespace is required (--namespace or namespaces in the config)")
	}

	localesDir := opts.LocalesDir
	if localesDir == "" {
		localesDir = meta.LocalesDirPath(cfg)
	}

	missingTotal := 0
	for _, target := range targets {
		for _, namespace := range namespaces {
			referenceTree := readTreeOrEmpty(deps, locfile.Path(localesDir, reference, namespace))
			targetTree := readTreeOrEmpty(deps, locfile.Path(localesDir, target, namespace))

			missing := loctree.Diff(referenceTree, targetTree)
			missingTotal += len(missing)

			deps.logger.Log(formatReportLine(target, namespace, missing), true)
		}
	}

	return missingTotal, nil
}

// readTreeOrEmpty degrades every read failure to an empty tree with a
// warning. An unreadable target is indistinguishable from a fully missing
// one; the warning on the error stream is the only signal.
func readTreeOrEmpty(deps diffDeps, path string) *loctree.Tree {
	tree, err := locfile.Read(deps.fs, path)
	if err != nil {
		deps.logger.Warn(i18n.T("cmd.diff.warning.read_failed", i18n.Tvars{
			Data: &i18n.TData{"path": path, "reason": err.Error()},
		}))
		return loctree.New()
	}
	return tree
}

func formatReportLine(target string, namespace string, missing []string) string {
	quoted := make([]string, 0, len(missing))
	for _, key := range missing {
		quoted = append(quoted, fmt.Sprintf("%q", key))
	}
	return fmt.Sprintf("missing_%s_%s_keys: [%s]", target, namespace, strings.Join(quoted, ", "))
}
