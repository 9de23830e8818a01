package patch

import (
	"fmt"

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

type patchOptions struct {
	ConfigPath string
	LocalesDir string
	Language   string
	Namespace  string
	PatchFile  string
	DryRun     bool
	Quiet      bool
	Debug      bool
}

type patchDeps struct {
	fs        afero.Fs
	logger    *logger.Logger
	telemetry func(telemetry.CommandTelemetry)
}

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <patch-file>",
		Short: i18n.T("cmd.patch.short"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			_, span := perf.StartSpan(cmd.Context(), "app.command.patch")

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
			language, err := cmd.Flags().GetString("lang")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}
			namespace, err := cmd.Flags().GetString("namespace")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}

			log := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), quiet, debug)

			deps := patchDeps{
				fs:        fileutils.InitFilesystem(),
				logger:    log,
				telemetry: telemetry.RecordCommand,
			}

			applied, err := runPatch(patchOptions{
				ConfigPath: configPath,
				LocalesDir: localesDir,
				Language:   language,
				Namespace:  namespace,
				PatchFile:  args[0],
				DryRun:     dryRun,
				Quiet:      quiet,
				Debug:      debug,
			}, deps)
			span.SetAttributes(attribute.Bool("success", err == nil))
			span.End()

			payload := telemetry.CommandTelemetry{
				Command:  "patch",
				Success:  err == nil,
				Error:    err,
				ExitCode: 0,
				Arguments: map[string]interface{}{
					"lang":      language,
					"namespace": namespace,
					"dryRun":    dryRun,
				},
			}
			if err != nil {
				payload.ExitCode = 1
			} else {
				payload.Extra = map[string]interface{}{
					"patches": applied,
				}
			}
			deps.telemetry(payload)

			return err
		},
	}

	cmd.Flags().String("lang", "", i18n.T("cmd.patch.flag.lang"))
	cmd.Flags().StringP("namespace", "n", "", i18n.T("cmd.patch.flag.namespace"))
	cmd.Flags().Bool("dry-run", false, i18n.T("cmd.patch.flag.dry_run"))

	return cmd
}

func runPatch(opts patchOptions, deps patchDeps) (int, error) {
	meta := config.NewMetadata(opts.ConfigPath)

	cfg, err := config.ReadConfigOrDefault(deps.fs, meta)
	if err != nil {
		return 0, err
	}

	language := opts.Language
	if language == "" {
		return 0, errors.New("a language is required (--lang)")
	}
	if opts.Namespace == "" {
		return 0, errors.New("a namespace is required (--namespace)")
	}

	patches, err := loadPatchSet(deps.fs, opts.PatchFile)
	if err != nil {
		return 0, errors.New(i18n.T("cmd.patch.error.patch_file", i18n.Tvars{
			Data: &i18n.TData{"path": opts.PatchFile, "reason": err.Error()},
		}))
	}

	localesDir := opts.LocalesDir
	if localesDir == "" {
		localesDir = meta.LocalesDirPath(cfg)
	}

	path := locfile.Path(localesDir, language, opts.Namespace)
	tree := loadTargetTree(deps, path)

	if opts.DryRun {
		deps.logger.Log(i18n.T("cmd.patch.dry_run.header"), false)
		for _, entry := range patches {
			deps.logger.Log(i18n.T("cmd.patch.dry_run.entry", i18n.Tvars{
				Data: &i18n.TData{"key": entry.Key, "value": entry.Value},
			}), false)
		}
		return 0, nil
	}

	for _, entry := range patches {
		if err := loctree.Set(tree, entry.Key, entry.Value); err != nil {
			return 0, errors.Wrapf(err, "cannot apply patch for key %q", entry.Key)
		}
	}

	// The write is the single fatal path of the whole tool: a failure here
	// terminates with a non-zero status.
	if err := locfile.Write(deps.fs, path, tree); err != nil {
		deps.logger.Error(i18n.T("cmd.patch.error.write", i18n.Tvars{
			Data: &i18n.TData{"path": path, "reason": err.Error()},
		}))
		return 0, err
	}

	deps.logger.Log(i18n.T("cmd.patch.success", i18n.Tvars{
		Data: &i18n.TData{"path": path, "count": fmt.Sprintf("%d", len(patches))},
	}), false)

	return len(patches), nil
}

// loadPatchSet parses the patch file as a localization tree and flattens it,
// so both flat {"a.b": "x"} and nested {"a": {"b": "x"}} patch files work.
// Entries keep the file's own order for deterministic application.
func loadPatchSet(fs afero.Fs, path string) ([]loctree.Entry, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	tree, err := loctree.Parse(data)
	if err != nil {
		return nil, err
	}

	entries := loctree.Flatten(tree)
	if len(entries) == 0 {
		return nil, errors.New("patch file contains no string values")
	}
	return entries, nil
}

// loadTargetTree starts from an empty tree on any read failure. Corrupt
// content is discarded rather than backed up; everything not in the patch
// set is lost in that case.
func loadTargetTree(deps patchDeps, path string) *loctree.Tree {
	tree, err := locfile.Read(deps.fs, path)
	if err == nil {
		return tree
	}

	vars := i18n.Tvars{Data: &i18n.TData{"path": path}}
	switch {
	case errors.Is(err, &locfile.NotFoundError{}):
		deps.logger.Info(i18n.T("cmd.patch.info.missing_target", vars))
	case errors.Is(err, &locfile.EmptyFileError{}):
		deps.logger.Info(i18n.T("cmd.patch.info.empty_target", vars))
	case errors.Is(err, &locfile.MalformedError{}):
		deps.logger.Error(i18n.T("cmd.patch.error.malformed_target", vars))
	default:
		deps.logger.Error(i18n.T("cmd.patch.error.read_target", i18n.Tvars{
			Data: &i18n.TData{"path": path, "reason": err.Error()},
		}))
	}

	return loctree.New()
}
