package extract

import (
	"encoding/json"
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

type extractOptions struct {
	ConfigPath string
	LocalesDir string
	Language   string
	Namespace  string
	KeysFile   string
	Keys       []string
	Quiet      bool
	Debug      bool
}

type extractDeps struct {
	fs        afero.Fs
	logger    *logger.Logger
	telemetry func(telemetry.CommandTelemetry)
}

func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <dotted-keys...>",
		Short: i18n.T("cmd.extract.short"),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			_, span := perf.StartSpan(cmd.Context(), "app.command.extract")

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
			keysFile, err := cmd.Flags().GetString("keys-file")
			if err != nil {
				span.SetAttributes(attribute.Bool("success", false))
				span.End()
				return err
			}

			log := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), quiet, debug)

			deps := extractDeps{
				fs:        fileutils.InitFilesystem(),
				logger:    log,
				telemetry: telemetry.RecordCommand,
			}

			found, err := runExtract(extractOptions{
				ConfigPath: configPath,
				LocalesDir: localesDir,
				Language:   language,
				Namespace:  namespace,
				KeysFile:   keysFile,
				Keys:       args,
				Quiet:      quiet,
				Debug:      debug,
			}, deps)
			span.SetAttributes(attribute.Bool("success", err == nil))
			span.End()

			payload := telemetry.CommandTelemetry{
				Command:  "extract",
				Success:  err == nil,
				Error:    err,
				ExitCode: 0,
				Arguments: map[string]interface{}{
					"lang":      language,
					"namespace": namespace,
					"keys":      len(args),
				},
			}
			if err != nil {
				payload.ExitCode = 1
			} else {
				payload.Extra = map[string]interface{}{
					"found": found,
				}
			}
			deps.telemetry(payload)

			return err
		},
	}

	cmd.Flags().String("lang", "", i18n.T("cmd.extract.flag.lang"))
	cmd.Flags().StringP("namespace", "n", "", i18n.T("cmd.extract.flag.namespace"))
	cmd.Flags().String("keys-file", "", i18n.T("cmd.extract.flag.keys_file"))

	return cmd
}

func runExtract(opts extractOptions, deps extractDeps) (int, error) {
	meta := config.NewMetadata(opts.ConfigPath)

	cfg, err := config.ReadConfigOrDefault(deps.fs, meta)
	if err != nil {
		return 0, err
	}

	language := opts.Language
	if language == "" {
		language = cfg.ReferenceLanguage
	}
	if language == "" {
		return 0, errors.New("a language is required (--lang or referenceLanguage in the config)")
	}

	if opts.Namespace == "" {
		return 0, errors.New("a namespace is required (--namespace)")
	}

	keys, err := resolveKeys(opts, deps)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, errors.New("at least one dotted key is required (arguments or --keys-file)")
	}

	localesDir := opts.LocalesDir
	if localesDir == "" {
		localesDir = meta.LocalesDirPath(cfg)
	}

	path := locfile.Path(localesDir, language, opts.Namespace)
	tree, err := locfile.Read(deps.fs, path)
	if err != nil {
		// Whole-file failure short-circuits: an empty object keeps the output
		// structure intact for consumers, partial results are never emitted.
		deps.logger.Error(i18n.T("cmd.extract.error.read_failed", i18n.Tvars{
			Data: &i18n.TData{"path": path, "reason": err.Error()},
		}))
		deps.logger.Log("{}", true)
		return 0, nil
	}

	results := loctree.New()
	found := 0
	for _, key := range keys {
		value, ok := loctree.Get(tree, key)
		if ok {
			found++
			results.Put(key, loctree.LeafValue(value))
			continue
		}

		results.Put(key, loctree.LeafValue(fmt.Sprintf("ERROR: Value for key '%s' not found or not a string.", key)))
		deps.logger.Warn(i18n.T("cmd.extract.warning.key_missing", i18n.Tvars{
			Data: &i18n.TData{"key": key, "path": path},
		}))
	}

	data, err := loctree.Marshal(results)
	if err != nil {
		return found, err
	}
	deps.logger.Log(string(data), true)

	return found, nil
}

func resolveKeys(opts extractOptions, deps extractDeps) ([]string, error) {
	keys := append([]string(nil), opts.Keys...)
	if opts.KeysFile == "" {
		return keys, nil
	}

	data, err := afero.ReadFile(deps.fs, opts.KeysFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keys file %s", opts.KeysFile)
	}

	var fileKeys []string
	if err := json.Unmarshal(data, &fileKeys); err != nil {
		return nil, errors.Wrapf(err, "keys file %s must be a JSON array of strings", opts.KeysFile)
	}

	return append(keys, fileKeys...), nil
}
