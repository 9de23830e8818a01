package lockey

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lockey/cmd/lockey/diff"
	"lockey/cmd/lockey/extract"
	initCmd "lockey/cmd/lockey/init"
	"lockey/cmd/lockey/patch"
	"lockey/cmd/lockey/version"
	"lockey/internal/constants"
	"lockey/internal/environment"
	"lockey/internal/i18n"
	"lockey/internal/perf"
	"lockey/internal/tui"
)

func Command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     constants.CommandName,
		Short:   i18n.T("app.description"),
		Version: environment.AppVersion(),
		RunE:    runRoot,
	}
	cobra.MousetrapHelpText = "" // allow the app to run in windows by clicking the exe

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetHelpTemplate(fmt.Sprintf("%s\n%s\n", rootCmd.HelpTemplate(), i18n.T("cmd.help.footer", i18n.Tvars{
		Data: &i18n.TData{"url": environment.HelpURL()},
	})))
	rootCmd.PersistentFlags().StringP("config", "c", constants.DefaultConfigFile, i18n.T("flag.config.usage"))
	rootCmd.PersistentFlags().StringP("locales-dir", "l", "", i18n.T("flag.locales_dir.usage"))
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, i18n.T("flag.quiet.usage"))
	rootCmd.PersistentFlags().BoolP("debug", "d", false, i18n.T("flag.debug.usage"))

	rootCmd.AddCommand(diff.Command())
	rootCmd.AddCommand(extract.Command())
	rootCmd.AddCommand(patch.Command())
	rootCmd.AddCommand(initCmd.Command())
	rootCmd.AddCommand(version.Command())

	rootCmd.PersistentPostRun = func(*cobra.Command, []string) {
		exportPerfLog()
	}

	translateDefaultHelpFacilities(rootCmd)
	fixFlagUsageAlignment(rootCmd)

	return rootCmd
}

func translateDefaultHelpFacilities(rootCmd *cobra.Command) {
	subcommands := rootCmd.Commands()
	allCommands := make([]*cobra.Command, 0, len(subcommands)+1)
	allCommands = append(allCommands, rootCmd)
	allCommands = append(allCommands, subcommands...)

	for _, cmd := range allCommands {
		cmd.InitDefaultHelpFlag()
		flags := cmd.Flags()
		flags.Lookup("help").Usage = i18n.T("cmd.help.template", i18n.Tvars{
			Data: &i18n.TData{"command": cmd.Name()},
		})
	}

	rootCmd.InitDefaultHelpCmd()
	helpCmd, _, e := rootCmd.Find([]string{"help"})

	if e == nil {
		helpCmd.Short = i18n.T("cmd.help.usage.short")
		helpCmd.Long = i18n.T("cmd.help.usage.long", i18n.Tvars{
			Data: &i18n.TData{"appName": rootCmd.Name()},
		})
		helpCmd.Run = func(c *cobra.Command, args []string) {
			cmd, _, e := c.Root().Find(args)
			if cmd == nil || e != nil {
				c.PrintErrln(i18n.T("cmd.help.error", i18n.Tvars{
					Data: &i18n.TData{"topic": fmt.Sprintf("%#q", args)},
				}) + "\n")
				cobra.CheckErr(c.Root().Usage())
			} else {
				cmd.InitDefaultHelpFlag()
				cmd.InitDefaultVersionFlag()
				cobra.CheckErr(cmd.Help())
			}
		}
	}
}

func fixFlagUsageAlignment(rootCmd *cobra.Command) {
	width, _, _ := term.GetSize(int(os.Stdout.Fd()))
	usageTemplate := rootCmd.UsageTemplate()
	usageTemplate = strings.ReplaceAll(usageTemplate, ".FlagUsages", fmt.Sprintf(".FlagUsagesWrapped %d", width))
	rootCmd.SetUsageTemplate(usageTemplate)
}

func Execute() error {
	return Command().Execute()
}

// exportPerfLog writes the collected marks and measures when the user opted
// in via LOCKEY_PERF_EXPORT. Failures are ignored; the export is a
// diagnostic artifact, never part of command output.
func exportPerfLog() {
	outDir, present := os.LookupEnv("LOCKEY_PERF_EXPORT")
	if !present {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	_, _ = perf.ExportToFile(outDir, cwd, perf.GetLog())
}

func runRoot(cmd *cobra.Command, _ []string) error {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	if !tui.ShouldUseTUI(quiet, cmd.InOrStdin(), cmd.OutOrStdout()) {
		return cmd.Help()
	}

	items := make([]tui.MenuItem, 0)
	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
			continue
		}
		items = append(items, tui.MenuItem{Name: sub.Name(), Summary: sub.Short})
	}

	model, err := tui.RunApp(items, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
	if err != nil {
		return err
	}

	app, ok := model.(tui.AppModel)
	if !ok || app.Choice == "" {
		return nil
	}

	chosen, _, err := cmd.Find([]string{app.Choice})
	if err != nil || chosen == nil {
		return err
	}
	return chosen.Help()
}
