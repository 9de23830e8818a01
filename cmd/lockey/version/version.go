package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"lockey/internal/environment"
	"lockey/internal/i18n"
)

func Command() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: i18n.T("cmd.version.short"),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), environment.AppVersion())
		},
	}

	return versionCmd
}
