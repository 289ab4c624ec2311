// Command configur-agent keeps an application's settings in sync with the
// configur settings service and exposes their state over a small admin API.
// It also carries the key and bundle tooling used against development
// servers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-configur/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func newRootCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "configur-agent",
		Short: "configur-agent - keeps encrypted application settings in sync.",
		Long: `configur-agent fetches an application's sealed settings bundle, opens it
with the local app password and keeps it fresh with a periodic refresh and
server push. The last bundle can be cached on disk so the agent starts even
when the settings service is unreachable.

Usage:
  configur-agent <command> [flags]

Available Commands:
  run        Run the agent
  keygen     Create an application key pair
  seal       Seal a settings file into a bundle
  version    Print build information
`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newRunCmd(buildInfo),
		newKeygenCmd(),
		newSealCmd(),
		newVersionCmd(buildInfo),
	)

	return rootCmd
}

func newVersionCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildInfo.String())
		},
	}
}

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := newRootCmd(buildInfo).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
