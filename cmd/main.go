package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theblitlabs/system-stats/cmd/cli"
	"github.com/theblitlabs/system-stats/pkg/logger"
)

var (
	logMode    string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "system-stats",
	Short: "System Stats",
	Long:  `Serves host CPU, memory, disk and network usage over an authenticated HTTP endpoint`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch logMode {
		case "debug", "pretty", "info", "prod", "test":
			logger.InitWithMode(logger.LogMode(logMode))
		default:
			logger.InitWithMode(logger.LogModePretty)
		}
	},
	RunE: runServer,
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the stats server",
	RunE:  runServer,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), cli.Version)
	},
}

func runServer(cmd *cobra.Command, args []string) error {
	opts := cli.ServerOptions{ConfigPath: configPath}
	if cmd.Flags().Changed("log") {
		opts.LogMode = logMode
	}
	return cli.RunServer(opts)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logMode, "log", "pretty", "Log mode: debug, pretty, info, prod, test")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (YAML)")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
