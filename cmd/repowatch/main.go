package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	rootCmd    = &cobra.Command{
		Use:   "repowatch",
		Short: "repowatch - repository mirror and status watchdog",
		Long: `repowatch verifies that mirrored repositories stay in sync with their
upstreams and polls hosted repositories for open issue/PR counts. Healthy
mirrors stay silent; everything else lands in a consolidated report
delivered by email.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each check as it runs")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
