package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drillops/corecost/cmd/cli/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "corecost",
		Short: "Job costing and profitability analytics",
	}

	var profilePath string
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "corecost.yaml",
		"Path to the store profile file")

	rootCmd.AddCommand(
		commands.NewReportCmd(&profilePath),
		commands.NewProfitabilityCmd(&profilePath),
		commands.NewTrendsCmd(&profilePath),
		commands.NewCompareCmd(&profilePath),
		commands.NewClientCmd(&profilePath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
