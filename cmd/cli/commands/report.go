package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/drillops/corecost/pkg/adapters"
)

const commandTimeout = 60 * time.Second

func NewReportCmd(profilePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report <job-id>",
		Short: "Build the costing report for one job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine(*profilePath)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := contextWithTimeout(cmd)
			defer cancel()

			report, err := e.builder.Build(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(adapters.MapJobCostingReportDomainToApi(report))
		},
	}
}
