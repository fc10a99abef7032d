package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/drillops/corecost/pkg/adapters"
	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/services/analytics"
)

func contextWithTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), commandTimeout)
}

func NewProfitabilityCmd(profilePath *string) *cobra.Command {
	var fromFlag, toFlag, clientID, status string

	cmd := &cobra.Command{
		Use:   "profitability",
		Short: "Analyze profitability across a filtered job set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := parseDateFlag(fromFlag)
			if err != nil {
				return err
			}
			to, err := parseDateFlag(toFlag)
			if err != nil {
				return err
			}

			e, err := newEngine(*profilePath)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := contextWithTimeout(cmd)
			defer cancel()

			report, err := e.profitability.Analyze(ctx, domain.JobFilter{
				From:     from,
				To:       to,
				ClientID: clientID,
				Status:   status,
			})
			if err != nil {
				return err
			}
			return printJSON(adapters.MapProfitabilityReportDomainToApi(report))
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Start of the job creation range (DD-MM-YYYY)")
	cmd.Flags().StringVar(&toFlag, "to", "", "End of the job creation range (DD-MM-YYYY)")
	cmd.Flags().StringVar(&clientID, "client", "", "Restrict to one client id")
	cmd.Flags().StringVar(&status, "status", "", "Restrict to one job status")

	return cmd
}

func NewTrendsCmd(profilePath *string) *cobra.Command {
	var periodFlag, fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Bucket cost events into daily, weekly or monthly periods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			period, err := analytics.ParsePeriod(periodFlag)
			if err != nil {
				return err
			}
			toPtr, err := parseDateFlag(toFlag)
			if err != nil {
				return err
			}
			fromPtr, err := parseDateFlag(fromFlag)
			if err != nil {
				return err
			}
			to := time.Now().UTC()
			if toPtr != nil {
				to = *toPtr
			}
			from := to.AddDate(0, 0, -30)
			if fromPtr != nil {
				from = *fromPtr
			}

			e, err := newEngine(*profilePath)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := contextWithTimeout(cmd)
			defer cancel()

			buckets, err := e.trends.Analyze(ctx, period, from, to)
			if err != nil {
				return err
			}

			response := make([]any, 0, len(buckets))
			for _, b := range buckets {
				response = append(response, adapters.MapTrendBucketDomainToApi(b))
			}
			return printJSON(response)
		},
	}

	cmd.Flags().StringVar(&periodFlag, "period", "monthly", "Bucket granularity: daily, weekly or monthly")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Range start (DD-MM-YYYY), defaults to 30 days before --to")
	cmd.Flags().StringVar(&toFlag, "to", "", "Range end (DD-MM-YYYY), defaults to today")

	return cmd
}

func NewCompareCmd(profilePath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <job-id>...",
		Short: "Compare jobs side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEngine(*profilePath)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := contextWithTimeout(cmd)
			defer cancel()

			report, err := e.comparison.Compare(ctx, args)
			if err != nil {
				return err
			}
			return printJSON(adapters.MapComparisonReportDomainToApi(report))
		},
	}
}

func NewClientCmd(profilePath *string) *cobra.Command {
	var fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "client <client-id>",
		Short: "Analyze profitability for one client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDateFlag(fromFlag)
			if err != nil {
				return err
			}
			to, err := parseDateFlag(toFlag)
			if err != nil {
				return err
			}

			e, err := newEngine(*profilePath)
			if err != nil {
				return err
			}
			defer e.Close()

			ctx, cancel := contextWithTimeout(cmd)
			defer cancel()

			report, err := e.clients.Analyze(ctx, args[0], from, to)
			if err != nil {
				return err
			}
			return printJSON(adapters.MapClientProfitabilityDomainToApi(report))
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Start of the job creation range (DD-MM-YYYY)")
	cmd.Flags().StringVar(&toFlag, "to", "", "End of the job creation range (DD-MM-YYYY)")

	return cmd
}
