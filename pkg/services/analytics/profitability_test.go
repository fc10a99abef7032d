package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/drillops/corecost/pkg/models/domain"
	"github.com/drillops/corecost/pkg/models/store"
)

func TestProfitabilityAnalyzer_Analyze(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("one failing job does not abort the batch", func(t *testing.T) {
		jobs := new(mockJobStore)
		builder := new(mockReportBuilder)

		records := []store.JobRecord{
			jobRecord("j1", "c1", created),
			jobRecord("j2", "c1", created),
			jobRecord("j3", "c1", created),
			jobRecord("j4", "c2", created),
			jobRecord("j5", "c2", created),
		}
		jobs.On("Find", mock.Anything, mock.Anything).Return(records, nil)

		builder.On("Build", mock.Anything, "j1").Return(jobReport("j1", "1000", "500"), nil)  // 50%
		builder.On("Build", mock.Anything, "j2").Return(jobReport("j2", "2000", "1800"), nil) // 10%
		builder.On("Build", mock.Anything, "j3").Return(nil, errors.New("malformed record"))
		builder.On("Build", mock.Anything, "j4").Return(jobReport("j4", "1000", "1200"), nil) // -20%
		builder.On("Build", mock.Anything, "j5").Return(jobReport("j5", "500", "500"), nil)   // 0%

		report, err := NewProfitabilityAnalyzer(jobs, builder, 2).Analyze(ctx, domain.JobFilter{})
		require.NoError(t, err)

		assert.Equal(t, 4, report.TotalJobs)
		assert.Equal(t, 1, report.SkippedJobs)
		assert.Equal(t, 2, report.ProfitableJobs)
		assert.Equal(t, 1, report.LossJobs)
		assert.Equal(t, 1, report.BreakEvenJobs)

		assert.True(t, report.TotalRevenue.Equal(dec("4500")))
		assert.True(t, report.TotalCosts.Equal(dec("4000")))
		assert.True(t, report.TotalProfit.Equal(dec("500")))
		// (4500-4000)/4500*100
		assert.InDelta(t, 11.1111, report.AverageProfitMargin, 0.001)

		require.NotNil(t, report.BestPerformingJob)
		assert.Equal(t, "j1", report.BestPerformingJob.JobID)
		require.NotNil(t, report.WorstPerformingJob)
		assert.Equal(t, "j4", report.WorstPerformingJob.JobID)

		// Sorted descending by margin.
		ids := make([]string, 0, len(report.Jobs))
		for _, p := range report.Jobs {
			ids = append(ids, p.JobID)
		}
		assert.Equal(t, []string{"j1", "j2", "j5", "j4"}, ids)
	})

	t.Run("empty job set yields a zero-valued report", func(t *testing.T) {
		jobs := new(mockJobStore)
		builder := new(mockReportBuilder)
		jobs.On("Find", mock.Anything, mock.Anything).Return([]store.JobRecord{}, nil)

		report, err := NewProfitabilityAnalyzer(jobs, builder, 0).Analyze(ctx, domain.JobFilter{})
		require.NoError(t, err)

		assert.Zero(t, report.TotalJobs)
		assert.Zero(t, report.SkippedJobs)
		assert.True(t, report.TotalRevenue.IsZero())
		assert.True(t, report.TotalCosts.IsZero())
		assert.Zero(t, report.AverageProfitMargin)
		assert.Nil(t, report.BestPerformingJob)
		assert.Nil(t, report.WorstPerformingJob)
		assert.Empty(t, report.Jobs)
	})

	t.Run("all builds failing yields zero aggregates with skips", func(t *testing.T) {
		jobs := new(mockJobStore)
		builder := new(mockReportBuilder)
		jobs.On("Find", mock.Anything, mock.Anything).Return([]store.JobRecord{
			jobRecord("j1", "c1", created),
			jobRecord("j2", "c1", created),
		}, nil)
		builder.On("Build", mock.Anything, mock.Anything).Return(nil, errors.New("store down"))

		report, err := NewProfitabilityAnalyzer(jobs, builder, 0).Analyze(ctx, domain.JobFilter{})
		require.NoError(t, err)

		assert.Zero(t, report.TotalJobs)
		assert.Equal(t, 2, report.SkippedJobs)
		assert.Nil(t, report.BestPerformingJob)
		assert.Nil(t, report.WorstPerformingJob)
	})

	t.Run("margin ties keep the first job seen", func(t *testing.T) {
		jobs := new(mockJobStore)
		builder := new(mockReportBuilder)
		jobs.On("Find", mock.Anything, mock.Anything).Return([]store.JobRecord{
			jobRecord("j1", "c1", created),
			jobRecord("j2", "c1", created),
		}, nil)
		builder.On("Build", mock.Anything, "j1").Return(jobReport("j1", "1000", "500"), nil)
		builder.On("Build", mock.Anything, "j2").Return(jobReport("j2", "2000", "1000"), nil)

		report, err := NewProfitabilityAnalyzer(jobs, builder, 1).Analyze(ctx, domain.JobFilter{})
		require.NoError(t, err)

		require.NotNil(t, report.BestPerformingJob)
		assert.Equal(t, "j1", report.BestPerformingJob.JobID)
		require.NotNil(t, report.WorstPerformingJob)
		assert.Equal(t, "j1", report.WorstPerformingJob.JobID)
	})

	t.Run("job store failure propagates", func(t *testing.T) {
		jobs := new(mockJobStore)
		builder := new(mockReportBuilder)
		jobs.On("Find", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		_, err := NewProfitabilityAnalyzer(jobs, builder, 0).Analyze(ctx, domain.JobFilter{})
		assert.ErrorContains(t, err, "resolve job set")
	})
}
