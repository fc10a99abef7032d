package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestJobComparisonEngine_Compare(t *testing.T) {
	ctx := context.Background()

	t.Run("averages and extrema across jobs", func(t *testing.T) {
		builder := new(mockReportBuilder)
		builder.On("Build", mock.Anything, "j1").Return(jobReport("j1", "1000", "400"), nil) // 60%
		builder.On("Build", mock.Anything, "j2").Return(jobReport("j2", "2000", "1600"), nil) // 20%
		builder.On("Build", mock.Anything, "j3").Return(jobReport("j3", "600", "800"), nil) // -33.3333%

		report, err := NewJobComparisonEngine(builder, 2).Compare(ctx, []string{"j1", "j2", "j3"})
		require.NoError(t, err)

		require.Len(t, report.Jobs, 3)
		assert.Zero(t, report.SkippedJobs)

		assert.True(t, report.Averages.Revenue.Equal(dec("1200")))
		assert.True(t, report.Averages.Costs.Equal(dec("933.33")))
		assert.True(t, report.Averages.GrossProfit.Equal(dec("266.67")))
		assert.InDelta(t, (60.0+20.0-33.3333)/3.0, report.Averages.ProfitMargin, 0.001)

		require.NotNil(t, report.MostProfitable)
		assert.Equal(t, "j1", report.MostProfitable.JobID)
		require.NotNil(t, report.LeastProfitable)
		assert.Equal(t, "j3", report.LeastProfitable.JobID)
		require.NotNil(t, report.HighestCost)
		assert.Equal(t, "j2", report.HighestCost.JobID)
		require.NotNil(t, report.LowestCost)
		assert.Equal(t, "j1", report.LowestCost.JobID)
	})

	t.Run("failed builds are skipped", func(t *testing.T) {
		builder := new(mockReportBuilder)
		builder.On("Build", mock.Anything, "j1").Return(jobReport("j1", "1000", "400"), nil)
		builder.On("Build", mock.Anything, "j2").Return(nil, errors.New("read timeout"))

		report, err := NewJobComparisonEngine(builder, 0).Compare(ctx, []string{"j1", "j2"})
		require.NoError(t, err)

		require.Len(t, report.Jobs, 1)
		assert.Equal(t, 1, report.SkippedJobs)
		assert.True(t, report.Averages.Revenue.Equal(dec("1000")))
	})

	t.Run("empty id list returns a zero report without extrema", func(t *testing.T) {
		builder := new(mockReportBuilder)

		report, err := NewJobComparisonEngine(builder, 0).Compare(ctx, nil)
		require.NoError(t, err)

		assert.Empty(t, report.Jobs)
		assert.Zero(t, report.SkippedJobs)
		assert.True(t, report.Averages.Revenue.IsZero())
		assert.True(t, report.Averages.Costs.IsZero())
		assert.True(t, report.Averages.GrossProfit.IsZero())
		assert.Zero(t, report.Averages.ProfitMargin)
		assert.Nil(t, report.MostProfitable)
		assert.Nil(t, report.LeastProfitable)
		assert.Nil(t, report.HighestCost)
		assert.Nil(t, report.LowestCost)
	})

	t.Run("all builds failing behaves like empty input", func(t *testing.T) {
		builder := new(mockReportBuilder)
		builder.On("Build", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		report, err := NewJobComparisonEngine(builder, 0).Compare(ctx, []string{"j1", "j2", "j3"})
		require.NoError(t, err)

		assert.Empty(t, report.Jobs)
		assert.Equal(t, 3, report.SkippedJobs)
		assert.Nil(t, report.MostProfitable)
		assert.Nil(t, report.HighestCost)
	})
}
