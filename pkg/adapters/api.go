package adapters

import (
	"github.com/drillops/corecost/pkg/models/api"
	"github.com/drillops/corecost/pkg/models/domain"
)

func MapJobCostingReportDomainToApi(r *domain.JobCostingReport) api.JobCostingReport {
	out := api.JobCostingReport{
		JobID:          r.JobID,
		JobNumber:      r.JobNumber,
		ClientName:     r.ClientName,
		SiteName:       r.SiteName,
		Status:         r.Status,
		Currency:       r.Currency,
		StartDate:      r.StartDate,
		CompletedDate:  r.CompletedDate,
		QuotedAmount:   r.QuotedAmount,
		InvoicedAmount: r.InvoicedAmount,
		PaidAmount:     r.PaidAmount,
		TotalCosts:     r.TotalCosts,
		GrossProfit:    r.GrossProfit,
		ProfitMargin:   r.ProfitMargin,
		MaterialsCost:  r.MaterialsCost,
		LaborCost:      r.LaborCost,
		EquipmentCost:  r.EquipmentCost,
		TransportCost:  r.TransportCost,
		OverheadCost:   r.OverheadCost,
		OtherCosts:     r.OtherCosts,
		CostBreakdown:  []api.CostBreakdownLine{},
		Timeline:       []api.TimelineEntry{},
	}

	for _, line := range r.CostBreakdown {
		apiLine := api.CostBreakdownLine{
			Category:          string(line.Category),
			Amount:            line.Amount,
			PercentageOfTotal: line.PercentageOfTotal,
			ItemCount:         line.ItemCount,
			SampleDetails:     []api.CostDetail{},
		}
		for _, d := range line.SampleDetails {
			apiLine.SampleDetails = append(apiLine.SampleDetails, api.CostDetail{
				Date:        d.Date,
				Description: d.Description,
				Amount:      d.Amount,
				Reference:   d.Reference,
			})
		}
		out.CostBreakdown = append(out.CostBreakdown, apiLine)
	}

	for _, e := range r.Timeline {
		out.Timeline = append(out.Timeline, api.TimelineEntry{
			Date:        e.Date,
			Type:        e.Type,
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
			Reference:   e.Reference,
		})
	}

	return out
}

func MapJobPerformanceDomainToApi(p domain.JobPerformance) api.JobPerformance {
	return api.JobPerformance{
		JobID:        p.JobID,
		JobNumber:    p.JobNumber,
		ClientName:   p.ClientName,
		SiteName:     p.SiteName,
		Status:       p.Status,
		Revenue:      p.Revenue,
		Costs:        p.Costs,
		GrossProfit:  p.GrossProfit,
		ProfitMargin: p.ProfitMargin,
	}
}

func mapJobPerformancePtr(p *domain.JobPerformance) *api.JobPerformance {
	if p == nil {
		return nil
	}
	mapped := MapJobPerformanceDomainToApi(*p)
	return &mapped
}

func MapProfitabilityReportDomainToApi(r *domain.ProfitabilityReport) api.ProfitabilityReport {
	out := api.ProfitabilityReport{
		TotalJobs:           r.TotalJobs,
		SkippedJobs:         r.SkippedJobs,
		ProfitableJobs:      r.ProfitableJobs,
		LossJobs:            r.LossJobs,
		BreakEvenJobs:       r.BreakEvenJobs,
		TotalRevenue:        r.TotalRevenue,
		TotalCosts:          r.TotalCosts,
		TotalProfit:         r.TotalProfit,
		AverageProfitMargin: r.AverageProfitMargin,
		BestPerformingJob:   mapJobPerformancePtr(r.BestPerformingJob),
		WorstPerformingJob:  mapJobPerformancePtr(r.WorstPerformingJob),
		Jobs:                []api.JobPerformance{},
	}
	for _, p := range r.Jobs {
		out.Jobs = append(out.Jobs, MapJobPerformanceDomainToApi(p))
	}
	return out
}

func MapTrendBucketDomainToApi(b domain.TrendBucket) api.TrendBucket {
	return api.TrendBucket{
		PeriodKey:         b.PeriodKey,
		TotalCosts:        b.TotalCosts,
		MaterialsCost:     b.MaterialsCost,
		LaborCost:         b.LaborCost,
		EquipmentCost:     b.EquipmentCost,
		TransportCost:     b.TransportCost,
		OverheadCost:      b.OverheadCost,
		JobCount:          b.JobCount,
		AverageCostPerJob: b.AverageCostPerJob,
	}
}

func MapComparisonReportDomainToApi(r *domain.ComparisonReport) api.ComparisonReport {
	out := api.ComparisonReport{
		Jobs:        []api.JobPerformance{},
		SkippedJobs: r.SkippedJobs,
		Averages: api.ComparisonAverages{
			Revenue:      r.Averages.Revenue,
			Costs:        r.Averages.Costs,
			GrossProfit:  r.Averages.GrossProfit,
			ProfitMargin: r.Averages.ProfitMargin,
		},
		MostProfitable:  mapJobPerformancePtr(r.MostProfitable),
		LeastProfitable: mapJobPerformancePtr(r.LeastProfitable),
		HighestCost:     mapJobPerformancePtr(r.HighestCost),
		LowestCost:      mapJobPerformancePtr(r.LowestCost),
	}
	for _, p := range r.Jobs {
		out.Jobs = append(out.Jobs, MapJobPerformanceDomainToApi(p))
	}
	return out
}

func MapClientProfitabilityDomainToApi(r *domain.ClientProfitabilityReport) api.ClientProfitabilityReport {
	return api.ClientProfitabilityReport{
		ClientID:            r.ClientID,
		ClientName:          r.ClientName,
		CompletedJobs:       r.CompletedJobs,
		AvgRevenuePerJob:    r.AvgRevenuePerJob,
		AvgCostPerJob:       r.AvgCostPerJob,
		AvgProfitPerJob:     r.AvgProfitPerJob,
		ProfitabilityReport: MapProfitabilityReportDomainToApi(&r.ProfitabilityReport),
	}
}
