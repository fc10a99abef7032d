package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostDetail is one sampled source event inside a breakdown line.
type CostDetail struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Reference   string
}

// CostBreakdownLine summarizes one canonical category within a job report.
type CostBreakdownLine struct {
	Category          CanonicalCategory
	Amount            decimal.Decimal
	PercentageOfTotal float64
	ItemCount         int
	SampleDetails     []CostDetail // capped, see costing.MaxSampleDetails
}

// TimelineEntry is one chronological cost or revenue record in a job report.
type TimelineEntry struct {
	Date        time.Time
	Type        string // expense, material, purchase_order, invoice, payment
	Category    string
	Description string
	Amount      decimal.Decimal
	Reference   string
}

// JobCostingReport is the full per-job financial picture. It is computed on
// demand from the collaborator stores and never persisted.
type JobCostingReport struct {
	JobID          string
	JobNumber      string
	ClientName     string
	SiteName       string
	Status         string
	Currency       string
	StartDate      time.Time
	CompletedDate  *time.Time
	QuotedAmount   decimal.Decimal
	InvoicedAmount decimal.Decimal
	PaidAmount     decimal.Decimal
	TotalCosts     decimal.Decimal
	GrossProfit    decimal.Decimal
	ProfitMargin   float64
	MaterialsCost  decimal.Decimal
	LaborCost      decimal.Decimal
	EquipmentCost  decimal.Decimal
	TransportCost  decimal.Decimal
	OverheadCost   decimal.Decimal
	OtherCosts     decimal.Decimal
	CostBreakdown  []CostBreakdownLine
	Timeline       []TimelineEntry
}

// CategoryCost returns the report's sum for one canonical category.
func (r *JobCostingReport) CategoryCost(c CanonicalCategory) decimal.Decimal {
	switch c {
	case CategoryMaterials:
		return r.MaterialsCost
	case CategoryLabor:
		return r.LaborCost
	case CategoryEquipment:
		return r.EquipmentCost
	case CategoryTransport:
		return r.TransportCost
	case CategoryOverhead:
		return r.OverheadCost
	default:
		return r.OtherCosts
	}
}

// JobPerformance is one job's headline numbers inside a batch report.
type JobPerformance struct {
	JobID        string
	JobNumber    string
	ClientName   string
	SiteName     string
	Status       string
	Revenue      decimal.Decimal
	Costs        decimal.Decimal
	GrossProfit  decimal.Decimal
	ProfitMargin float64
}

// JobFilter narrows the job set for profitability analysis. Zero values mean
// "no constraint".
type JobFilter struct {
	From     *time.Time
	To       *time.Time
	ClientID string
	Status   string
}

// ProfitabilityReport aggregates per-job reports across a filtered job set.
type ProfitabilityReport struct {
	TotalJobs           int
	SkippedJobs         int
	ProfitableJobs      int
	LossJobs            int
	BreakEvenJobs       int
	TotalRevenue        decimal.Decimal
	TotalCosts          decimal.Decimal
	TotalProfit         decimal.Decimal
	AverageProfitMargin float64
	BestPerformingJob   *JobPerformance
	WorstPerformingJob  *JobPerformance
	Jobs                []JobPerformance // sorted by margin, descending
}

// TrendPeriod selects the bucketing granularity for cost trends.
type TrendPeriod string

const (
	PeriodDaily   TrendPeriod = "daily"
	PeriodWeekly  TrendPeriod = "weekly"
	PeriodMonthly TrendPeriod = "monthly"
)

// TrendBucket holds per-category cost sums for one period key. Only keys
// present in the data produce buckets.
type TrendBucket struct {
	PeriodKey         string
	TotalCosts        decimal.Decimal
	MaterialsCost     decimal.Decimal
	LaborCost         decimal.Decimal
	EquipmentCost     decimal.Decimal
	TransportCost     decimal.Decimal
	OverheadCost      decimal.Decimal
	JobCount          int
	AverageCostPerJob decimal.Decimal
}

// ComparisonAverages holds arithmetic means across the compared jobs.
type ComparisonAverages struct {
	Revenue      decimal.Decimal
	Costs        decimal.Decimal
	GrossProfit  decimal.Decimal
	ProfitMargin float64
}

// ComparisonReport compares an explicit list of jobs. Extrema are nil when no
// job could be built.
type ComparisonReport struct {
	Jobs            []JobPerformance
	SkippedJobs     int
	Averages        ComparisonAverages
	MostProfitable  *JobPerformance
	LeastProfitable *JobPerformance
	HighestCost     *JobPerformance
	LowestCost      *JobPerformance
}

// ClientProfitabilityReport is a profitability report scoped to one client,
// with per-job averages.
type ClientProfitabilityReport struct {
	ClientID         string
	ClientName       string
	CompletedJobs    int
	AvgRevenuePerJob decimal.Decimal
	AvgCostPerJob    decimal.Decimal
	AvgProfitPerJob  decimal.Decimal
	ProfitabilityReport
}
