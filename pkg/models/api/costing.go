package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type CostDetail struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference"`
}

type CostBreakdownLine struct {
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	PercentageOfTotal float64         `json:"percentage_of_total"`
	ItemCount         int             `json:"item_count"`
	SampleDetails     []CostDetail    `json:"sample_details"`
}

type TimelineEntry struct {
	Date        time.Time       `json:"date"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference"`
}

type JobCostingReport struct {
	JobID          string              `json:"job_id"`
	JobNumber      string              `json:"job_number"`
	ClientName     string              `json:"client_name"`
	SiteName       string              `json:"site_name"`
	Status         string              `json:"status"`
	Currency       string              `json:"currency"`
	StartDate      time.Time           `json:"start_date"`
	CompletedDate  *time.Time          `json:"completed_date,omitempty"`
	QuotedAmount   decimal.Decimal     `json:"quoted_amount"`
	InvoicedAmount decimal.Decimal     `json:"invoiced_amount"`
	PaidAmount     decimal.Decimal     `json:"paid_amount"`
	TotalCosts     decimal.Decimal     `json:"total_costs"`
	GrossProfit    decimal.Decimal     `json:"gross_profit"`
	ProfitMargin   float64             `json:"profit_margin"`
	MaterialsCost  decimal.Decimal     `json:"materials_cost"`
	LaborCost      decimal.Decimal     `json:"labor_cost"`
	EquipmentCost  decimal.Decimal     `json:"equipment_cost"`
	TransportCost  decimal.Decimal     `json:"transport_cost"`
	OverheadCost   decimal.Decimal     `json:"overhead_cost"`
	OtherCosts     decimal.Decimal     `json:"other_costs"`
	CostBreakdown  []CostBreakdownLine `json:"cost_breakdown"`
	Timeline       []TimelineEntry     `json:"timeline"`
}

type JobPerformance struct {
	JobID        string          `json:"job_id"`
	JobNumber    string          `json:"job_number"`
	ClientName   string          `json:"client_name"`
	SiteName     string          `json:"site_name"`
	Status       string          `json:"status"`
	Revenue      decimal.Decimal `json:"revenue"`
	Costs        decimal.Decimal `json:"costs"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	ProfitMargin float64         `json:"profit_margin"`
}

type ProfitabilityReport struct {
	TotalJobs           int              `json:"total_jobs"`
	SkippedJobs         int              `json:"skipped_jobs"`
	ProfitableJobs      int              `json:"profitable_jobs"`
	LossJobs            int              `json:"loss_jobs"`
	BreakEvenJobs       int              `json:"break_even_jobs"`
	TotalRevenue        decimal.Decimal  `json:"total_revenue"`
	TotalCosts          decimal.Decimal  `json:"total_costs"`
	TotalProfit         decimal.Decimal  `json:"total_profit"`
	AverageProfitMargin float64          `json:"average_profit_margin"`
	BestPerformingJob   *JobPerformance  `json:"best_performing_job,omitempty"`
	WorstPerformingJob  *JobPerformance  `json:"worst_performing_job,omitempty"`
	Jobs                []JobPerformance `json:"jobs"`
}

type TrendBucket struct {
	PeriodKey         string          `json:"period"`
	TotalCosts        decimal.Decimal `json:"total_costs"`
	MaterialsCost     decimal.Decimal `json:"materials_cost"`
	LaborCost         decimal.Decimal `json:"labor_cost"`
	EquipmentCost     decimal.Decimal `json:"equipment_cost"`
	TransportCost     decimal.Decimal `json:"transport_cost"`
	OverheadCost      decimal.Decimal `json:"overhead_cost"`
	JobCount          int             `json:"job_count"`
	AverageCostPerJob decimal.Decimal `json:"average_cost_per_job"`
}

type ComparisonAverages struct {
	Revenue      decimal.Decimal `json:"revenue"`
	Costs        decimal.Decimal `json:"costs"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	ProfitMargin float64         `json:"profit_margin"`
}

type ComparisonReport struct {
	Jobs            []JobPerformance   `json:"jobs"`
	SkippedJobs     int                `json:"skipped_jobs"`
	Averages        ComparisonAverages `json:"averages"`
	MostProfitable  *JobPerformance    `json:"most_profitable,omitempty"`
	LeastProfitable *JobPerformance    `json:"least_profitable,omitempty"`
	HighestCost     *JobPerformance    `json:"highest_cost,omitempty"`
	LowestCost      *JobPerformance    `json:"lowest_cost,omitempty"`
}

type ClientProfitabilityReport struct {
	ClientID         string          `json:"client_id"`
	ClientName       string          `json:"client_name"`
	CompletedJobs    int             `json:"completed_jobs"`
	AvgRevenuePerJob decimal.Decimal `json:"avg_revenue_per_job"`
	AvgCostPerJob    decimal.Decimal `json:"avg_cost_per_job"`
	AvgProfitPerJob  decimal.Decimal `json:"avg_profit_per_job"`
	ProfitabilityReport
}
