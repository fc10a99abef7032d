package analytics

import (
	"fmt"
	"time"

	"github.com/drillops/corecost/pkg/models/domain"
)

// ParsePeriod validates a period string from an API or CLI caller.
func ParsePeriod(s string) (domain.TrendPeriod, error) {
	switch domain.TrendPeriod(s) {
	case domain.PeriodDaily, domain.PeriodWeekly, domain.PeriodMonthly:
		return domain.TrendPeriod(s), nil
	}
	return "", fmt.Errorf("unsupported period %q (want daily, weekly or monthly)", s)
}

// PeriodKey formats the bucket key for a date. Keys are fixed-width so a
// lexicographic sort is also a chronological sort:
//
//	daily   2024-03-07
//	weekly  2024-W10 (ISO 8601 week, Monday-based, week 1 holds the first Thursday)
//	monthly 2024-03
//
// The ISO year can differ from the calendar year near year boundaries, e.g.
// 2019-12-31 falls in 2020-W01.
func PeriodKey(t time.Time, period domain.TrendPeriod) string {
	switch period {
	case domain.PeriodDaily:
		return t.Format("2006-01-02")
	case domain.PeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	default:
		return t.Format("2006-01")
	}
}
