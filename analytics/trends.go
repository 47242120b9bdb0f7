package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"app/models"
)

// MonthlyAggregate holds the totals for one calendar month of confirmed
// orders. Category tallies are keyed by the lower-cased, trimmed value and
// accumulate quantity, not order count.
type MonthlyAggregate struct {
	TotalQuantity float64            `json:"total_quantity"`
	TotalRevenue  float64            `json:"total_revenue"`
	OrderCount    int                `json:"order_count"`
	WeaveTypes    map[string]float64 `json:"weave_types"`
	Compositions  map[string]float64 `json:"compositions"`
	Qualities     map[string]float64 `json:"qualities"`
}

func newMonthlyAggregate() *MonthlyAggregate {
	return &MonthlyAggregate{
		WeaveTypes:   make(map[string]float64),
		Compositions: make(map[string]float64),
		Qualities:    make(map[string]float64),
	}
}

// MonthKey renders a (year, month) bucket key as "2025-06".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
}

// AggregateMonthly groups confirmed records into monthly buckets. Records
// whose date cannot be parsed are skipped. The input slice is not modified.
func AggregateMonthly(records []models.SalesRecord) map[string]*MonthlyAggregate {
	confirmed := FilterByStatus(records, IsConfirmed)
	monthly := make(map[string]*MonthlyAggregate)

	for _, r := range confirmed {
		date, err := ParseOrderDate(r.Date)
		if err != nil {
			continue
		}
		key := MonthKey(date)
		agg, ok := monthly[key]
		if !ok {
			agg = newMonthlyAggregate()
			monthly[key] = agg
		}

		quantity := float64(r.Quantity)
		revenue := quantity * float64(r.Rate)
		agg.TotalQuantity += quantity
		agg.TotalRevenue += revenue
		agg.OrderCount++

		if weave := strings.TrimSpace(strings.ToLower(r.Weave)); weave != "" {
			agg.WeaveTypes[weave] += quantity
		}
		if composition := strings.TrimSpace(strings.ToLower(r.Composition)); composition != "" {
			agg.Compositions[composition] += quantity
		}
		if quality := strings.TrimSpace(strings.ToLower(r.Quality)); quality != "" {
			agg.Qualities[quality] += quantity
		}
	}

	return monthly
}

// sortedMonths returns the bucket keys in ascending order. The zero-padded
// month in the key makes lexical order chronological.
func sortedMonths(monthly map[string]*MonthlyAggregate) []string {
	months := make([]string, 0, len(monthly))
	for k := range monthly {
		months = append(months, k)
	}
	sort.Strings(months)
	return months
}

// GrowthRates computes month-over-month quantity growth in percent. The
// earliest month has no rate; a month following a zero-quantity month gets 0.
func GrowthRates(monthly map[string]*MonthlyAggregate) map[string]float64 {
	months := sortedMonths(monthly)
	rates := make(map[string]float64)

	for i := 1; i < len(months); i++ {
		prev := monthly[months[i-1]].TotalQuantity
		curr := monthly[months[i]].TotalQuantity
		if prev > 0 {
			rates[months[i]] = (curr - prev) / prev * 100
		} else {
			rates[months[i]] = 0
		}
	}

	return rates
}

// SeasonalFactor is the ratio of the target calendar month's historical
// average quantity to the overall average. Defaults to 1.0 when no historical
// month matches or the overall average is zero.
func SeasonalFactor(monthly map[string]*MonthlyAggregate, targetMonth time.Month, overallAvgQty float64) float64 {
	var sameMonthTotal float64
	var sameMonthCount int

	for key, agg := range monthly {
		var year, month int
		if _, err := fmt.Sscanf(key, "%d-%d", &year, &month); err != nil {
			continue
		}
		if time.Month(month) == targetMonth {
			sameMonthTotal += agg.TotalQuantity
			sameMonthCount++
		}
	}

	if sameMonthCount == 0 || overallAvgQty <= 0 {
		return 1.0
	}
	return sameMonthTotal / float64(sameMonthCount) / overallAvgQty
}
