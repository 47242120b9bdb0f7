package analytics

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"app/models"
)

// PredictionResult is the structured outcome of a sales forecast. Err is set
// when the history is insufficient; the numeric fields are then zero and
// Confidence is "Low".
type PredictionResult struct {
	TargetDate        string  `json:"target_date"`
	PredictedQuantity float64 `json:"predicted_quantity"`
	PredictedRevenue  float64 `json:"predicted_revenue"`
	PredictedOrders   int     `json:"predicted_orders"`
	AvgGrowthRate     float64 `json:"avg_growth_rate"`
	SeasonalFactor    float64 `json:"seasonal_factor"`
	Confidence        string  `json:"confidence"`
	MonthsAhead       int     `json:"months_ahead"`
	HistoricalMonths  int     `json:"historical_months"`
	Note              string  `json:"note,omitempty"`
	Err               string  `json:"error,omitempty"`
}

const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// defaultGrowthRate is assumed when the history is a single month and no
// growth rate can be derived.
const defaultGrowthRate = 5.0

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// confidenceFor maps the projection horizon onto a confidence tier.
func confidenceFor(monthsAhead int) string {
	switch {
	case monthsAhead <= 6:
		return ConfidenceHigh
	case monthsAhead <= 12:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// monthsBetween is the signed whole-month difference from a to b.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// PredictFutureSales projects quantity, revenue and order count for the
// target month from the confirmed history in records.
func PredictFutureSales(target time.Time, records []models.SalesRecord) PredictionResult {
	confirmed := FilterByStatus(records, IsConfirmed)
	if len(confirmed) == 0 {
		return PredictionResult{
			Err:        "No confirmed orders found for prediction",
			Confidence: ConfidenceLow,
		}
	}

	monthly := AggregateMonthly(records)
	if len(monthly) == 0 {
		return PredictionResult{
			Err:        "Insufficient historical data for prediction",
			Confidence: ConfidenceLow,
		}
	}

	totalMonths := len(monthly)
	var sumQty, sumRevenue float64
	var sumOrders int
	for _, agg := range monthly {
		sumQty += agg.TotalQuantity
		sumRevenue += agg.TotalRevenue
		sumOrders += agg.OrderCount
	}
	avgQuantity := sumQty / float64(totalMonths)
	avgRevenue := sumRevenue / float64(totalMonths)
	avgOrders := float64(sumOrders) / float64(totalMonths)

	avgGrowthRate := defaultGrowthRate
	if rates := GrowthRates(monthly); len(rates) > 0 {
		var sum float64
		for _, r := range rates {
			sum += r
		}
		avgGrowthRate = sum / float64(len(rates))
	}

	seasonalFactor := SeasonalFactor(monthly, target.Month(), avgQuantity)

	months := sortedMonths(monthly)
	latestKey := months[len(months)-1]
	latest, err := time.Parse("2006-01-02", latestKey+"-01")
	if err != nil {
		return PredictionResult{
			Err:        "Prediction error: " + err.Error(),
			Confidence: ConfidenceLow,
		}
	}
	monthsAhead := monthsBetween(latest, target)

	growthMultiplier := math.Pow(1+avgGrowthRate/100, float64(monthsAhead))

	result := PredictionResult{
		TargetDate:        target.Format("2006-01-02"),
		PredictedQuantity: round2(avgQuantity * seasonalFactor * growthMultiplier),
		PredictedRevenue:  round2(avgRevenue * seasonalFactor * growthMultiplier),
		PredictedOrders:   int(math.Round(avgOrders * seasonalFactor * growthMultiplier)),
		AvgGrowthRate:     round2(avgGrowthRate),
		SeasonalFactor:    round2(seasonalFactor),
		Confidence:        confidenceFor(monthsAhead),
		MonthsAhead:       monthsAhead,
		HistoricalMonths:  totalMonths,
		Note:              "Predictions based on confirmed orders only",
	}

	// A target earlier than the latest history month is a backward
	// extrapolation; the compound-growth model was not built for it, so the
	// answer is reported but never trusted.
	if monthsAhead < 0 {
		result.Confidence = ConfidenceLow
		result.Note = "Target predates latest historical data; backward extrapolation is unreliable"
	}

	return result
}

// predictionKeywords mark a question as asking about the future.
var predictionKeywords = []string{
	"predict", "forecast", "future", "will be", "next year", "next month",
	"2026", "2027", "2028", "upcoming", "expected", "projection",
}

// IsPredictionQuestion reports whether the question asks for a forecast.
func IsPredictionQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, keyword := range predictionKeywords {
		if strings.Contains(q, keyword) {
			return true
		}
	}
	return false
}

var yearPattern = regexp.MustCompile(`(202[6-9]|20[3-9]\d)`)

// monthNames resolves month names and abbreviations; longer names come first
// so "june" is not shadowed by "jun".
var monthNames = []struct {
	name  string
	month time.Month
}{
	{"january", time.January}, {"february", time.February}, {"march", time.March},
	{"april", time.April}, {"august", time.August}, {"september", time.September},
	{"october", time.October}, {"november", time.November}, {"december", time.December},
	{"july", time.July}, {"june", time.June},
	{"jan", time.January}, {"feb", time.February}, {"mar", time.March},
	{"apr", time.April}, {"may", time.May}, {"jun", time.June},
	{"jul", time.July}, {"aug", time.August}, {"sep", time.September},
	{"oct", time.October}, {"nov", time.November}, {"dec", time.December},
}

// ExtractPredictionDate pulls the target month out of a free-text question.
// Defaults to June 2026 when no year or month is mentioned; the day is
// anchored to the 15th so month arithmetic has a fixed reference point.
func ExtractPredictionDate(question string) time.Time {
	q := strings.ToLower(question)

	year := 2026
	if m := yearPattern.FindString(q); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			year = y
		}
	}

	month := time.June
	for _, entry := range monthNames {
		if strings.Contains(q, entry.name) {
			month = entry.month
			break
		}
	}

	return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
}
