package analytics

import (
	"strings"
	"time"

	"app/models"
)

// StatusConfirmed is the only status eligible for trend and forecast reporting.
const StatusConfirmed = "confirmed"

// StatusPredicate decides whether a record participates in an analysis.
type StatusPredicate func(models.SalesRecord) bool

// IsConfirmed matches records whose status equals the confirmed marker.
func IsConfirmed(r models.SalesRecord) bool {
	return strings.TrimSpace(strings.ToLower(r.Status)) == StatusConfirmed
}

// FilterByStatus returns the records matching the predicate. The input slice
// is never modified.
func FilterByStatus(records []models.SalesRecord, keep StatusPredicate) []models.SalesRecord {
	if len(records) == 0 {
		return nil
	}
	var out []models.SalesRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterConfirmedByMonth returns the confirmed records whose order date falls
// in the given calendar month (1-12). Records with unparseable dates are
// skipped.
func FilterConfirmedByMonth(records []models.SalesRecord, month time.Month) []models.SalesRecord {
	var out []models.SalesRecord
	for _, r := range FilterByStatus(records, IsConfirmed) {
		d, err := ParseOrderDate(r.Date)
		if err != nil {
			continue
		}
		if d.Month() == month {
			out = append(out, r)
		}
	}
	return out
}

// ParseOrderDate parses an order date that is either a bare calendar date
// ("2025-05-27") or an ISO timestamp with a time suffix
// ("2025-05-27T17:09:18.536Z").
func ParseOrderDate(s string) (time.Time, error) {
	if i := strings.Index(s, "T"); i >= 0 {
		s = s[:i]
	}
	return time.Parse("2006-01-02", s)
}
