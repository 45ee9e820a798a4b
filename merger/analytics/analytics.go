// Package analytics computes the descriptive summary served alongside a
// consolidated claim set: counts, totals, categorical breakdowns, and the
// top procedures by frequency.
package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/royalket/demo-file-merger/merger/models"
)

const noDatesAvailable = "No dates available"

// Summarize derives the analytics report from a finished claim set. The
// input is read-only; an empty set produces a zeroed report.
func Summarize(claims []models.ConsolidatedClaim) models.AnalyticsReport {
	report := models.AnalyticsReport{
		TotalClaims:       len(claims),
		TotalAmount:       models.FormatAmount(0),
		DateRange:         noDatesAvailable,
		ClaimsBySpecialty: map[string]int{},
		TopProcedures:     []models.ProcedureCount{},
		ClaimsByGender:    map[string]int{},
		ClaimsByState:     map[string]int{},
	}

	patients := make(map[string]struct{})
	var total float64
	minDate, maxDate := "", ""

	for _, claim := range claims {
		if claim.PatientName != "" {
			patients[claim.PatientName] = struct{}{}
		}

		total += models.ParseAmount(claim.TotalChargeAmount)

		// Date range compares the formatted strings lexically; with mixed
		// output formats in one set this is not chronological order.
		if d := claim.StartingServiceDate; d != "" {
			if minDate == "" || d < minDate {
				minDate = d
			}
			if d > maxDate {
				maxDate = d
			}
		}

		// The specialty breakdown keeps empty values, gender and state
		// drop them.
		report.ClaimsBySpecialty[claim.ProviderSpecialty]++
		if claim.Gender != "" {
			report.ClaimsByGender[claim.Gender]++
		}
		if claim.FacilityState != "" {
			report.ClaimsByState[claim.FacilityState]++
		}
	}

	report.TotalPatients = len(patients)
	report.TotalAmount = models.FormatAmount(total)
	if minDate != "" {
		report.DateRange = fmt.Sprintf("%s to %s", minDate, maxDate)
	}
	report.TopProcedures = topProcedures(claims, 5)

	return report
}

// topProcedures counts individual procedure description occurrences
// across all claims and returns the most frequent n, ties broken by
// first-encountered order during counting.
func topProcedures(claims []models.ConsolidatedClaim, n int) []models.ProcedureCount {
	counts := make(map[string]int)
	var order []string

	for _, claim := range claims {
		if claim.ProcedureDescriptions == "" {
			continue
		}
		for _, desc := range strings.Split(claim.ProcedureDescriptions, ", ") {
			if desc == "" {
				continue
			}
			if _, seen := counts[desc]; !seen {
				order = append(order, desc)
			}
			counts[desc]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}

	top := make([]models.ProcedureCount, 0, len(order))
	for _, desc := range order {
		top = append(top, models.ProcedureCount{Procedure: desc, Count: counts[desc]})
	}
	return top
}
