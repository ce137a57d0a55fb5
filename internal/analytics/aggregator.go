// Package analytics normalizes raw campaign analytics into the consistent
// snapshot the certified report is rendered from. It recomputes every derived
// KPI from the raw counters so the rendered figures can never disagree with
// each other, whatever the upstream service sent.
package analytics

import (
	"sort"
	"strings"
)

// topRegionLimit caps the region breakdown at the highest-emitting regions.
const topRegionLimit = 10

// ValidationError reports required top-level input that was absent.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Aggregate validates and normalizes a report input. Missing numeric fields
// default to zero and missing collections to empty; only the simultaneous
// absence of both campaign and analytics is an error, since then there is
// nothing to report on. Derived KPIs are recomputed with zero-division
// guards (a zero denominator yields zero, never NaN or Inf).
func Aggregate(in *ReportInput) (*Report, error) {
	if in == nil || (in.Campaign == nil && in.Analytics == nil) {
		return nil, &ValidationError{Missing: []string{"campaign", "analytics"}}
	}

	r := &Report{
		ByDevice:   []BreakdownRow{},
		ByRegion:   []BreakdownRow{},
		TimeSeries: []TimeSeriesPoint{},
	}

	if in.Campaign != nil {
		r.Campaign = *in.Campaign
	}
	if in.DateRange != nil {
		r.DateRange = *in.DateRange
	}

	if in.Analytics != nil {
		if in.Analytics.Totals != nil {
			r.Totals = *in.Analytics.Totals
		}
		if in.Analytics.EmissionsBreakdown != nil {
			r.Emissions = *in.Analytics.EmissionsBreakdown
		}
		if in.Analytics.ByDevice != nil {
			r.ByDevice = append(r.ByDevice, in.Analytics.ByDevice...)
		}
		if in.Analytics.ByRegion != nil {
			r.ByRegion = append(r.ByRegion, in.Analytics.ByRegion...)
		}
		if in.Analytics.TimeSeries != nil {
			r.TimeSeries = append(r.TimeSeries, in.Analytics.TimeSeries...)
		}
	}

	t := &r.Totals
	t.CTR = safeRate(float64(t.Clicks), float64(t.Impressions)) * 100
	t.CPC = safeRate(t.Cost, float64(t.Clicks))
	t.CPA = safeRate(t.Cost, float64(t.Conversions))
	t.ConversionRate = safeRate(float64(t.Conversions), float64(t.Sessions)) * 100
	t.EmissionsPerConversionKg = safeRate(t.TotalEmissionsKg, float64(t.Conversions))

	// Highest emitters first; stable sort keeps input order for ties.
	sort.SliceStable(r.ByRegion, func(i, j int) bool {
		return r.ByRegion[i].EmissionsKg > r.ByRegion[j].EmissionsKg
	})
	if len(r.ByRegion) > topRegionLimit {
		r.ByRegion = r.ByRegion[:topRegionLimit]
	}

	return r, nil
}

func safeRate(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
