package analytics

// CampaignSnapshot identifies the campaign a report is generated for.
// Fields are immutable for the lifetime of a request.
type CampaignSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ExternalID string `json:"external_id"` // identifier on the ad platform side
	Status     string `json:"status"`
}

// AnalyticsTotals holds raw campaign counters plus the derived KPIs.
// Derived fields (CTR, CPC, CPA, ConversionRate, EmissionsPerConversionKg)
// are recomputed by the aggregator and never trusted from upstream.
type AnalyticsTotals struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Sessions    int64   `json:"sessions"`
	PageViews   int64   `json:"page_views"`
	Conversions int64   `json:"conversions"`
	Cost        float64 `json:"cost"`

	CTR                      float64 `json:"ctr"`             // percentage
	CPC                      float64 `json:"cpc"`             // USD
	CPA                      float64 `json:"cpa"`             // USD
	ConversionRate           float64 `json:"conversion_rate"` // percentage
	TotalEmissionsKg         float64 `json:"total_emissions_kg"`
	EmissionsPerConversionKg float64 `json:"emissions_per_conversion_kg"`
}

// EmissionsBreakdown attributes emissions, in grams, to the activity that
// caused them. Informational only; not re-validated against the total.
type EmissionsBreakdown struct {
	ImpressionsG float64 `json:"impressions_g"`
	ClicksG      float64 `json:"clicks_g"`
	PageViewsG   float64 `json:"page_views_g"`
	ConversionsG float64 `json:"conversions_g"`
}

// BreakdownRow is one row of a device or region breakdown table.
type BreakdownRow struct {
	Category    string  `json:"category"`
	Sessions    int64   `json:"sessions"`
	Conversions int64   `json:"conversions"`
	EmissionsKg float64 `json:"emissions_kg"`
}

// TimeSeriesPoint carries one day of trend data. Used for rendering only;
// the aggregator does not sum these.
type TimeSeriesPoint struct {
	Date        string  `json:"date"`
	Impressions int64   `json:"impressions"`
	Sessions    int64   `json:"sessions"`
	Conversions int64   `json:"conversions"`
	EmissionsKg float64 `json:"emissions_kg"`
}

// DateRange is the reporting window, inclusive, as ISO dates.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Payload is the analytics object supplied by the upstream analytics
// service. Every sub-field is individually optional.
type Payload struct {
	Totals             *AnalyticsTotals    `json:"totals"`
	EmissionsBreakdown *EmissionsBreakdown `json:"emissions_breakdown"`
	ByDevice           []BreakdownRow      `json:"by_device"`
	ByRegion           []BreakdownRow      `json:"by_region"`
	TimeSeries         []TimeSeriesPoint   `json:"time_series"`
}

// ReportInput is the wire-level request body for certified report
// generation. Any field may be absent; the aggregator resolves defaults.
type ReportInput struct {
	Campaign  *CampaignSnapshot `json:"campaign"`
	Analytics *Payload          `json:"analytics"`
	DateRange *DateRange        `json:"dateRange"`
}

// Report is a fully-populated, internally consistent snapshot produced by
// Aggregate. All derived metrics are consistent with the raw counters and
// the region breakdown is sorted and truncated.
type Report struct {
	Campaign   CampaignSnapshot
	Totals     AnalyticsTotals
	Emissions  EmissionsBreakdown
	ByDevice   []BreakdownRow
	ByRegion   []BreakdownRow
	TimeSeries []TimeSeriesPoint
	DateRange  DateRange
}
