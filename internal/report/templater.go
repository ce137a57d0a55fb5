// Package report implements the certified report pipeline: it turns a
// normalized analytics snapshot into the fixed certification layout, drives
// the render engine to produce PDF bytes and packages the result for
// delivery.
package report

import (
	"bytes"
	"fmt"
	"html/template"

	"carbonlens/reporting-backend/internal/analytics"
)

// templateData is what the certified layout is executed against.
type templateData struct {
	Report *analytics.Report
	Cert   Certification
}

var certifiedTemplate = template.Must(template.New("certified").Funcs(template.FuncMap{
	"emissions": formatEmissions,
	"grams":     formatGrams,
	"money":     formatMoney,
	"percent":   formatPercent,
}).Parse(certifiedLayout))

// RenderDocument renders the snapshot into the certified layout. The output
// is a single self-contained HTML string with no external asset references,
// so the render engine can operate fully offline. User-supplied text flows
// through html/template's contextual escaping.
func RenderDocument(r *analytics.Report, cert Certification) (string, error) {
	var buf bytes.Buffer
	if err := certifiedTemplate.Execute(&buf, templateData{Report: r, Cert: cert}); err != nil {
		return "", fmt.Errorf("execute certified template: %w", err)
	}
	return buf.String(), nil
}

// formatEmissions renders a kg quantity at a readable scale: kilograms with
// three decimals from 1 kg upward, grams with two decimals below that.
func formatEmissions(kg float64) string {
	if kg >= 1 {
		return fmt.Sprintf("%.3f kg", kg)
	}
	return fmt.Sprintf("%.2f g", kg*1000)
}

func formatGrams(g float64) string {
	return fmt.Sprintf("%.2f g", g)
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

const certifiedLayout = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1a2b23; margin: 0; }
  .header { border-bottom: 3px solid #2e7d55; padding-bottom: 16px; margin-bottom: 24px; }
  .header h1 { margin: 0 0 4px 0; font-size: 22px; }
  .header .meta { color: #5a6b62; font-size: 12px; }
  h2 { font-size: 14px; text-transform: uppercase; letter-spacing: 1px; color: #2e7d55;
       border-bottom: 1px solid #d7e3dc; padding-bottom: 4px; margin: 24px 0 12px 0; }
  .kpi-grid { display: flex; flex-wrap: wrap; }
  .kpi { width: 25%; padding: 8px 0; }
  .kpi .value { font-size: 18px; font-weight: bold; }
  .kpi .label { font-size: 11px; color: #5a6b62; }
  .highlight { background: #eaf4ee; border: 1px solid #bcd8c7; border-radius: 6px;
               padding: 16px; margin: 12px 0; }
  .highlight .total { font-size: 26px; font-weight: bold; color: #2e7d55; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; }
  th { background: #2e7d55; color: #fff; text-align: left; padding: 6px 8px; }
  td { border-bottom: 1px solid #d7e3dc; padding: 6px 8px; }
  td.num, th.num { text-align: right; }
  .cert { border: 2px solid #2e7d55; border-radius: 6px; padding: 12px 16px; margin-top: 24px; }
  .cert .id { font-family: monospace; font-size: 13px; }
  .note { font-size: 10px; color: #5a6b62; margin-top: 16px; }
  .footer { font-size: 10px; color: #8a978f; border-top: 1px solid #d7e3dc;
            margin-top: 24px; padding-top: 8px; }
</style>
</head>
<body>

<div class="header">
  <h1>Certified Carbon Emissions Report</h1>
  <div class="meta">Campaign: {{.Report.Campaign.Name}} &middot; Platform ID: {{.Report.Campaign.ExternalID}} &middot; Status: {{.Report.Campaign.Status}}</div>
  <div class="meta">Reporting period: {{.Report.DateRange.Start}} &ndash; {{.Report.DateRange.End}}</div>
</div>

<h2>Key Performance Indicators</h2>
<div class="kpi-grid">
  <div class="kpi"><div class="value">{{.Report.Totals.Impressions}}</div><div class="label">Impressions</div></div>
  <div class="kpi"><div class="value">{{.Report.Totals.Clicks}}</div><div class="label">Clicks</div></div>
  <div class="kpi"><div class="value">{{.Report.Totals.Sessions}}</div><div class="label">Sessions</div></div>
  <div class="kpi"><div class="value">{{.Report.Totals.PageViews}}</div><div class="label">Page Views</div></div>
  <div class="kpi"><div class="value">{{.Report.Totals.Conversions}}</div><div class="label">Conversions</div></div>
  <div class="kpi"><div class="value">{{percent .Report.Totals.CTR}}%</div><div class="label">CTR</div></div>
  <div class="kpi"><div class="value">{{percent .Report.Totals.ConversionRate}}%</div><div class="label">Conversion Rate</div></div>
</div>

<h2>Carbon Emissions</h2>
<div class="highlight">
  <div class="total">{{emissions .Report.Totals.TotalEmissionsKg}}</div>
  <div class="label">Total CO2e attributed to this campaign</div>
  {{if gt .Report.Totals.Conversions 0}}<div class="per-conversion">Per conversion: {{emissions .Report.Totals.EmissionsPerConversionKg}} CO2e</div>{{end}}
</div>

<h2>Cost Analysis</h2>
<table>
  <tr><th>Metric</th><th class="num">Value</th></tr>
  <tr><td>Total Cost</td><td class="num">${{money .Report.Totals.Cost}}</td></tr>
  <tr><td>Cost per Click (CPC)</td><td class="num">${{money .Report.Totals.CPC}}</td></tr>
  <tr><td>Cost per Acquisition (CPA)</td><td class="num">${{money .Report.Totals.CPA}}</td></tr>
</table>

<h2>Emissions Breakdown</h2>
<table>
  <tr><th>Source</th><th class="num">Emissions</th></tr>
  <tr><td>Ad Impressions</td><td class="num">{{grams .Report.Emissions.ImpressionsG}}</td></tr>
  <tr><td>Clicks</td><td class="num">{{grams .Report.Emissions.ClicksG}}</td></tr>
  <tr><td>Page Views</td><td class="num">{{grams .Report.Emissions.PageViewsG}}</td></tr>
  <tr><td>Conversions</td><td class="num">{{grams .Report.Emissions.ConversionsG}}</td></tr>
</table>

<h2>Emissions by Device</h2>
<table>
  <tr><th>Device</th><th class="num">Sessions</th><th class="num">Conversions</th><th class="num">Emissions</th></tr>
  {{range .Report.ByDevice}}<tr><td>{{.Category}}</td><td class="num">{{.Sessions}}</td><td class="num">{{.Conversions}}</td><td class="num">{{emissions .EmissionsKg}}</td></tr>
  {{end}}
</table>

<h2>Top Regions by Emissions</h2>
<table>
  <tr><th>Region</th><th class="num">Sessions</th><th class="num">Conversions</th><th class="num">Emissions</th></tr>
  {{range .Report.ByRegion}}<tr><td>{{.Category}}</td><td class="num">{{.Sessions}}</td><td class="num">{{.Conversions}}</td><td class="num">{{emissions .EmissionsKg}}</td></tr>
  {{end}}
</table>

<div class="cert">
  <strong>Certification</strong>
  <div class="id">{{.Cert.ID}}</div>
  <div class="meta">Generated at {{.Cert.GeneratedAt.UTC.Format "2006-01-02 15:04:05"}} UTC</div>
</div>

<div class="note">
  Methodology: emissions are estimated from campaign delivery activity
  (impressions, clicks, page views, conversions) using per-event energy and
  grid-intensity factors for the delivery chain (Scope 3). Figures are
  estimates, not measurements.
</div>

<div class="footer">Generated by the CarbonLens certified reporting pipeline.</div>

</body>
</html>`
