package report

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonlens/reporting-backend/internal/analytics"
)

func testReport() *analytics.Report {
	return &analytics.Report{
		Campaign: analytics.CampaignSnapshot{
			ID:         "c-1",
			Name:       "Spring Launch",
			ExternalID: "ext-99",
			Status:     "active",
		},
		Totals: analytics.AnalyticsTotals{
			Impressions:              100000,
			Clicks:                   2000,
			Sessions:                 5000,
			Conversions:              50,
			Cost:                     500,
			CTR:                      2,
			CPC:                      0.25,
			CPA:                      10,
			ConversionRate:           1,
			TotalEmissionsKg:         0.5,
			EmissionsPerConversionKg: 0.01,
		},
		ByDevice:  []analytics.BreakdownRow{{Category: "mobile", Sessions: 3000, Conversions: 30, EmissionsKg: 0.3}},
		ByRegion:  []analytics.BreakdownRow{{Category: "DE", Sessions: 2000, Conversions: 20, EmissionsKg: 0.2}},
		DateRange: analytics.DateRange{Start: "2026-01-01", End: "2026-01-31"},
	}
}

func testCert() Certification {
	return NewCertification(time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC))
}

func TestRenderDocumentEmissionsScale(t *testing.T) {
	r := testReport()

	r.Totals.TotalEmissionsKg = 0.5
	doc, err := RenderDocument(r, testCert())
	require.NoError(t, err)
	assert.Contains(t, doc, "500.00 g")

	r.Totals.TotalEmissionsKg = 2.345
	doc, err = RenderDocument(r, testCert())
	require.NoError(t, err)
	assert.Contains(t, doc, "2.345 kg")

	// Exactly 1.0 kg takes the kg branch.
	r.Totals.TotalEmissionsKg = 1.0
	doc, err = RenderDocument(r, testCert())
	require.NoError(t, err)
	assert.Contains(t, doc, "1.000 kg")
}

func TestRenderDocumentCurrencyAndPercent(t *testing.T) {
	doc, err := RenderDocument(testReport(), testCert())
	require.NoError(t, err)

	assert.Contains(t, doc, "$500.00")
	assert.Contains(t, doc, "$0.25")
	assert.Contains(t, doc, "$10.00")
	assert.Contains(t, doc, "2.00%")
	assert.Contains(t, doc, "1.00%")
}

func TestRenderDocumentPerConversionLine(t *testing.T) {
	r := testReport()
	doc, err := RenderDocument(r, testCert())
	require.NoError(t, err)
	assert.Contains(t, doc, "Per conversion")
	assert.Contains(t, doc, "10.00 g") // 0.01 kg

	r.Totals.Conversions = 0
	r.Totals.CPA = 0
	r.Totals.EmissionsPerConversionKg = 0
	doc, err = RenderDocument(r, testCert())
	require.NoError(t, err)
	assert.NotContains(t, doc, "Per conversion")
	assert.Contains(t, doc, "$0.00")
}

func TestRenderDocumentEscapesUserText(t *testing.T) {
	r := testReport()
	r.Campaign.Name = `<script>alert("x")</script>`
	r.Campaign.ExternalID = `"><img src=x>`

	doc, err := RenderDocument(r, testCert())
	require.NoError(t, err)

	assert.NotContains(t, doc, "<script>alert")
	assert.NotContains(t, doc, "<img src=x>")
	assert.Contains(t, doc, "&lt;script&gt;")
}

func TestRenderDocumentEmptyBreakdowns(t *testing.T) {
	r := testReport()
	r.ByDevice = nil
	r.ByRegion = nil

	doc, err := RenderDocument(r, testCert())
	require.NoError(t, err)
	assert.Contains(t, doc, "Emissions by Device")
	assert.Contains(t, doc, "Top Regions by Emissions")
}

func TestRenderDocumentSelfContained(t *testing.T) {
	doc, err := RenderDocument(testReport(), testCert())
	require.NoError(t, err)

	// No external asset references; the browser must render offline.
	assert.NotRegexp(t, regexp.MustCompile(`src\s*=\s*["']https?://`), doc)
	assert.NotContains(t, doc, "<link")
}

func TestRenderDocumentCertificationBlock(t *testing.T) {
	cert := testCert()
	doc, err := RenderDocument(testReport(), cert)
	require.NoError(t, err)

	assert.Contains(t, doc, cert.ID)
	assert.Contains(t, doc, "2026-01-31 12:00:00")
}

func TestNewCertificationFormat(t *testing.T) {
	now := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	cert := NewCertification(now)

	assert.Regexp(t, regexp.MustCompile(`^GCR-\d+-[0-9a-f]{8}$`), cert.ID)
	assert.Contains(t, cert.ID, "GCR-1769860800000-")
	assert.Equal(t, now, cert.GeneratedAt)

	// Random suffix differentiates ids issued in the same millisecond.
	assert.NotEqual(t, cert.ID, NewCertification(now).ID)
}
