package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientFetchReportInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/campaigns/c-42/analytics", r.URL.Path)
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("start"))
		assert.Equal(t, "2026-01-31", r.URL.Query().Get("end"))

		json.NewEncoder(w).Encode(ReportInput{
			Campaign: &CampaignSnapshot{ID: "c-42", Name: "Winter Sale"},
			Analytics: &Payload{
				Totals: &AnalyticsTotals{Impressions: 1000},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 2, zap.NewNop())
	in, err := client.FetchReportInput(context.Background(), "c-42", "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.NotNil(t, in.Campaign)
	assert.Equal(t, "Winter Sale", in.Campaign.Name)
	assert.EqualValues(t, 1000, in.Analytics.Totals.Impressions)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(ReportInput{Campaign: &CampaignSnapshot{ID: "c-1"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 2, zap.NewNop())
	in, err := client.FetchReportInput(context.Background(), "c-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, "c-1", in.Campaign.ID)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second, 2, zap.NewNop())
	_, err := client.FetchReportInput(context.Background(), "missing", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.EqualValues(t, 1, calls.Load())
}

func TestClientHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(srv.URL, time.Second, 5, zap.NewNop())
	_, err := client.FetchReportInput(ctx, "c-1", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
