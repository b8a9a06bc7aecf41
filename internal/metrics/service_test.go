package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-labs/wtadb/internal/metrics"
)

func TestServiceCountersExposed(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := metrics.NewService(reg)

	svc.IncOperation("top-ranked")
	svc.IncOperation("top-ranked")
	svc.IncValidationFailure()
	svc.IncTxCommitted()
	svc.IncTxRolledBack()
	svc.SetStartupTime(0.25)

	srv := httptest.NewServer(metrics.NewHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `wtadb_operations_total{op="top-ranked"} 2`)
	assert.Contains(t, out, "wtadb_validation_failures_total 1")
	assert.Contains(t, out, "wtadb_transactions_committed_total 1")
	assert.Contains(t, out, "wtadb_transactions_rolled_back_total 1")
	assert.Contains(t, out, "wtadb_startup_duration_seconds 0.25")
}
