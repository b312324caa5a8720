package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	return rec.Body.String()
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.ObserveRequest("GET", "/api/products", 200, 15*time.Millisecond)
	r.ObserveRequest("GET", "/api/products", 200, 5*time.Millisecond)
	r.OrdersPlaced("cod", 2)
	r.WebhookEvent("processed")

	out := scrape(t, r)
	assert.Contains(t, out, `supermall_http_requests_total{method="GET",route="/api/products",status="200"} 2`)
	assert.Contains(t, out, `supermall_orders_placed_total{payment_method="cod"} 2`)
	assert.Contains(t, out, `supermall_payment_webhook_events_total{result="processed"} 1`)
	assert.Contains(t, out, "go_goroutines")
}

func TestGatherer(t *testing.T) {
	r := NewRegistry()
	r.WebhookEvent("error")
	mfs, err := r.Gatherer().Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range mfs {
		if mf.GetName() == MetricWebhookEventsTotal {
			found = true
		}
	}
	assert.True(t, found)
}
