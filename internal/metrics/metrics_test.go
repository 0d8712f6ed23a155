package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordsValues(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObserveHTTP("GET", "/api/v1/users/:id", 200, 10*time.Millisecond)
	c.ObserveGeocoder(OutcomeEmpty, time.Millisecond)
	c.RegionOperation("create", nil)
	c.RegionOperation("create", errors.New("boom"))
	c.CacheLookup("hit")
	c.CleanupEvent(OutcomeSuccess)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/v1/users/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.GeocoderRequests.WithLabelValues(OutcomeEmpty)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RegionOperations.WithLabelValues("create", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RegionOperations.WithLabelValues("create", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CleanupEvents.WithLabelValues(OutcomeSuccess)))
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveHTTP("GET", "/", 200, time.Millisecond)
		c.ObserveGeocoder(OutcomeError, time.Millisecond)
		c.RegionOperation("delete", nil)
		c.CacheLookup("miss")
		c.CleanupEvent(OutcomeError)
	})
}

func TestCollector_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestCollector_Handler(t *testing.T) {
	c, err := New(prometheus.NewRegistry())
	require.NoError(t, err)
	c.RegionOperation("update", nil)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "region_service_region_operations_total"))
}
