// SmartCart - Grocery Recommendations and Budget-Constrained Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartcart

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// sampleCount returns the number of observations recorded by a histogram.
func sampleCount(t *testing.T, h prometheus.Observer) uint64 {
	t.Helper()
	m, ok := h.(prometheus.Metric)
	if !ok {
		t.Fatalf("%T is not a prometheus.Metric", h)
	}
	var pb io_prometheus_client.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return pb.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/products", "200"))

	RecordAPIRequest("GET", "/api/v1/products", "200", 5*time.Millisecond)
	RecordAPIRequest("GET", "/api/v1/products", "200", 7*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/products", "200"))
	if after-before != 2 {
		t.Errorf("expected counter to grow by 2, grew by %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordModelRebuild(t *testing.T) {
	okBefore := testutil.ToFloat64(ModelRebuildsTotal.WithLabelValues(OutcomeOK))
	errBefore := testutil.ToFloat64(ModelRebuildsTotal.WithLabelValues(OutcomeError))

	RecordModelRebuild(time.Second, 12, 34, 56, 3, nil)

	if got := testutil.ToFloat64(ModelUsers); got != 12 {
		t.Errorf("ModelUsers = %v, want 12", got)
	}
	if got := testutil.ToFloat64(ModelProducts); got != 34 {
		t.Errorf("ModelProducts = %v, want 34", got)
	}
	if got := testutil.ToFloat64(ModelVersion); got != 3 {
		t.Errorf("ModelVersion = %v, want 3", got)
	}

	// A failed rebuild leaves the shape gauges alone.
	RecordModelRebuild(time.Second, 1, 1, 1, 4, errors.New("boom"))

	if got := testutil.ToFloat64(ModelUsers); got != 12 {
		t.Errorf("ModelUsers after failure = %v, want 12", got)
	}
	if got := testutil.ToFloat64(ModelRebuildsTotal.WithLabelValues(OutcomeOK)); got != okBefore+1 {
		t.Errorf("ok rebuilds = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(ModelRebuildsTotal.WithLabelValues(OutcomeError)); got != errBefore+1 {
		t.Errorf("error rebuilds = %v, want %v", got, errBefore+1)
	}
}

func TestRecordRecommendation(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(OutcomeUnknown))
	samplesBefore := sampleCount(t, RecommendationDuration)

	RecordRecommendation(OutcomeUnknown, time.Millisecond)

	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(OutcomeUnknown)); got != before+1 {
		t.Errorf("unknown-user recommendations = %v, want %v", got, before+1)
	}
	if got := sampleCount(t, RecommendationDuration); got != samplesBefore+1 {
		t.Errorf("latency samples = %d, want %d", got, samplesBefore+1)
	}
}

func TestRecordStoreOperationLatency(t *testing.T) {
	h := StoreOperationDuration.WithLabelValues("counts")
	before := sampleCount(t, h)

	RecordStoreOperation("counts", 2*time.Millisecond, nil)

	if got := sampleCount(t, h); got != before+1 {
		t.Errorf("store latency samples = %d, want %d", got, before+1)
	}
}

func TestRecordAllocation(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		empty   bool
		outcome string
	}{
		{"filled list", "quantity", false, OutcomeOK},
		{"empty list", "single-unit", true, OutcomeEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(AllocationsTotal.WithLabelValues(tt.mode, tt.outcome))
			RecordAllocation(tt.mode, tt.empty, 3, 4)
			after := testutil.ToFloat64(AllocationsTotal.WithLabelValues(tt.mode, tt.outcome))
			if after != before+1 {
				t.Errorf("allocations = %v, want %v", after, before+1)
			}
		})
	}
}

func TestRecordStoreOperation(t *testing.T) {
	before := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("put_products"))

	RecordStoreOperation("put_products", time.Millisecond, nil)
	RecordStoreOperation("put_products", time.Millisecond, errors.New("disk full"))

	if got := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("put_products")); got != before+1 {
		t.Errorf("store errors = %v, want %v", got, before+1)
	}
}
