package observability

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/workouts", "200"))

	ObserveRequest(http.MethodGet, "/workouts", http.StatusOK, 15*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/workouts", "200"))
	assert.Equal(t, before+1, after)
}

func TestObserveRequest_Unmatched(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))

	ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestRecordDenialAndAI(t *testing.T) {
	d := testutil.ToFloat64(authzDenials.WithLabelValues("admin", "role_mismatch"))
	RecordDenial("admin", "role_mismatch")
	assert.Equal(t, d+1, testutil.ToFloat64(authzDenials.WithLabelValues("admin", "role_mismatch")))

	a := testutil.ToFloat64(aiRequests.WithLabelValues("ok"))
	RecordAIRequest("ok")
	assert.Equal(t, a+1, testutil.ToFloat64(aiRequests.WithLabelValues("ok")))
}
