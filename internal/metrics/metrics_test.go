package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveBid(t *testing.T) {
	before := testutil.ToFloat64(BidsTotal.WithLabelValues(BidAccepted))
	ObserveBid(BidAccepted)
	ObserveBid(BidAccepted)
	require.Equal(t, before+2, testutil.ToFloat64(BidsTotal.WithLabelValues(BidAccepted)))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ObserveBid(BidRejected)
	ObserveRequest(http.MethodGet, "/listings/:listing_id", http.StatusOK, time.Now())

	router := gin.New()
	router.GET("/metrics", Handler())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.True(t, strings.Contains(body, `commerce_bids_total{outcome="rejected"}`))
	require.True(t, strings.Contains(body, `route="/listings/:listing_id"`))
}
