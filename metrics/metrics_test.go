package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/products", "200"))
	RecordAPIRequest("GET", "/api/products", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/products", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordCartMutation(t *testing.T) {
	okBefore := testutil.ToFloat64(CartMutations.WithLabelValues("add", "ok"))
	errBefore := testutil.ToFloat64(CartMutations.WithLabelValues("add", "error"))

	RecordCartMutation("add", nil)
	RecordCartMutation("add", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(CartMutations.WithLabelValues("add", "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(CartMutations.WithLabelValues("add", "error")))
}
