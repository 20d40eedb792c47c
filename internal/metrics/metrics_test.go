package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveRequest("POST", "/api/v1/kiosk/finalize", 409, 15*time.Millisecond)
	c.ObserveRequest("POST", "/api/v1/kiosk/finalize", 409, 5*time.Millisecond)
	c.ObserveRequest("POST", "/api/v1/kiosk/finalize", 200, 5*time.Millisecond)

	if got := testutil.ToFloat64(c.requests.WithLabelValues("POST", "/api/v1/kiosk/finalize", "409")); got != 2 {
		t.Errorf("requests{status=409} = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(c.requestLatency); got != 1 {
		t.Errorf("expected one latency series, got %d", got)
	}
}

func TestKioskCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordSignIn("PC01")
	c.RecordSignIn("PC02")
	c.RecordSignOut("PC01")
	c.RecordRejected(ReasonUnavailable)

	if got := testutil.ToFloat64(c.signIns); got != 2 {
		t.Errorf("sign_ins_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.signOuts); got != 1 {
		t.Errorf("sign_outs_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.rejected.WithLabelValues(ReasonUnavailable)); got != 1 {
		t.Errorf("rejected_total{unavailable} = %v, want 1", got)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordSignIn("PC01")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "comlab_kiosk_sign_ins_total 1") {
		t.Errorf("scrape output missing sign-in counter:\n%s", body)
	}
}

func TestNop(t *testing.T) {
	r := Nop()
	r.RecordSignIn("PC01")
	r.RecordSignOut("PC01")
	r.RecordRejected(ReasonInvalid)
}
