package server

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloud-ru/mcp-compound-go/internal/config"
	"github.com/cloud-ru/mcp-compound-go/internal/tools"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func newTestServer() *httptest.Server {
	handlers := tools.Registry(config.Default(), noop.NewTracerProvider().Tracer("test"), zap.NewNop())
	return httptest.NewServer(New(0, handlers, zap.NewNop()).Handler())
}

func TestCallTool(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "lump sum",
			path:       "/tools/compound_interest_per_period",
			body:       `{"type":"lumpSum","principal":500,"rate":3.4,"years":1,"paymentsPerAnnum":12}`,
			wantStatus: http.StatusOK,
			wantBody:   `"interestMatrix":{"1":[501.42,502.83,504.25,505.67,507.08,508.5,509.92,511.33,512.75,514.17,515.58,517]}`,
		},
		{
			name:       "mortgage",
			path:       "/tools/mortgage_calculator",
			body:       `{"homeValue":150000,"deposit":15000,"interestRate":6,"years":25,"type":"repayment"}`,
			wantStatus: http.StatusOK,
			wantBody:   `"monthlyRepayment":869.81`,
		},
		{
			name:       "debt with accrual",
			path:       "/tools/compound_interest_per_period",
			body:       `{"principal":1000,"rate":5,"years":1,"accrualOfPaymentsPerAnnum":true,"debtRepayment":{"interestRate":6,"type":"interestOnly"}}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error"`,
		},
		{
			name:       "unknown tool",
			path:       "/tools/loan_schedule_annuity",
			body:       `{}`,
			wantStatus: http.StatusNotFound,
			wantBody:   `unknown tool`,
		},
		{
			name:       "invalid JSON",
			path:       "/tools/compound_interest_per_period",
			body:       `{"principal":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `invalid JSON body`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+tt.path, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if resp.Header.Get(requestIDHeader) == "" {
				t.Error("expected request id header")
			}

			var raw json.RawMessage
			if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if !strings.Contains(string(raw), tt.wantBody) {
				t.Errorf("body %s does not contain %s", raw, tt.wantBody)
			}
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(requestIDHeader, "req-42")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(requestIDHeader); got != "req-42" {
		t.Errorf("request id = %q, want req-42", got)
	}
}

func TestListTools(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/tools")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Tools []string `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	want := []string{"annuity_payment", "compound_interest_per_period", "interest_payments", "mortgage_calculator"}
	if strings.Join(body.Tools, ",") != strings.Join(want, ",") {
		t.Errorf("tools = %v, want %v", body.Tools, want)
	}

	resp, err = http.Get(ts.URL + "/tools/compound_interest_per_period")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	if _, err := http.Post(ts.URL+"/tools/interest_payments", "application/json",
		strings.NewReader(`{"principal":250000,"rate":6}`)); err != nil {
		t.Fatalf("POST error = %v", err)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	buf := new(strings.Builder)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `tool_calls_total{status="success",tool_name="interest_payments"}`) {
		t.Error("expected tool call counter in /metrics output")
	}
}

func TestVanishingRatesReturnResults(t *testing.T) {
	ts := newTestServer()
	defer ts.Close()

	tests := []struct {
		name string
		path string
		body string
	}{
		{
			name: "annuity payment",
			path: "/tools/annuity_payment",
			body: `{"ratePerPeriod":1e-17,"numPeriods":12,"presentValue":1000}`,
		},
		{
			name: "annuity payment with overflowing growth",
			path: "/tools/annuity_payment",
			body: `{"ratePerPeriod":0.5,"numPeriods":2000,"presentValue":1000}`,
		},
		{
			name: "mortgage",
			path: "/tools/mortgage_calculator",
			body: `{"homeValue":150000,"deposit":15000,"interestRate":1e-15,"years":25,"type":"repayment"}`,
		},
		{
			name: "repayment debt",
			path: "/tools/compound_interest_per_period",
			body: `{"principal":240000,"rate":4,"years":30,"paymentsPerAnnum":12,"debtRepayment":{"interestRate":1e-16,"type":"repayment"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+tt.path, "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d, want 200", resp.StatusCode)
			}
			var body struct {
				Result json.RawMessage `json:"result"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if len(body.Result) == 0 {
				t.Error("expected a result in the body")
			}
		})
	}
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	s := New(0, nil, zap.NewNop())
	rec := httptest.NewRecorder()

	s.writeJSON(rec, http.StatusOK, map[string]float64{"payment": math.NaN()})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %q", rec.Body.String())
	}
	if !strings.Contains(body["error"], "encode response") {
		t.Errorf("unexpected error body %q", body["error"])
	}
}
