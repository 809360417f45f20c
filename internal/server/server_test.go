package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/bigcalc/bigint"
	"github.com/agbru/bigcalc/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(Config{Addr: "127.0.0.1:0", Timeout: 5 * time.Second, Security: DefaultSecurityConfig()}, newTestLogger(), nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postEval(t *testing.T, ts *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/eval", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHandleEval(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantResult string
		wantDigits float64
		wantError  string
	}{
		{"simple", `{"expr": "7 - 3"}`, http.StatusOK, "4", 1, ""},
		{"negative", `{"expr": "3 - 7"}`, http.StatusOK, "-4", 1, ""},
		{"product", `{"expr": "12345678900 * 56789123400"}`, http.StatusOK, "701100282508876260000", 21, ""},
		{"vars", `{"expr": "x * y + 1", "vars": {"x": "18446744073709551615", "y": "-2"}}`, http.StatusOK, "-36893488147419103229", 20, ""},
		{"statements", `{"expr": "a = 10; a <<= 2; a % 7"}`, http.StatusOK, "5", 1, ""},
		{"division by zero", `{"expr": "1 / 0"}`, http.StatusUnprocessableEntity, "", 0, "division by zero"},
		{"syntax", `{"expr": "1 +"}`, http.StatusUnprocessableEntity, "", 0, "syntax error"},
		{"unknown variable", `{"expr": "q + 1"}`, http.StatusUnprocessableEntity, "", 0, "unknown variable"},
		{"empty", `{"expr": ""}`, http.StatusBadRequest, "", 0, "must not be empty"},
		{"bad json", `{"expr": `, http.StatusBadRequest, "", 0, "body"},
		{"bad var value", `{"expr": "x", "vars": {"x": "12a"}}`, http.StatusBadRequest, "", 0, "vars.x"},
		{"bad var name", `{"expr": "1", "vars": {"1x": "1"}}`, http.StatusBadRequest, "", 0, "not an identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp, out := postEval(t, ts, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
			if tt.wantError != "" {
				assert.Contains(t, out["error"], tt.wantError)
				return
			}
			assert.Equal(t, tt.wantResult, out["result"])
			assert.Equal(t, tt.wantDigits, out["digits"])
			assert.NotEmpty(t, out["duration"])
		})
	}
}

func TestHandleEval_RequestsAreIsolated(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, _ := postEval(t, ts, `{"expr": "leak = 5"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, out := postEval(t, ts, `{"expr": "leak"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, out["error"], "unknown variable")
}

func TestHandleEval_MethodNotAllowed(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/eval")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "POST", resp.Header.Get("Allow"))
}

func TestHandleEval_ExprTooLong(t *testing.T) {
	t.Parallel()

	cfg := Config{Security: DefaultSecurityConfig()}
	cfg.Security.MaxExprLength = 4
	s := New(cfg, newTestLogger(), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/eval", strings.NewReader(`{"expr": "1 + 2 + 3"}`))
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "longer than 4 bytes")
}

func TestHandleEval_OperatorLimits(t *testing.T) {
	t.Parallel()
	s := New(Config{Timeout: 100 * time.Millisecond, Security: DefaultSecurityConfig()}, newTestLogger(), nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	tests := []struct {
		name string
		body string
	}{
		{"huge shift", `{"expr": "1 << 2199023255552"}`},
		{"long division", `{"expr": "(1 << 6000) / ((1 << 3000) + 1)"}`},
		{"huge product", `{"expr": "x = 1 << 600000; x * x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			start := time.Now()
			resp, out := postEval(t, ts, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.Contains(t, out["error"], "evaluation limit exceeded")
			assert.Less(t, time.Since(start), 2*time.Second)
		})
	}
}

func TestDefaultResultBitsFitServeWordCap(t *testing.T) {
	t.Parallel()
	assert.LessOrEqual(t, DefaultSecurityConfig().MaxResultBits, config.ServeMaxWords*bigint.WordBits)
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out["status"])
	assert.NotZero(t, out["heap_bytes"])
}

func TestMetricsAfterEval(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	postEval(t, ts, `{"expr": "2 * 3"}`)
	postEval(t, ts, `{"expr": "2 / 0"}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, `bigcalc_evaluations_total{op="*",result="ok"} 1`)
	assert.Contains(t, body, `bigcalc_evaluations_total{op="/",result="division_by_zero"} 1`)
	assert.Contains(t, body, "bigcalc_eval_duration_seconds_count 2")
}

func TestListenAndServe_Shutdown(t *testing.T) {
	t.Parallel()

	s := New(Config{Addr: "127.0.0.1:0", Security: DefaultSecurityConfig()}, newTestLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusGatewayTimeout, statusFor(context.DeadlineExceeded))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(context.Canceled))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(assert.AnError))
}
