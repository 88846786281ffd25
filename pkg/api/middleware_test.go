package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	"github.com/goran-ethernal/ChainFirehose/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		wantOrigin string
		wantVary   bool
	}{
		{name: "wildcard without origin", allowed: []string{"*"}, wantOrigin: "*"},
		{name: "wildcard echoes origin", allowed: []string{"*"}, origin: "https://explorer.example", wantOrigin: "https://explorer.example", wantVary: true},
		{name: "listed origin", allowed: []string{"https://a.example", "https://b.example"}, origin: "https://b.example", wantOrigin: "https://b.example", wantVary: true},
		{name: "unlisted origin", allowed: []string{"https://a.example"}, origin: "https://evil.example"},
		{name: "listed origins without origin header", allowed: []string{"https://a.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/v1/head", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			CORSMiddleware(tt.allowed)(okHandler("head")).ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, "head", w.Body.String())
			require.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))

			if tt.wantOrigin == "" {
				require.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
				return
			}
			require.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			require.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
			require.Equal(t, tt.wantVary, w.Header().Get("Vary") == "Origin")
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	t.Parallel()

	reached := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { reached = true })

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/blocks/100", nil)
	req.Header.Set("Origin", "https://explorer.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()

	CORSMiddleware([]string{"https://explorer.example"})(next).ServeHTTP(w, req)

	require.False(t, reached)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())
	require.Equal(t, "https://explorer.example", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestResponseWriter_RecordsFirstStatus(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusNotFound)
	rw.WriteHeader(http.StatusInternalServerError)

	require.Equal(t, http.StatusNotFound, rw.statusCode)
	require.Equal(t, http.StatusNotFound, rec.Code)

	implicit := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}
	_, err := implicit.Write([]byte("{}"))
	require.NoError(t, err)
	require.True(t, implicit.wroteHeader)
	require.Equal(t, http.StatusOK, implicit.statusCode)
}

func TestLoggingMiddleware_RecordsRouteMetrics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /test/blocks/{ref}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := LoggingMiddleware(logger.NewNopLogger())(mux)

	served := metrics.APIRequests.WithLabelValues("GET /test/blocks/{ref}", "404")
	unmatched := metrics.APIRequests.WithLabelValues(unmatchedRoute, "404")
	servedBefore := testutil.ToFloat64(served)
	unmatchedBefore := testutil.ToFloat64(unmatched)

	for _, path := range []string{"/test/blocks/1", "/test/blocks/0xabc"} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test/nowhere", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	require.InDelta(t, servedBefore+2, testutil.ToFloat64(served), 0)
	require.InDelta(t, unmatchedBefore+1, testutil.ToFloat64(unmatched), 0)
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.Handler
		wantStatus int
		wantBody   string
	}{
		{name: "no panic", handler: okHandler("ok"), wantStatus: http.StatusOK, wantBody: "ok"},
		{
			name:       "panic",
			handler:    http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("decode block payload") }),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal Server Error\n",
		},
		{
			name:       "panic with error",
			handler:    http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Internal Server Error\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			require.NotPanics(t, func() {
				RecoveryMiddleware(logger.NewNopLogger())(tt.handler).
					ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/head", nil))
			})

			require.Equal(t, tt.wantStatus, w.Code)
			require.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}
