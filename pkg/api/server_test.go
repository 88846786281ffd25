package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goran-ethernal/ChainFirehose/internal/common"
	"github.com/goran-ethernal/ChainFirehose/internal/logger"
	servermocks "github.com/goran-ethernal/ChainFirehose/internal/server/mocks"
	apimocks "github.com/goran-ethernal/ChainFirehose/pkg/api/mocks"
	"github.com/goran-ethernal/ChainFirehose/pkg/archive"
	"github.com/goran-ethernal/ChainFirehose/pkg/config"
	datasourcemocks "github.com/goran-ethernal/ChainFirehose/pkg/datasource/mocks"
	pbfirehose "github.com/streamingfast/pbgo/sf/firehose/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testAPIConfig(address string) *config.APIConfig {
	return &config.APIConfig{
		Enabled:       true,
		ListenAddress: address,
		ReadTimeout:   common.NewDuration(5 * time.Second),
		WriteTimeout:  common.NewDuration(10 * time.Second),
		IdleTimeout:   common.NewDuration(60 * time.Second),
	}
}

func newTestServer(t *testing.T, cfg *config.APIConfig) (*Server, testDeps) {
	t.Helper()

	deps := testDeps{
		archive: apimocks.NewArchiveReader(t),
		live:    datasourcemocks.NewDataSource(t),
		fetcher: servermocks.NewService(t),
	}

	return NewServer(cfg, deps.archive, deps.live, deps.fetcher, logger.NewNopLogger()), deps
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t, testAPIConfig("localhost:8080"))

	require.NotNil(t, server.handler)
	require.Equal(t, "localhost:8080", server.server.Addr)
	require.Equal(t, 5*time.Second, server.server.ReadTimeout)
	require.Equal(t, 10*time.Second, server.server.WriteTimeout)
	require.Equal(t, 60*time.Second, server.server.IdleTimeout)
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	server, deps := newTestServer(t, testAPIConfig(":0"))
	deps.archive.EXPECT().Stats(mock.Anything).Return(archive.Stats{Oldest: 1, Newest: 9, Count: 9}, nil).Maybe()
	deps.live.EXPECT().GetFinalizedHeight(mock.Anything).Return(9, nil).Maybe()
	deps.fetcher.EXPECT().Block(mock.Anything, mock.Anything).RunAndReturn(
		func(_ context.Context, req *pbfirehose.SingleBlockRequest) (*pbfirehose.SingleBlockResponse, error) {
			return blockResponse(t, req.GetBlockNumber().GetNum()), nil
		}).Maybe()

	ts := httptest.NewServer(server.server.Handler)
	t.Cleanup(ts.Close)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{method: http.MethodGet, path: "/health", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/head", status: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/blocks/167", status: http.StatusOK},
		{method: http.MethodGet, path: "/swagger/doc.json", status: http.StatusOK},
		{method: http.MethodPost, path: "/api/v1/head", status: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/api/v1/unknown", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			_, err = io.Copy(io.Discard, resp.Body)
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestServer_CORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cors   config.CORSConfig
		expect string
	}{
		{name: "enabled", cors: config.CORSConfig{Enabled: true, AllowedOrigins: []string{"https://example.com"}}, expect: "https://example.com"},
		{name: "disabled", cors: config.CORSConfig{Enabled: false}, expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := testAPIConfig(":0")
			cfg.CORS = tt.cors

			server, deps := newTestServer(t, cfg)
			deps.archive.EXPECT().Stats(mock.Anything).Return(archive.Stats{}, nil)
			deps.live.EXPECT().GetFinalizedHeight(mock.Anything).Return(0, nil)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", "https://example.com")
			w := httptest.NewRecorder()

			server.server.Handler.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.expect, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestServer_Start_Disabled(t *testing.T) {
	t.Parallel()

	cfg := testAPIConfig(":8080")
	cfg.Enabled = false

	server, _ := newTestServer(t, cfg)

	// returns immediately without waiting for ctx
	require.NoError(t, server.Start(context.Background()))
}

func TestServer_Start_GracefulShutdown(t *testing.T) {
	t.Parallel()

	server, deps := newTestServer(t, testAPIConfig("127.0.0.1:0"))
	deps.archive.EXPECT().Stats(mock.Anything).Return(archive.Stats{}, nil).Maybe()
	deps.live.EXPECT().GetFinalizedHeight(mock.Anything).Return(0, nil).Maybe()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownCtxTimeout + 5*time.Second):
		t.Fatal("server did not shut down gracefully")
	}
}

func TestServer_Start_ListenError(t *testing.T) {
	t.Parallel()

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { lis.Close() })

	server, _ := newTestServer(t, testAPIConfig(lis.Addr().String()))

	require.Error(t, server.Start(context.Background()))
}
