package fivesim_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activation/internal/adapters/out/fivesim"
	"activation/internal/core/domain/model/credential"
	"activation/internal/core/ports"
	"activation/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredential(t *testing.T) *credential.Credential {
	t.Helper()
	c, err := credential.NewCredential(1, "tpl", "tok-123", "russia", "any", "telegram", credential.Display{})
	require.NoError(t, err)
	return c
}

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestAcquireNumberSuccess(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/user/buy/activation/russia/any/telegram", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 555, "phone": "+79991234567", "status": "PENDING"}`))
	})

	c := fivesim.NewClient(srv.URL, slog.Default())
	lease, err := c.AcquireNumber(t.Context(), testCredential(t))
	require.NoError(t, err)
	assert.Equal(t, "+79991234567", lease.PhoneNumber())
	assert.Equal(t, "555", lease.ExternalID())
}

func TestAcquireNumberIDFormats(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "large number", body: `{"id": 123456789012345678, "phone": "+7999"}`, want: "123456789012345678"},
		{name: "string", body: `{"id": "abc-1", "phone": "+7999"}`, want: "abc-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			lease, err := fivesim.NewClient(srv.URL, slog.Default()).AcquireNumber(t.Context(), testCredential(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, lease.ExternalID())
		})
	}
}

func TestAcquireNumberFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{name: "http error", status: http.StatusBadRequest, body: `not enough user balance`, errMsg: "fivesim: error 400"},
		{name: "plain text 200", status: http.StatusOK, body: `no free phones`, errMsg: "no free phones"},
		{name: "missing phone", status: http.StatusOK, body: `{"id": 1}`, errMsg: "phoneNumber"},
		{name: "missing id", status: http.StatusOK, body: `{"phone": "+7999"}`, errMsg: "externalID"},
		{name: "bad id type", status: http.StatusOK, body: `{"id": {}, "phone": "+7999"}`, errMsg: "parse response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := fivesim.NewClient(srv.URL, slog.Default()).AcquireNumber(t.Context(), testCredential(t))
			require.ErrorIs(t, err, ports.ErrProviderUnavailable)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestAcquireNumberNetworkError(t *testing.T) {
	c := fivesim.NewClient("http://127.0.0.1:1", slog.Default())
	_, err := c.AcquireNumber(t.Context(), testCredential(t))
	require.ErrorIs(t, err, ports.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "fivesim: send request:")
}

func TestAcquireNumberTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := fivesim.NewClient(srv.URL, slog.Default(), fivesim.WithTimeouts(50*time.Millisecond, 0))
	start := time.Now()
	_, err := c.AcquireNumber(t.Context(), testCredential(t))
	require.ErrorIs(t, err, ports.ErrProviderUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestCheckCode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "no sms yet", body: `{"id": 555, "status": "RECEIVED", "sms": []}`, want: ""},
		{name: "sms null", body: `{"id": 555, "sms": null}`, want: ""},
		{name: "first code wins", body: `{"sms": [{"code": "4821"}, {"code": "9999"}]}`, want: "4821"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/user/check/555", r.URL.Path)
				assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
				_, _ = w.Write([]byte(tt.body))
			})

			code, err := fivesim.NewClient(srv.URL, slog.Default()).CheckCode(t.Context(), testCredential(t), "555")
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestCheckCodeFailures(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>Bad Gateway</html>`))
	})
	c := fivesim.NewClient(srv.URL, slog.Default())

	_, err := c.CheckCode(t.Context(), testCredential(t), "555")
	require.ErrorIs(t, err, ports.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "fivesim: error 502")

	_, err = c.CheckCode(t.Context(), testCredential(t), " ")
	require.ErrorIs(t, err, ports.ErrProviderUnavailable)
}

func TestClientRecordsMetrics(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/user/check/1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"id": 1, "phone": "+7999"}`))
	})

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	c := fivesim.NewClient(srv.URL, slog.Default(), fivesim.WithMetrics(m))
	_, err = c.AcquireNumber(t.Context(), testCredential(t))
	require.NoError(t, err)
	_, err = c.CheckCode(t.Context(), testCredential(t), "1")
	require.Error(t, err)

	count, err := testutil.GatherAndCount(reg, "activation_provider_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestClientImplementsInterface(t *testing.T) {
	var _ ports.ProviderClient = (*fivesim.Client)(nil)
}
