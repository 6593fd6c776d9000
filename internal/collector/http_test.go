package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &paths
}

func TestHTTPFetcher_Success(t *testing.T) {
	srv, paths := newServer(t, http.StatusOK,
		`[{"datetime":"2002-01-02","close":1.7989},{"datetime":"2002-01-03","close":1.8012}]`)
	f := NewHTTPFetcher(srv.URL+"/", "", WithRateLimit(0))

	recs, err := f.FetchDaily(context.Background(), "GAUEUR")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, []string{"/gaueur"}, *paths)
	assert.Equal(t, time.Date(2002, 1, 2, 0, 0, 0, 0, time.UTC), recs[0].Date)
	assert.Equal(t, "1.7989", recs[0].Close.String())
	assert.Equal(t, "1.8012", recs[1].Close.String())
}

func TestHTTPFetcher_EmptyArray(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, ` [] `)
	recs, err := NewHTTPFetcher(srv.URL, "").FetchDaily(context.Background(), "GAUEUR")
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestHTTPFetcher_StatusErrors(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusTooManyRequests} {
		srv, _ := newServer(t, status, "upstream says no")
		_, err := NewHTTPFetcher(srv.URL, "").FetchDaily(context.Background(), "GAUEUR")

		var te *TransportError
		require.True(t, errors.As(err, &te), "status %d: %v", status, err)
		assert.Equal(t, status, te.StatusCode)
		assert.Equal(t, "upstream says no", te.Body)
	}
}

func TestHTTPFetcher_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html", "<html>gateway</html>"},
		{"object", `{"datetime":"2002-01-02","close":1}`},
		{"null", `null`},
		{"empty", ``},
		{"truncated", `[{"datetime":"2002-01-02","close":1.2}`},
		{"bad date", `[{"datetime":"02/01/2002","close":1.2}]`},
		{"missing date", `[{"close":1.2}]`},
		{"missing close", `[{"datetime":"2002-01-02"}]`},
		{"string close", `[{"datetime":"2002-01-02","close":"abc"}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusOK, tt.body)
			_, err := NewHTTPFetcher(srv.URL, "").FetchDaily(context.Background(), "GAUEUR")

			var me *MalformedPayloadError
			require.True(t, errors.As(err, &me), "got %v", err)
			var te *TransportError
			assert.False(t, errors.As(err, &te))
		})
	}
}

func TestHTTPFetcher_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(url, "", WithTimeout(time.Second)).FetchDaily(context.Background(), "GAUEUR")
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Zero(t, te.StatusCode)
	assert.Error(t, te.Err)
}

func TestHTTPFetcher_CancelledContext(t *testing.T) {
	srv, paths := newServer(t, http.StatusOK, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPFetcher(srv.URL, "").FetchDaily(ctx, "GAUEUR")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *paths)
}

func TestHTTPFetcher_URLFor(t *testing.T) {
	f := NewHTTPFetcher("https://example.test/", "http://127.0.0.1:3128")
	assert.Equal(t, "https://example.test/gauusd", f.URLFor("GAUUSD"))
	assert.Equal(t, "http", f.Name())
}

func TestPreview(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, preview(long), previewLen)
	assert.Equal(t, "short", preview([]byte("short")))
}

func TestMockFetcher(t *testing.T) {
	m := &MockFetcher{}
	_, err := m.FetchDaily(context.Background(), "GAUEUR")
	var te *TransportError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, 1, m.Calls("GAUEUR"))
	assert.Equal(t, 1, m.TotalCalls())
}

func TestHTTPFetcher_RateLimited(t *testing.T) {
	srv, paths := newServer(t, http.StatusOK, `[]`)
	f := NewHTTPFetcher(srv.URL, "", WithRateLimit(1))

	_, err := f.FetchDaily(context.Background(), "GAUEUR")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = f.FetchDaily(ctx, "GAUEUR")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Len(t, *paths, 1)
}

func TestHTTPFetcher_OversizedBody(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `[{"datetime":"2002-01-02","close":1.7989},{"datetime":"2002-01-03","close":1.8012}]`)
	f := NewHTTPFetcher(srv.URL, "", WithRateLimit(0))
	f.maxBody = 16

	_, err := f.FetchDaily(context.Background(), "GAUEUR")
	var me *MalformedPayloadError
	require.ErrorAs(t, err, &me)
	assert.ErrorIs(t, err, errBodyTooLarge)

	f.maxBody = MaxBodyBytes
	recs, err := f.FetchDaily(context.Background(), "GAUEUR")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
