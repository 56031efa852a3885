package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/locale"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestServer() *Server {
	s := New("0", locale.New("ja"))
	s.Clock = fixedClock{t: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)}
	return s
}

// -----------------------------------------------------------------------------
// Calendar feed
// -----------------------------------------------------------------------------

func TestCalendar_ServingContent(t *testing.T) {
	srv := newTestServer()
	require.NoError(t, srv.Refresh())

	w := httptest.NewRecorder()
	srv.handleCalendarRequest(w, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UID:era-R@gowareki")
	assert.Contains(t, string(body), "DTSTART;VALUE=DATE:20190501")
	assert.Contains(t, string(body), "改元")
}

func TestCalendar_HeadHasNoBody(t *testing.T) {
	srv := newTestServer()
	srv.Update([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))

	w := httptest.NewRecorder()
	srv.handleCalendarRequest(w, httptest.NewRequest(http.MethodHead, config.RouteCalendar, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.Bytes())
	assert.NotEmpty(t, w.Header().Get(config.HeaderETag))
}

func TestCalendar_Conditional(t *testing.T) {
	srv := newTestServer()
	srv.Update([]byte("DATA_VERSION_1"))

	w1 := httptest.NewRecorder()
	srv.handleCalendarRequest(w1, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))
	etag := w1.Header().Get(config.HeaderETag)
	lastMod := w1.Header().Get(config.HeaderLastModified)
	require.NotEmpty(t, etag)
	require.NotEmpty(t, lastMod)

	t.Run("If-None-Match", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
		req.Header.Set(config.HeaderIfNoneMatch, etag)
		w := httptest.NewRecorder()
		srv.handleCalendarRequest(w, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("Stale ETag wins over date", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
		req.Header.Set(config.HeaderIfNoneMatch, `"stale"`)
		req.Header.Set(config.HeaderIfModifiedSince, lastMod)
		w := httptest.NewRecorder()
		srv.handleCalendarRequest(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("If-Modified-Since", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
		req.Header.Set(config.HeaderIfModifiedSince, lastMod)
		w := httptest.NewRecorder()
		srv.handleCalendarRequest(w, req)

		assert.Equal(t, http.StatusNotModified, w.Code)
	})

	t.Run("Content changed", func(t *testing.T) {
		srv.Update([]byte("DATA_VERSION_2"))
		req := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
		req.Header.Set(config.HeaderIfNoneMatch, etag)
		w := httptest.NewRecorder()
		srv.handleCalendarRequest(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "DATA_VERSION_2", w.Body.String())
	})
}

func TestCalendar_MethodNotAllowed(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	srv.handleCalendarRequest(w, httptest.NewRequest(http.MethodPost, config.RouteCalendar, nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, config.AllowedMethods, w.Header().Get(config.HeaderAllow))
}

func TestCalendar_Initializing(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	srv.handleCalendarRequest(w, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, config.RetryAfterSeconds, w.Header().Get(config.HeaderRetryAfter))
}

// -----------------------------------------------------------------------------
// Refresher
// -----------------------------------------------------------------------------

func TestRunRefresher(t *testing.T) {
	srv := newTestServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		srv.RunRefresher(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return srv.cache.Load() != nil
	}, 2*time.Second, 5*time.Millisecond, "first build happens before the first tick")

	first := srv.cache.Load()
	require.Eventually(t, func() bool {
		return srv.cache.Load() != first
	}, 2*time.Second, 5*time.Millisecond, "ticker rebuilds the calendar")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresher did not stop on cancellation")
	}
}

// -----------------------------------------------------------------------------
// Concurrency
// -----------------------------------------------------------------------------

// TestServer_RaceCondition stresses the atomic cache. Run with -race.
func TestServer_RaceCondition(t *testing.T) {
	srv := newTestServer()
	var wg sync.WaitGroup
	end := time.Now().Add(300 * time.Millisecond)

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; time.Now().Before(end); i++ {
				srv.Update([]byte(fmt.Sprintf("VERSION:%d-%d", id, i)))
				time.Sleep(time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 16; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				w := httptest.NewRecorder()
				srv.handleCalendarRequest(w, httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil))
				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("unexpected status during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

func TestServer_StartRejectsBadPort(t *testing.T) {
	for _, port := range []string{"", "abc", "70000"} {
		err := New(port, nil).Start(context.Background())
		assert.Error(t, err, port)
	}
}

func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	srv := New(port, locale.New("en"))
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	base := "http://127.0.0.1:" + port
	require.Eventually(t, func() bool {
		resp, err := http.Get(base + config.RouteCalendar)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "server failed to listen in time")

	resp, err := http.Get(base + config.RouteCalendar)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	require.NoError(t, srv.Refresh())

	resp, err = http.Get(base + config.RouteCalendar)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(string(body), "BEGIN:VCALENDAR"))

	resp, err = http.Get(base + config.RouteToEra + "?date=20190501")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server shutdown timed out")
	}
}
