package server

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-dualclock/internal/config"
)

// solid returns a small opaque image of the given colour.
func solid(c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// -----------------------------------------------------------------------------
// Unit Tests (White-Box Testing of Handler Logic)
// -----------------------------------------------------------------------------

// TestHandler_ServingContent verifies headers and that the body decodes as PNG.
func TestHandler_ServingContent(t *testing.T) {
	srv := NewFaceServer("0", "Clock")
	require.NoError(t, srv.Update(solid(color.White)))

	req := httptest.NewRequest(http.MethodGet, config.RouteFace, nil)
	w := httptest.NewRecorder()
	srv.handleFace(w, req)

	resp := w.Result()
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeImagePNG, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Equal(t, config.CacheControlNo, resp.Header.Get(config.HeaderCacheControl))
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	decoded, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), decoded.Bounds())
}

// TestHandler_Caching verifies that the server respects If-None-Match.
func TestHandler_Caching(t *testing.T) {
	srv := NewFaceServer("0", "Clock")
	require.NoError(t, srv.Update(solid(color.Black)))

	w1 := httptest.NewRecorder()
	srv.handleFace(w1, httptest.NewRequest(http.MethodGet, config.RouteFace, nil))
	etag := w1.Result().Header.Get(config.HeaderETag)
	require.NotEmpty(t, etag, "Server must provide an ETag")

	req2 := httptest.NewRequest(http.MethodGet, config.RouteFace, nil)
	req2.Header.Set(config.HeaderIfNoneMatch, etag)
	w2 := httptest.NewRecorder()
	srv.handleFace(w2, req2)

	resp2 := w2.Result()
	defer func() { _ = resp2.Body.Close() }()

	assert.Equal(t, http.StatusNotModified, resp2.StatusCode)
	body, _ := io.ReadAll(resp2.Body)
	assert.Empty(t, body, "Body must be empty on 304 Not Modified")

	// A new frame invalidates the ETag.
	require.NoError(t, srv.Update(solid(color.White)))
	w3 := httptest.NewRecorder()
	srv.handleFace(w3, req2)
	assert.Equal(t, http.StatusOK, w3.Code)
	assert.NotEqual(t, etag, w3.Header().Get(config.HeaderETag))
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := NewFaceServer("0", "Clock")

	for _, route := range []string{config.RouteRoot, config.RouteFace} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, route, nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, route)
		assert.Equal(t, config.AllowedMethods, w.Header().Get(config.HeaderAllow), route)
	}
}

// TestHandler_Initializing verifies the 503 behavior before the first tick.
func TestHandler_Initializing(t *testing.T) {
	srv := NewFaceServer("0", "Clock")

	w := httptest.NewRecorder()
	srv.handleFace(w, httptest.NewRequest(http.MethodGet, config.RouteFace, nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, config.RetryAfterSeconds, w.Header().Get(config.HeaderRetryAfter))
}

func TestHandler_IndexPage(t *testing.T) {
	srv := NewFaceServer("0", "Dual <Clock>")

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.MimeTextHTML, w.Header().Get(config.HeaderContentType))

	body := w.Body.String()
	assert.Contains(t, body, `src="/face.png"`)
	assert.Contains(t, body, "Dual &lt;Clock&gt;", "title must be escaped")
	assert.Contains(t, body, "1000")
}

func TestHandler_IndexPageFollowsTitleChange(t *testing.T) {
	srv := NewFaceServer("0", "Dual Clock")
	srv.SetTitle("Double horloge")
	assert.Equal(t, "Double horloge", srv.Title())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))
	assert.Contains(t, w.Body.String(), "<title>Double horloge</title>")
}

func TestHandler_UnknownPath(t *testing.T) {
	srv := NewFaceServer("0", "Clock")

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Metrics(t *testing.T) {
	srv := NewFaceServer("0", "Clock")
	srv.handleFace(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, config.RouteFace, nil))

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteMetrics, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), config.MetricSnapshots)
}

func TestValidatePort(t *testing.T) {
	tests := []struct {
		port    string
		wantErr bool
	}{
		{"0", false},
		{"1", false},
		{config.DefaultPort, false},
		{"65535", false},
		{"", true},
		{"65536", true},
		{"-1", true},
		{"http", true},
	}
	for _, tt := range tests {
		err := ValidatePort(tt.port)
		if tt.wantErr {
			assert.Error(t, err, tt.port)
		} else {
			assert.NoError(t, err, tt.port)
		}
	}
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition validates the thread-safety of atomic.Pointer usage.
// Run this with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := NewFaceServer("0", "Clock")
	var wg sync.WaitGroup

	end := time.Now().Add(300 * time.Millisecond)

	for w := 0; w < 3; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			i := 0
			for time.Now().Before(end) {
				_ = srv.Update(solid(color.Gray{Y: uint8(id*50 + i%50)}))
				i++
				time.Sleep(time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 10; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				w := httptest.NewRecorder()
				srv.handleFace(w, httptest.NewRequest(http.MethodGet, config.RouteFace, nil))

				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

func TestServer_Lifecycle(t *testing.T) {
	const port = "18098"

	srv := NewFaceServer(port, "Clock")
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + config.RouteFace

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	require.NoError(t, srv.Update(solid(color.White)))

	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(body))
	assert.NoError(t, err)

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_StartRejectsBadPort(t *testing.T) {
	srv := NewFaceServer("", "Clock")
	err := srv.Start(context.Background())
	assert.EqualError(t, err, config.ErrPortRequired)
}
