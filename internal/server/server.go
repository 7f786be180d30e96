package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-dualclock/internal/config"
)

var snapshotRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: config.MetricSnapshots,
	Help: config.MetricSnapshotHelp,
}, []string{config.MetricLabelCode})

var indexPage = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { margin: 0; display: flex; align-items: center; justify-content: center; height: 100vh; background: #fbfaf5; }
img { width: min(90vw, 90vh); height: min(90vw, 90vh); }
</style>
</head>
<body>
<img id="face" src="{{.Route}}" alt="{{.Title}}">
<script>
setInterval(function () {
  document.getElementById("face").src = "{{.Route}}?t=" + Date.now();
}, {{.IntervalMS}});
</script>
</body>
</html>
`))

// snapshot stores the encoded face and its ETag.
type snapshot struct {
	data []byte
	etag string
}

// FaceServer serves the latest rendered clock face over HTTP.
type FaceServer struct {
	// Written once per tick, read by every request.
	cache atomic.Pointer[snapshot]
	title atomic.Pointer[string]
	Port  string
}

// NewFaceServer creates a new instance of the server.
func NewFaceServer(port, title string) *FaceServer {
	s := &FaceServer{Port: port}
	s.SetTitle(title)
	return s
}

// SetTitle changes the page title. Safe to call while serving.
func (s *FaceServer) SetTitle(title string) {
	s.title.Store(&title)
}

// Title returns the current page title.
func (s *FaceServer) Title() string {
	if t := s.title.Load(); t != nil {
		return *t
	}
	return ""
}

// ValidatePort checks that port is a usable TCP port number ("0" picks a free one).
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(config.ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil || (n != 0 && (n < config.MinPort || n > config.MaxPort)) {
		return fmt.Errorf("%s: %q", config.ErrPortRange, port)
	}
	return nil
}

// Handler returns the routes served by the snapshot server.
func (s *FaceServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleIndex)
	mux.HandleFunc(config.RouteFace, s.handleFace)
	mux.Handle(config.RouteMetrics, promhttp.Handler())
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FaceServer) Start(ctx context.Context) error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update encodes img as PNG and atomically replaces the served snapshot.
func (s *FaceServer) Update(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%s: %w", config.ErrPNGEncode, err)
	}
	data := buf.Bytes()

	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.cache.Store(&snapshot{data: data, etag: etag})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
	return nil
}

func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}

// handleIndex serves the page that reloads the face once per tick.
func (s *FaceServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteRoot {
		http.NotFound(w, r)
		return
	}
	if !allowRead(w, r) {
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextHTML)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)

	data := struct {
		Title      string
		Route      string
		IntervalMS int64
	}{
		Title:      s.Title(),
		Route:      config.RouteFace,
		IntervalMS: config.TickInterval.Milliseconds(),
	}
	if err := indexPage.Execute(w, data); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// handleFace serves the PNG snapshot with ETag support.
func (s *FaceServer) handleFace(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		snapshotRequests.WithLabelValues(strconv.Itoa(http.StatusMethodNotAllowed)).Inc()
		return
	}

	item := s.cache.Load()
	if item == nil {
		snapshotRequests.WithLabelValues(strconv.Itoa(http.StatusServiceUnavailable)).Inc()
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeImagePNG)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNo)
	w.Header().Set(config.HeaderETag, item.etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		snapshotRequests.WithLabelValues(strconv.Itoa(http.StatusNotModified)).Inc()
		w.WriteHeader(http.StatusNotModified)
		return
	}

	snapshotRequests.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
