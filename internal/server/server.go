package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-wareki/internal/config"
	"github.com/tartampluch/go-wareki/internal/engine"
	"github.com/tartampluch/go-wareki/internal/locale"
	"github.com/tartampluch/go-wareki/internal/wareki"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// Server exposes the era calendar feed and the JSON conversion API on
// the loopback interface.
type Server struct {
	// cache is swapped atomically by Update; handlers never lock.
	cache atomic.Pointer[cacheItem]

	Port       string
	Clock      wareki.Clock
	Translator *locale.Translator

	// FoldWidth folds full-width digits in query values before parsing.
	FoldWidth bool
}

// New creates a Server. tr is the default language when a request carries
// no usable Accept-Language header.
func New(port string, tr *locale.Translator) *Server {
	if tr == nil {
		tr = locale.New(config.DefaultLanguage)
	}
	return &Server{
		Port:       port,
		Clock:      wareki.RealClock{},
		Translator: tr,
	}
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)
	mux.HandleFunc(config.RouteToEra, s.handleToEra)
	mux.HandleFunc(config.RouteToWest, s.handleToWestern)
	mux.HandleFunc(config.RouteValidate, s.handleValidate)
	mux.HandleFunc(config.RouteInfo, s.handleInfo)
	mux.HandleFunc(config.RouteEras, s.handleEras)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Refresh rebuilds the era calendar in the default language and stores it.
func (s *Server) Refresh() error {
	b := &engine.CalendarBuilder{
		Clock:             s.Clock,
		Name:              s.Translator.CalendarName(),
		FormatSummary:     s.Translator.EraStartSummary,
		FormatDescription: s.Translator.EraRangeDescription,
	}
	data, err := b.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrCalendarGen, err)
	}
	s.Update(data)
	return nil
}

// RunRefresher rebuilds the calendar immediately and then on every tick
// until ctx is cancelled. A failed rebuild keeps the previous content.
func (s *Server) RunRefresher(ctx context.Context, interval time.Duration) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	log.Info(config.MsgRefreshStart, config.LogKeyInterval, interval.String())

	refresh := func() {
		if err := s.Refresh(); err != nil {
			log.Error(config.ErrCalendarGen, config.LogKeyError, err)
		}
	}
	refresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgRefreshStop)
			return
		case <-ticker.C:
			refresh()
		}
	}
}

// Update atomically replaces the served calendar.
func (s *Server) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *Server) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if !allowRead(w, r) {
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// notModified evaluates If-None-Match first, then If-Modified-Since.
func notModified(r *http.Request, item *cacheItem) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}

// allowRead rejects anything but GET and HEAD with 405.
func allowRead(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}
