package main

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
)

const timeout time.Duration = 10 * time.Second

func securityHeaders(cfg *Config, w http.ResponseWriter) {
	w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
	w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Set("Cross-Origin-Resource-Policy", "same-site")
	w.Header().Set("Permissions-Policy", "geolocation=(), midi=(), sync-xhr=(), microphone=(), camera=(), magnetometer=(), gyroscope=(), fullscreen=(), payment=()")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'self'")

	if cfg.scheme() == "https" {
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
	}
}

func realIP(r *http.Request) string {
	host, port, _ := net.SplitHostPort(r.RemoteAddr)
	if ip := r.Header.Get("CF-Connecting-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	} else if ip := r.Header.Get("X-Real-IP"); ip != "" {
		if net.ParseIP(ip) != nil {
			host = ip
		}
	}
	if net.ParseIP(host) != nil && strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port != "" {
		return host + ":" + port
	}
	return host
}

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return strconv.FormatInt(bytes, 10) + " B"
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(bytes)/float64(div), 'f', 1, 64) + " " + string("kMGTPE"[exp]) + "B"
}

func serveVersion(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusOK)

		written, err := w.Write([]byte("emojiparty v" + releaseVersion + "\n"))
		if err != nil {
			log.Error().Err(err).Msg("version write failed")
			return
		}

		log.Debug().
			Str("size", humanReadableSize(int64(written))).
			Str("remote", realIP(r)).
			Dur("took", time.Since(startTime).Round(time.Microsecond)).
			Msg("served version page")
	}
}

func ServePage(ctx context.Context, cfg *Config) error {
	log.Info().Str("version", releaseVersion).Msg("starting emojiparty")

	catalog := newCatalog()
	rooms := newRegistry()
	sessions := newSessionIndex()
	gateway := newGateway(sessions)
	dispatcher := newDispatcher(cfg, catalog, rooms, sessions, gateway)
	dispatcher.StartReaper(ctx)

	mux := httprouter.New()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           mux,
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
	}

	mux.PanicHandler = func(w http.ResponseWriter, r *http.Request, i any) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusInternalServerError)

		io.WriteString(w, newPage("Server Error", "An error has occurred. Please try again."))
	}

	cfg.prefix = strings.TrimSuffix(cfg.prefix, "/")

	mux.GET(cfg.prefix+"/", serveHomePage(cfg))

	mux.GET(cfg.prefix+"/healthz", serveHealthCheck(cfg))

	mux.GET(cfg.prefix+"/robots.txt", serveRobots(cfg))

	mux.GET(cfg.prefix+"/version", serveVersion(cfg))

	if cfg.profile {
		for _, profile := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
			mux.Handler("GET", cfg.prefix+"/pprof/"+profile, pprof.Handler(profile))
		}
		mux.HandlerFunc("GET", cfg.prefix+"/pprof/cmdline", pprof.Cmdline)
		mux.HandlerFunc("GET", cfg.prefix+"/pprof/profile", pprof.Profile)
		mux.HandlerFunc("GET", cfg.prefix+"/pprof/symbol", pprof.Symbol)
		mux.HandlerFunc("GET", cfg.prefix+"/pprof/trace", pprof.Trace)
	}

	registerGame(cfg, dispatcher, mux)

	go func() {
		var err error
		log.Info().Str("url", cfg.scheme()+"://"+srv.Addr+cfg.prefix+"/").Msg("listening")
		if cfg.tlsKey != "" && cfg.tlsCert != "" {
			err = srv.ListenAndServeTLS(cfg.tlsCert, cfg.tlsKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	log.Info().Msg("shut down")

	return nil
}
