package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gorilla/sessions"

	"github.com/angas/pv-revenue-go/config"
	"github.com/angas/pv-revenue-go/database"
	"github.com/angas/pv-revenue-go/dataset"
	"github.com/angas/pv-revenue-go/report"
)

type Server struct {
	logger   *slog.Logger
	config   config.AppConfigServer
	db       *database.Database
	projects *dataset.Store
	builder  *report.Builder
	sessions *sessions.CookieStore
	tm       *TemplateManager
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(db *database.Database, projects *dataset.Store, builder *report.Builder, config config.AppConfigServer) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, config.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger:   logger,
		config:   config,
		db:       db,
		projects: projects,
		builder:  builder,
		sessions: newSessionStore(config.SessionSecret),
		tm:       tm,
	}

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", staticFilesHandler(config.WwwDir))

	http.Handle("/results", logReqMW(NewResultsHandler(
		logger.With(slog.String("handler", "results")),
		s.projects,
		s.builder,
		s.tm)))

	http.Handle("/upload", logReqMW(NewUploadHandler(
		logger.With(slog.String("handler", "upload")),
		s.projects,
		s)))

	http.Handle("/monthly", logReqMW(NewMonthlyHandler(
		logger.With(slog.String("handler", "monthly")),
		s.projects,
		s.builder,
		s.tm,
		s)))

	http.Handle("/chart", logReqMW(NewChartHandler(
		logger.With(slog.String("handler", "chart")),
		s.projects,
		s.builder)))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.db,
		s.tm)))

	return s
}

func (s *Server) Run(ctx context.Context) {
	addr := fmt.Sprintf("%s:%d", s.config.Address, s.config.GetPort())
	s.logger.Info("starting server...", "addr", addr)
	srv := &http.Server{
		Addr: addr,
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-srvErrors:
			if err != nil && err != http.ErrServerClosed {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
