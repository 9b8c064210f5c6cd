package api

import (
	"SchoolPick/internal/config"
	"SchoolPick/internal/http-server/handlers/ballot"
	"SchoolPick/internal/http-server/handlers/directions"
	errs "SchoolPick/internal/http-server/handlers/errors"
	"SchoolPick/internal/http-server/handlers/leaderboard"
	"SchoolPick/internal/http-server/handlers/school"
	"SchoolPick/internal/http-server/handlers/share"
	"SchoolPick/internal/http-server/handlers/votes"
	"SchoolPick/internal/http-server/middleware/timeout"
	"SchoolPick/internal/http-server/middleware/visitor"
	"SchoolPick/internal/lib/sl"
	"SchoolPick/internal/ws"
	"context"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const leaderboardPath = "/api/v1/leaderboard"

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	school.Core
	ballot.Core
	votes.Core
	leaderboard.Core
	directions.Core
	share.Core
}

// NewRouter builds the HTTP routes.
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(visitor.New(log, visitor.Options{
		CookieName: conf.Visitor.CookieName,
		MaxAge:     time.Duration(conf.Visitor.MaxAgeDays) * 24 * time.Hour,
		Secure:     conf.Visitor.Secure,
	}))

	router.NotFound(errs.NotFound(log))
	router.MethodNotAllowed(errs.NotAllowed(log))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	// The websocket outlives any request timeout.
	if hub != nil {
		router.Get(leaderboardPath+"/ws", leaderboard.Live(log, hub))
	}

	router.Group(func(r chi.Router) {
		r.Use(timeout.Timeout(conf.Listen.Timeout))
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Get("/api/directions", directions.Proxy(log, handler))

		r.Route("/api/v1", func(v1 chi.Router) {
			v1.Route("/schools", func(r chi.Router) {
				r.Get("/", school.ListSchools(log, handler))
				r.Get("/{code}", school.GetSchool(log, handler))
			})
			v1.Get("/reasons", school.ListReasons(log, handler))
			v1.Route("/ballot", func(r chi.Router) {
				r.Get("/", ballot.Status(log, handler))
				r.Post("/", ballot.Submit(log, handler))
				r.Delete("/", ballot.Reset(log, handler))
				r.Get("/form", ballot.Form(log, handler, leaderboardPath))
			})
			v1.Get("/votes/{bucket}", votes.Counts(log, handler))
			v1.Get("/leaderboard", leaderboard.Get(log, handler))
			v1.Get("/client-config", share.ClientConfig(log, handler))
			v1.Get("/share/qr", share.QR(log, handler))
		})
	})

	return router
}

// New serves the API until ctx is cancelled.
func New(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:           NewRouter(conf, log, handler, hub),
		ErrorLog:          httpLog,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.httpServer.Shutdown(shutdownCtx); err != nil {
			server.log.Error("shutdown", sl.Err(err))
		}
	}()

	err = server.httpServer.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
