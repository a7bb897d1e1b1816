package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	_ "github.com/akolanti/PaperChat/cmd/api/docs"
	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/middleware"
	"github.com/akolanti/PaperChat/internal/worker"
	"github.com/akolanti/PaperChat/pkg/logger_i"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/http-swagger"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	Turns            *worker.Pool
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      NewRouter(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

// NewRouter serves the API next to the metrics scrape and swagger docs.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	RegisterRoutes(r)
	return r
}

func RegisterRoutes(r chi.Router) {
	r.Get("/health", middleware.GetHandler)

	r.Get("/models", middleware.ListModelsHandler)
	r.Get("/preferences", middleware.GetPreferencesHandler)
	r.Put("/preferences", middleware.PutPreferencesHandler)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", middleware.ListDocumentsHandler)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/reindex", middleware.ReindexHandler)
			r.Post("/synthesize", middleware.SynthesizeHandler)

			r.Post("/chat", middleware.ToggleChatHandler)
			r.Post("/chat/close", middleware.CloseChatHandler)
			r.Put("/chat/geometry", middleware.MoveChatHandler)
			r.Post("/chat/messages", middleware.SendMessageHandler)
			r.Get("/chat/messages", middleware.TranscriptHandler)

			r.Get("/session", middleware.GetSessionHandler)
			r.Delete("/session", middleware.ClearSessionHandler)
		})
	})
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		//in-flight turns finish before their workers exit
		shutdownParams.Turns.Stop()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Graceful shutdown complete")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
