package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/deskrota/internal/config"
	"github.com/jakechorley/deskrota/pkg/db"
)

const shutdownTimeout = 10 * time.Second

// Handler contains dependencies for the route handlers
type Handler struct {
	Store  db.Store
	Cfg    *config.Config
	Logger *zap.Logger

	// generateMu serializes stateful runs so two requests never read the same rotation cursor
	generateMu sync.Mutex
}

// NewHandler creates a Handler
func NewHandler(store db.Store, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Cfg: cfg, Logger: logger}
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(h.RequestLogger(), gin.Recovery())

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.POST("/plan", h.Plan)
		api.POST("/schedule", h.Schedule)
		api.GET("/days", h.ListDays)
		api.GET("/days/:date", h.GetDay)
		api.GET("/days/:date/plan", h.PlanDay)
		api.POST("/days/:date/generate", h.GenerateDay)
	}

	return r
}

// RequestLogger logs one line per request once it has been handled
func (h *Handler) RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			h.Logger.Error("Request failed", fields...)
			return
		}
		h.Logger.Debug("Request handled", fields...)
	}
}

// Serve runs the API on the configured port until ctx is cancelled, then
// shuts down gracefully
func Serve(ctx context.Context, h *Handler) error {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", h.Cfg.Server.Port),
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		h.Logger.Info("Starting server", zap.Int("port", h.Cfg.Server.Port))
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		h.Logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		h.Logger.Info("Server exited properly")
		return nil

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server exited with error: %w", err)
	}
}
