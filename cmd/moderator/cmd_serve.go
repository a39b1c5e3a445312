package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VikasCh3108/AI-Moderation11/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type serveFlags struct {
	addr   string
	dbPath string
}

func newServeCmd(g *globalFlags) *cobra.Command {
	s := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve recorded runs over HTTP",
		Long: `Starts a read-only HTTP API over the run history database.

Routes:
  GET /health
  GET /api/v1/runs
  GET /api/v1/runs/:id
  GET /api/v1/runs/:id/comments[?offensive=true]
  GET /api/v1/runs/:id/export/csv
  GET /api/v1/stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, g, s)
		},
	}

	f := cmd.Flags()
	f.StringVar(&s.addr, "addr", "", "Listen address (default: server.addr from config, else :8080)")
	f.StringVar(&s.dbPath, "db", "", "Run history database (default: database.path from config)")

	return cmd
}

func runServe(cmd *cobra.Command, g *globalFlags, s *serveFlags) error {
	logger, err := newLogger(g.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadConfig(g.configPath)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if s.addr != "" {
		addr = s.addr
	}
	dbPath := cfg.Database.Path
	if s.dbPath != "" {
		dbPath = s.dbPath
	}
	if dbPath == "" {
		return fmt.Errorf("no run history database configured: set database.path or pass --db")
	}

	repo := openRepository(dbPath, logger)
	if repo == nil {
		return fmt.Errorf("failed to open run history %s", dbPath)
	}
	defer repo.Close()

	srv := &http.Server{
		Addr:    addr,
		Handler: newRouter(handler.NewHandler(repo, logger), g.verbose),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("address", addr), zap.String("db_path", dbPath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

func newRouter(h *handler.Handler, verbose bool) *gin.Engine {
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if verbose {
		router.Use(gin.Logger())
	}

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	h.RegisterRoutes(router)
	return router
}
