package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rating-dashboard/domain/rating"
	"rating-dashboard/domain/repository"
	"rating-dashboard/infrastructure/cache"
	"rating-dashboard/infrastructure/configuration"
	"rating-dashboard/infrastructure/logger"
	httpHandler "rating-dashboard/interfaces/http"
	"rating-dashboard/interfaces/web"
	"rating-dashboard/server"
	"rating-dashboard/usecase"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard and widget HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != 0 {
				configuration.C.App.Port = port
			}
			return serve(cmd.Context())
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides APP_PORT)")
	return cmd
}

// dashboardState picks redis when configured so replicas share sequence
// numbers, and in-process state otherwise.
func dashboardState(ctx context.Context) (repository.ISequencer, repository.IDashboardStore, func()) {
	redisConfig := configuration.C.RedisClient
	if redisConfig.Enabled() {
		client, err := cache.NewCache(ctx, redisConfig.Addr(), redisConfig.Username, redisConfig.Password)
		if err == nil {
			dashboardCache := cache.NewDashboardCache(client)
			return dashboardCache, dashboardCache, func() { _ = client.Close() }
		}
		logger.GetLogger().WithField("error", err).Warn("Redis not available - keeping dashboard state in memory")
	}
	return cache.NewMemorySequencer(), cache.NewMemoryDashboardStore(), func() {}
}

// newRouter wires the application; the returned func releases its
// connections.
func newRouter(ctx context.Context) (*gin.Engine, func()) {
	ratingService := newRatingService()
	sequencer, store, closeState := dashboardState(ctx)

	presenter := usecase.NewRatingPresenter(rating.NewFormatter(configuration.C.Dashboard.TimeZone))
	dashboardUseCase := usecase.NewDashboardUseCase(ratingService, sequencer, presenter, usecase.NewTableView(), usecase.NewModalView()).
		WithStore(store)
	if err := dashboardUseCase.Restore(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Starting with an empty dashboard")
	}
	widgetUseCase := usecase.NewWidgetUseCase(ratingService, presenter)

	router := server.InitiateRouter(server.Handlers{
		Dashboard: httpHandler.NewDashboardHandler(dashboardUseCase),
		Rating:    httpHandler.NewRatingHandler(ratingService),
		Widget:    httpHandler.NewWidgetHandler(widgetUseCase, configuration.C.Widget.PublicDir),
		Health:    httpHandler.NewHealthHandler(dashboardUseCase),
	}, web.MustTemplates(), configuration.C.CORS.AllowOrigins)
	return router, closeState
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	router, cleanup := newRouter(ctx)
	defer cleanup()

	app := configuration.C.App
	logger.GetLogger().WithFields(map[string]interface{}{
		"port":    app.Port,
		"tls":     app.TLSEnabled,
		"ratings": configuration.C.RatingAPI.BaseURL,
	}).Info("Starting application")

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		var err error
		if app.TLSEnabled && app.TLSCertFile != "" && app.TLSKeyFile != "" {
			logger.GetLogger().WithFields(map[string]interface{}{"cert": app.TLSCertFile, "key": app.TLSKeyFile}).Info("Serving HTTPS")
			err = httpServer.ListenAndServeTLS(app.TLSCertFile, app.TLSKeyFile)
		} else {
			if app.TLSEnabled {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
			}
			err = httpServer.ListenAndServe()
		}
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.GetLogger().Info("Application shutdown requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		return err
	}
	return nil
}
