package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomsched/config"
	"roomsched/database"
	decisionRepo "roomsched/database/repository/decision"
	"roomsched/handlers"
	"roomsched/routes"
	"roomsched/services/decision"
	"roomsched/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig(configFile)
		return serve()
	},
}

func serve() error {
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Audit store and cache are optional: decisions are pure and never need them.
	var repo decisionRepo.DecisionRepository
	if cfg.AuditEnabled {
		if err := database.InitDB(); err != nil {
			logger.Warn("serve: decision audit disabled", zap.Error(err))
		} else {
			repo = decisionRepo.NewMongoDecisionRepo()
			if err := repo.EnsureIndexes(context.Background()); err != nil {
				logger.Warn("serve: failed to ensure decision indexes", zap.Error(err))
			}
		}
	}

	var cache decision.DecisionCache
	if cfg.CacheEnabled {
		if err := utils.InitCache(); err != nil {
			logger.Warn("serve: decision cache disabled", zap.Error(err))
		} else {
			cache = decision.NewRedisDecisionCache(utils.GetCacheClient(), cfg.DecisionCacheTTL)
		}
	}

	svc, err := decision.NewDecisionService(cfg.TiePolicy, cache, repo, logger)
	if err != nil {
		return err
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, utils.GetCacheClient(), database.MongoClient)

	hb := handlers.NewHandlerBundle(handlers.NewDecisionHandler(svc, logger), cfg.JWTSecret)
	router := routes.NewRouter(hb, cfg.MaxRequestsPerMin, logger)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s (tie policy %s)...", srv.Addr, svc.PolicyName)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	logger.Sugar().Info("serve: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if client := utils.GetCacheClient(); client != nil {
		_ = client.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("serve: failed to close database", zap.Error(err))
	}

	logger.Sugar().Info("serve: server stopped gracefully")
	return nil
}
