package commands

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"beach-review/driver"
	"beach-review/middleware"
	"beach-review/routes"
	"beach-review/store"
	"beach-review/utils"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		db, err := driver.ConnectDB(cfg)
		if err != nil {
			return err
		}
		defer driver.Close(db)
		if err := driver.Migrate(db); err != nil {
			return err
		}

		deps := routes.Deps{
			Store:    store.New(db),
			Sessions: utils.NewSessionManager(utils.NewTokens(cfg.Session.Secret, cfg.Session.Expiration), cfg.Session.CookieSecure),
			Signer:   utils.NewURLSigner(cfg.Session.Secret, cfg.Session.SignatureTTL),
			Metrics:  middleware.NewMetrics(),
			Strict:   cfg.Reviews.Strict,
		}

		if cfg.S3Enabled() {
			uploader, err := utils.NewS3Uploader(cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket)
			if err != nil {
				return err
			}
			deps.Uploader = uploader
			log.Infof("Review images go to s3://%s", cfg.S3.Bucket)
		}

		if cfg.Redis.Addr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
			defer rdb.Close()
			if err := rdb.Ping(cmd.Context()).Err(); err != nil {
				log.Warnf("Redis at %s unreachable, rate limiting fails open: %v", cfg.Redis.Addr, err)
			}
			deps.Limiter = middleware.NewRateLimiter(rdb, cfg.Redis.RateLimit, time.Minute)
		}

		if cfg.Reviews.Strict {
			log.Info("Strict review checks enabled")
		}

		srv := &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      routes.NewRouter(deps),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Server started on port %s", cfg.Server.Port)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
