package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "skill-market.com/skill-market/internal/configs"
	"skill-market.com/skill-market/internal/events"
	httpapi "skill-market.com/skill-market/internal/http"
	"skill-market.com/skill-market/internal/locks"
	repository "skill-market.com/skill-market/internal/repositories"
	"skill-market.com/skill-market/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the skill marketplace HTTP API and the lifecycle event pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		database := config.NewDatabaseClient(cfg.DatabaseDriver, cfg.DatabaseDSN)

		lockTTL := time.Duration(cfg.TaskLockTTLSeconds) * time.Second
		var locker locks.TaskLocker = locks.NewMemoryTaskLocker()
		if cfg.RedisEnabled {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			locker = locks.NewRedisTaskLocker(redisClient, "skill_market:task_lock:", lockTTL)
		}

		var sink events.Sink = events.NewLogSink(nil)
		if len(cfg.KafkaBrokers) > 0 {
			sink = events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		}

		taskRepo := repository.NewTaskRepository(database)
		offerRepo := repository.NewOfferRepository(database)
		userRepo := repository.NewUserRepository(database)
		providerRepo := repository.NewProviderRepository(database)
		skillRepo := repository.NewSkillRepository(database)

		pool, err := services.NewEventPool(
			repository.NewEventRepository(database),
			sink,
			cfg.EventWorkers,
			cfg.EventQueueSize,
			time.Duration(cfg.EventRedeliverySeconds)*time.Second,
			cfg.EventRedeliveryBatchSize,
		)
		if err != nil {
			return err
		}

		handler := httpapi.NewHandler(
			services.NewTaskService(taskRepo, pool),
			services.NewOfferService(offerRepo, taskRepo, providerRepo, locker, lockTTL, pool),
			services.NewAuthService(userRepo, providerRepo, cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour),
			services.NewSkillService(skillRepo, providerRepo),
			database,
		)

		e := echo.New()
		e.HideBanner = true
		httpapi.Register(e, handler, cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(shutdownCtx)
		pool.Shutdown(shutdownCtx)

		log.Println("HTTP server and event pool shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
