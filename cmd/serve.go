package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"quadro-expedicao.com/quadro-expedicao/internal/audit"
	config "quadro-expedicao.com/quadro-expedicao/internal/configs"
	httpapi "quadro-expedicao.com/quadro-expedicao/internal/http"
	"quadro-expedicao.com/quadro-expedicao/internal/notifier"
	"quadro-expedicao.com/quadro-expedicao/internal/queue"
	repository "quadro-expedicao.com/quadro-expedicao/internal/repositories"
	"quadro-expedicao.com/quadro-expedicao/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the warehouse picking and receiving workflow API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.New(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		pickingRepo := repository.NewPickingRepository(database)
		verificationRepo := repository.NewVerificationRepository(database)
		workerRepo := repository.NewWorkerRepository(database)
		trashRepo := repository.NewTrashRepository(database)
		auditRepo := repository.NewAuditRepository(database)

		recorder := audit.NewRecorder(auditRepo)
		workerQueue := queue.NewSQLWorkerQueue(database)

		dispatcher := notifier.NewDispatcher(
			notifier.NewRedisSender(redisClient, cfg.NotifyKeyPrefix),
			cfg.NotifyWorkers,
			cfg.NotifyQueueSize,
		)

		pickingService := services.NewPickingService(database, pickingRepo, trashRepo, workerRepo, workerQueue, recorder, dispatcher)
		verificationService := services.NewVerificationService(database, verificationRepo, trashRepo, workerRepo, recorder, dispatcher)
		queueService := services.NewQueueService(workerQueue, workerRepo)
		trashService := services.NewTrashService(database, trashRepo, pickingRepo, verificationRepo, recorder)

		e := echo.New()
		handler := httpapi.NewHandler(pickingService, verificationService, queueService, trashService, recorder)
		httpapi.Register(e, handler, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		dispatcher.Shutdown(ctx)

		log.Println("HTTP server and notifier shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
