package protocal

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"line-webhook-gateway/configs"
	httpAdapter "line-webhook-gateway/internal/adapters/input/http"
	"line-webhook-gateway/internal/adapters/output/memory"
	"line-webhook-gateway/internal/adapters/output/postgres"
	"line-webhook-gateway/internal/adapters/output/processor"
	redisAdapter "line-webhook-gateway/internal/adapters/output/redis"
	"line-webhook-gateway/internal/application"
	"line-webhook-gateway/internal/ports/output"
	"line-webhook-gateway/pkg/database_driver/gorm"
)

type config struct {
	ENV string `mapstructure:"env"`
}

// ServeHTTP func
func ServeHTTP() error {
	app := fiber.New()
	var cfg config
	flag.StringVar(&cfg.ENV, "env", "", "the environment to use")
	flag.Parse()
	configs.InitViper("./configs", cfg.ENV)
	logrus.Info(configs.GetViper().Env)
	if err := configs.GetViper().ValidateProductionSecrets(); err != nil {
		logrus.Fatalln(err)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept,Authorization",
	}))
	dbConGorm, err := gorm.ConnectToPostgreSQL(
		configs.GetViper().Postgres.Host,
		configs.GetViper().Postgres.Port,
		configs.GetViper().Postgres.Username,
		configs.GetViper().Postgres.Password,
		configs.GetViper().Postgres.DbName,
		configs.GetViper().Postgres.SSLMode,
	)
	if err != nil {
		return err
	}

	// Wire up the hexagonal architecture layers
	// Output adapter (repository)
	eventRepo := postgres.NewEventRepository(dbConGorm.Postgres)

	// Optional signature result cache (Redis when configured, in-memory otherwise)
	var sigCache output.SignatureCache
	if configs.GetViper().Webhook.CacheValidate {
		if configs.GetViper().Redis.Host != "" {
			sigCache = redisAdapter.NewSignatureCache(
				configs.GetViper().Redis.Host,
				configs.GetViper().Redis.Port,
				configs.GetViper().Redis.Password,
				configs.GetViper().Redis.DB,
			)
		} else {
			sigCache = memory.NewMemorySignatureCache()
		}
	}
	sigValidator := application.NewSignatureValidator(configs.GetViper().Line.ChannelSecret, sigCache)

	// Debounced downstream notification, only when enabled
	var notifier *application.BatchNotifier
	if configs.GetViper().Webhook.Notify {
		processorClient, err := processor.NewProcessorClientAdapter(configs.GetViper().Processor)
		if err != nil {
			logrus.Fatalf("Failed to create processor client: %v", err)
		}
		notifier = application.NewBatchNotifier(processorClient, application.BatchNotifierConfig{
			Channel:     configs.GetViper().Processor.Channel,
			APIKey:      configs.GetViper().Processor.APIKey,
			BatchLimit:  configs.GetViper().Processor.BatchLimit,
			Delay:       time.Duration(configs.GetViper().Processor.DebounceDelay) * time.Second,
			CallTimeout: time.Duration(configs.GetViper().Processor.Timeout) * time.Second,
		})
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		for range c {
			log.Println("Gracefull shut down ...")
			if notifier != nil {
				notifier.Stop()
			}
			gorm.DisconnectPostgres(dbConGorm.Postgres)
			err := app.Shutdown()
			if err != nil {
				log.Println("Error when shutdown server: ", err)
			}
		}
	}()

	// Application service (use case)
	var eventNotifier output.EventNotifier
	if notifier != nil {
		eventNotifier = notifier
	}
	webhookSrv := application.NewWebhookService(sigValidator, eventRepo, eventNotifier, application.WebhookServiceConfig{
		Channel: configs.GetViper().Processor.Channel,
		Persist: configs.GetViper().Webhook.Persist,
		Notify:  configs.GetViper().Webhook.Notify,
	})
	// Input adapters (HTTP handlers)
	webhookHdl := httpAdapter.NewWebhookHandler(webhookSrv)
	hdl := httpAdapter.New(dbConGorm.Postgres, notifier, httpAdapter.EnvStatus{
		Env:                configs.GetViper().App.Env,
		HasChannelSecret:   configs.GetViper().Line.ChannelSecret != "",
		HasProcessorAPIKey: configs.GetViper().Processor.APIKey != "",
	})
	monitoringHdl := httpAdapter.NewMonitoringHandler(eventRepo)

	app.Get("/health", hdl.HealthCheck)

	// LINE webhook endpoint; GET doubles as its health probe
	webhook := app.Group("/webhook")
	{
		webhook.Post("/line", webhookHdl.HandleWebhook)
		webhook.Get("/line", hdl.HealthCheck)
	}

	magnolia := app.Group("/v1/api")
	{
		magnolia.Get("/monitoring/status", monitoringHdl.Status)
	}

	err = app.Listen(":" + configs.GetViper().App.Port)
	if err != nil {
		return err
	}

	logrus.Println("Listerning on port: ", configs.GetViper().App.Port)
	return nil
}
