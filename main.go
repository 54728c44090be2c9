package main

import (
	"context"
	"log"
	"strings"

	"payments-gateway/aws"
	"payments-gateway/config"
	"payments-gateway/controllers"
	"payments-gateway/database"
	"payments-gateway/kafka"
	"payments-gateway/logger"
	"payments-gateway/middleware"
	"payments-gateway/models"
	"payments-gateway/repository"
	"payments-gateway/routes"
	"payments-gateway/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("[PaymentsGateway] ❌ Failed to load config:", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("[PaymentsGateway] ❌ Failed to initialize logger:", err)
	}
	defer zl.Sync()

	// Audit store is optional: skipped entirely when Postgres is not configured.
	var repo repository.PaymentRecordRepository
	if cfg.AuditEnabled() {
		db, err := database.ConnectPostgres(cfg, zl, &models.PaymentRecord{})
		if err != nil {
			log.Fatal("[PaymentsGateway] ❌ Failed to connect to DB:", err)
		}
		repo = repository.NewGormPaymentRecordRepo(db)
	} else {
		zl.Info("Payment audit store disabled (POSTGRES_HOST not set)")
	}

	stripeSvc := services.NewStripeService(
		cfg.StripeSecretKey,
		cfg.StripeWebhookSecret,
		cfg.StripeSuccessURL,
		cfg.StripeCancelURL,
	)

	var publisher services.EventPublisher
	eventsTopic := cfg.PaymentEventsTopic
	switch cfg.EventBus {
	case "sns":
		awsCfg, err := aws.LoadConfig(context.Background())
		if err != nil {
			log.Fatal("[PaymentsGateway] ❌ Failed to load AWS config:", err)
		}
		snsPublisher := aws.NewSNSEventPublisher(awsCfg, zl)
		defer snsPublisher.Close()
		publisher = snsPublisher
		eventsTopic = cfg.PaymentSNSTopicARN
	default:
		producer := kafka.NewPaymentEventProducer(strings.Split(cfg.KafkaBrokers, ","), zl)
		defer producer.Close()
		publisher = producer
	}

	// Session requests can also arrive over the bus (in addition to HTTP).
	if cfg.EventBus == "kafka" {
		consumer := services.NewSessionRequestConsumer(
			strings.Split(cfg.KafkaBrokers, ","),
			cfg.SessionRequestTopic,
			cfg.ConsumerGroupID,
			cfg.SessionEventsTopic,
			stripeSvc,
			publisher,
			repo,
			zl,
		)
		defer consumer.Close()
		go consumer.Start(context.Background())
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zl))

	pc := &controllers.PaymentController{
		Processor:   stripeSvc,
		Publisher:   publisher,
		Repo:        repo,
		Logger:      zl,
		EventsTopic: eventsTopic,
	}
	routes.RegisterPaymentRoutes(r, pc)

	zl.Info("Payments gateway running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[PaymentsGateway] ❌ Server failed:", err)
	}
}
