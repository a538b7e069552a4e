package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"delivery/cmd"
	delivery_http "delivery/internal/adapters/in/http"
	in_kafka "delivery/internal/adapters/in/kafka"
	out_kafka "delivery/internal/adapters/out/kafka"
	"delivery/internal/adapters/out/postgres/deliveryrepo"
	"delivery/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs(logger)

	db := mustOpenDatabase(configs, logger)

	publisher, err := out_kafka.NewPublisher(
		configs.KafkaBrokers, configs.DeliveryStartedTopic, configs.DeliveryCompletedTopic)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	root := cmd.NewCompositionRoot(db, publisher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	consumers := startConsumers(ctx, &wg, configs, &root, logger, stop)
	defer func() {
		for _, c := range consumers {
			_ = c.Close()
		}
	}()

	jobManager := jobs.NewJobManager(
		root.CreateGetDeliveriesByStatusQueryHandler(), configs.StaleShipmentThreshold, logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	e := buildWebServer(&root)
	go func() {
		if err := e.Start("0.0.0.0:" + configs.HTTPPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("web server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, draining")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func mustOpenDatabase(configs cmd.Config, logger *slog.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&deliveryrepo.DeliveryDTO{}); err != nil {
		logger.Error("failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	return db
}

// startConsumers launches one consumer group member per inbound topic. Each
// topic gets its own group so a stalled topic cannot block the others.
func startConsumers(
	ctx context.Context,
	wg *sync.WaitGroup,
	configs cmd.Config,
	root *cmd.CompositionRoot,
	logger *slog.Logger,
	stop context.CancelFunc,
) []*in_kafka.Consumer {
	deadLetters, err := in_kafka.NewDeadLetterQueue(configs.KafkaBrokers)
	if err != nil {
		logger.Error("failed to create dead letter queue", "error", err)
		os.Exit(1)
	}

	createDelivery := root.CreateCreateDeliveryCommandHandler()
	startDelivery := root.CreateStartDeliveryCommandHandler()
	cancelDelivery := root.CreateCancelDeliveryCommandHandler()

	bindings := []struct {
		topic   string
		handler in_kafka.MessageHandler
	}{
		{configs.OrderCreatedTopic, in_kafka.NewOrderCreatedHandler(&createDelivery, logger)},
		{configs.PaymentCompletedTopic, in_kafka.NewPaymentCompletedHandler(&startDelivery, logger)},
		{configs.PaymentFailedTopic, in_kafka.NewPaymentFailedHandler(&cancelDelivery, logger)},
	}

	consumers := make([]*in_kafka.Consumer, 0, len(bindings))
	for _, b := range bindings {
		groupID := configs.KafkaConsumerGroup + "." + b.topic
		consumer, err := in_kafka.NewConsumer(
			configs.KafkaBrokers, groupID, b.topic, b.handler,
			deadLetters, configs.ConsumerMaxAttempts, logger)
		if err != nil {
			logger.Error("failed to create consumer", "topic", b.topic, "error", err)
			os.Exit(1)
		}
		consumers = append(consumers, consumer)

		wg.Add(1)
		go func(topic string, c *in_kafka.Consumer) {
			defer wg.Done()
			if err := c.Run(ctx); err != nil {
				logger.Error("consumer stopped with error", "topic", topic, "error", err)
				stop()
			}
		}(b.topic, consumer)
	}

	return consumers
}

func buildWebServer(root *cmd.CompositionRoot) *echo.Echo {
	createDelivery := root.CreateCreateDeliveryCommandHandler()
	startDelivery := root.CreateStartDeliveryCommandHandler()
	completeDelivery := root.CreateCompleteDeliveryCommandHandler()
	updateAddress := root.CreateUpdateAddressCommandHandler()
	updateTracking := root.CreateUpdateTrackingCommandHandler()

	server := delivery_http.NewServer(
		&createDelivery,
		&startDelivery,
		&completeDelivery,
		&updateAddress,
		&updateTracking,
		root.CreateGetDeliveryByOrderIDQueryHandler(),
		root.CreateGetDeliveriesByStatusQueryHandler(),
	)

	e := echo.New()
	e.HideBanner = true
	server.RegisterRoutes(e)
	return e
}

func getConfigs(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("no .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:               envOrDefault("HTTP_PORT", "8083"),
		DBHost:                 envOrDefault("DB_HOST", "localhost"),
		DBPort:                 envOrDefault("DB_PORT", "5432"),
		DBUser:                 envOrDefault("DB_USER", "postgres"),
		DBPassword:             envOrDefault("DB_PASSWORD", "postgres"),
		DBName:                 envOrDefault("DB_NAME", "delivery"),
		DBSslMode:              envOrDefault("DB_SSLMODE", "disable"),
		KafkaBrokers:           strings.Split(envOrDefault("KAFKA_BROKERS", "localhost:9092"), ","),
		KafkaConsumerGroup:     envOrDefault("KAFKA_CONSUMER_GROUP", "delivery-service"),
		OrderCreatedTopic:      envOrDefault("KAFKA_ORDER_CREATED_TOPIC", "order.created"),
		PaymentCompletedTopic:  envOrDefault("KAFKA_PAYMENT_COMPLETED_TOPIC", "payment.completed"),
		PaymentFailedTopic:     envOrDefault("KAFKA_PAYMENT_FAILED_TOPIC", "payment.failed"),
		DeliveryStartedTopic:   envOrDefault("KAFKA_DELIVERY_STARTED_TOPIC", "delivery.started"),
		DeliveryCompletedTopic: envOrDefault("KAFKA_DELIVERY_COMPLETED_TOPIC", "delivery.completed"),
		ConsumerMaxAttempts:    envIntOrDefault("KAFKA_CONSUMER_MAX_ATTEMPTS", 3),
		StaleShipmentThreshold: envDurationOrDefault("STALE_SHIPMENT_THRESHOLD", 30*time.Minute),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
