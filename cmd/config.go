package cmd

import "time"

// Config holds all runtime settings, populated from the environment in main.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaBrokers           []string
	KafkaConsumerGroup     string
	OrderCreatedTopic      string
	PaymentCompletedTopic  string
	PaymentFailedTopic     string
	DeliveryStartedTopic   string
	DeliveryCompletedTopic string
	ConsumerMaxAttempts    int

	StaleShipmentThreshold time.Duration
}
