package kafka

import (
	"time"

	s "esbresolver/pkg/string"
)

// ProducerConfig holds configuration for the Kafka producer.
type ProducerConfig struct {
	Brokers         string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
}

// ConsumerConfig holds configuration for the Kafka consumer.
type ConsumerConfig struct {
	Brokers         string
	GroupID         string
	Topics          []string
	ResetToEarliest bool
}

// DefaultProducerConfig returns production defaults for the given brokers.
func DefaultProducerConfig(brokers string) ProducerConfig {
	return ProducerConfig{
		Brokers:         brokers,
		Acks:            "all",
		Retries:         3,
		DeliveryTimeout: 30 * time.Second,
	}
}

// DefaultConsumerConfig returns production defaults for the given group.
// Directory notifications are only useful while fresh, so new groups start at
// the latest offset.
func DefaultConsumerConfig(brokers, groupID string, topics ...string) ConsumerConfig {
	return ConsumerConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topics:  topics,
	}
}

// SeedBrokers splits a comma separated broker list.
func SeedBrokers(brokers string) []string {
	return s.SplitList(brokers)
}
