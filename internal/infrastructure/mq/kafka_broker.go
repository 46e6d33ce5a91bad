// This file implements the Kafka broker for multi-instance deployments,
// where every instance must see events published by its peers.
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"your_chores_server/internal/config"
	"your_chores_server/pkg/constants"
)

// KafkaBroker publishes events to a Kafka topic and consumes the same
// topic back into the local event stream, so pushes reach users
// connected to any instance.
type KafkaBroker struct {
	producer *kafka.Writer
	consumer *kafka.Reader
	events   chan *Event
	cancel   context.CancelFunc
}

// NewKafkaBroker connects to Kafka and starts the consume loop.
func NewKafkaBroker() *KafkaBroker {
	kafkaConfig := config.GetConfig().KafkaConfig

	b := &KafkaBroker{
		producer: &kafka.Writer{
			Addr:                   kafka.TCP(kafkaConfig.HostPort),
			Topic:                  kafkaConfig.EventTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           kafkaConfig.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{kafkaConfig.HostPort},
			Topic:          kafkaConfig.EventTopic,
			CommitInterval: kafkaConfig.Timeout * time.Second,
			GroupID:        "your_chores_events",
			StartOffset:    kafka.LastOffset,
		}),
		events: make(chan *Event, constants.CHANNEL_SIZE),
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go b.consumeLoop(ctx)

	zap.L().Info("kafka event broker started",
		zap.String("broker", kafkaConfig.HostPort),
		zap.String("topic", kafkaConfig.EventTopic))
	return b
}

// Publish serializes the event and writes it to the topic, keyed by
// room so events of one room stay ordered.
func (b *KafkaBroker) Publish(event *Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	key := []byte(strconv.FormatUint(uint64(event.RoomId), 10))
	return b.producer.WriteMessages(context.Background(), kafka.Message{
		Key:   key,
		Value: value,
	})
}

func (b *KafkaBroker) Events() <-chan *Event {
	return b.events
}

// consumeLoop reads the topic and feeds decoded events to the local
// stream until the broker is closed.
func (b *KafkaBroker) consumeLoop(ctx context.Context) {
	for {
		message, err := b.consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			zap.L().Error("kafka read message", zap.Error(err))
			continue
		}
		var event Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			zap.L().Error("kafka decode event", zap.Error(err))
			continue
		}
		select {
		case b.events <- &event:
		default:
			zap.L().Warn("event channel full, dropping event",
				zap.String("type", string(event.Type)))
		}
	}
}

func (b *KafkaBroker) Close() error {
	b.cancel()
	if err := b.producer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	if err := b.consumer.Close(); err != nil {
		zap.L().Error(err.Error())
	}
	close(b.events)
	return nil
}
