// Package mq implements the cross-instance push relay over Kafka.
// With several server instances behind a load balancer, the user a push
// targets may be connected elsewhere; routing every envelope through one
// topic lets each instance deliver to its own sockets.
package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/internal/config"
	"github.com/Phadec/Harmony-Chat-sub000/internal/service/chat"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/util/random"
)

// KafkaRelay implements chat.EventRelay. Publish writes the envelope to
// the event topic; Start consumes the topic and hands every envelope to
// the hub for local delivery.
type KafkaRelay struct {
	producer *kafka.Writer
	consumer *kafka.Reader
	cancel   context.CancelFunc
}

// NewKafkaRelay builds the relay from the kafka config section.
func NewKafkaRelay(cfg config.KafkaConfig) *KafkaRelay {
	return &KafkaRelay{
		producer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.HostPort),
			Topic:                  cfg.EventTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           cfg.Timeout * time.Second,
			RequiredAcks:           kafka.RequireNone,
			AllowAutoTopicCreation: false,
		},
		consumer: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{cfg.HostPort},
			Topic:          cfg.EventTopic,
			CommitInterval: cfg.Timeout * time.Second,
			// Every instance must see every envelope, so each consumes
			// under its own group id.
			GroupID:     "push_relay_" + random.GetNowAndLenRandomString(8),
			StartOffset: kafka.LastOffset,
		}),
	}
}

// Publish writes one serialized envelope to the topic.
func (r *KafkaRelay) Publish(envelope []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return r.producer.WriteMessages(ctx, kafka.Message{Value: envelope})
}

// Start runs the consume loop until Close. Call in a goroutine after the
// hub is running.
func (r *KafkaRelay) Start(hub *chat.Hub) {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	for {
		msg, err := r.consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.L().Error("relay read failed", zap.Error(err))
			continue
		}
		var envelope chat.Envelope
		if err := json.Unmarshal(msg.Value, &envelope); err != nil {
			zap.L().Error("relay envelope malformed", zap.Error(err))
			continue
		}
		hub.DeliverLocal(envelope)
	}
}

// Close stops the consume loop and releases the kafka connections.
func (r *KafkaRelay) Close() {
	if r.cancel != nil {
		r.cancel()
	}
	if err := r.producer.Close(); err != nil {
		zap.L().Error("close relay producer", zap.Error(err))
	}
	if err := r.consumer.Close(); err != nil {
		zap.L().Error("close relay consumer", zap.Error(err))
	}
}
