package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Consumer struct {
	reader *kafka.Reader
	log    *logrus.Logger
}

func NewConsumer(brokers []string, groupID, topic string, log *logrus.Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: log,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

// ConsumeBookingEvents decodes every message as a BookingEvent. Messages
// that do not decode are logged and skipped.
func (c *Consumer) ConsumeBookingEvents(ctx context.Context, handler func(context.Context, BookingEvent) error) error {
	return c.Consume(ctx, DecodeBookingEvents(c.log, handler))
}

func DecodeBookingEvents(log *logrus.Logger, handler func(context.Context, BookingEvent) error) func(context.Context, kafka.Message) error {
	return func(ctx context.Context, msg kafka.Message) error {
		var event BookingEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.WithFields(logrus.Fields{
				"topic":  msg.Topic,
				"offset": msg.Offset,
				"error":  err,
			}).Warn("skipping undecodable booking event")
			return nil
		}
		return handler(ctx, event)
	}
}
