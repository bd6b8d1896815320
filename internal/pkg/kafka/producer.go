package kafka

import (
	"Trellis/internal/api/config"
	"Trellis/internal/domain"
	"context"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EventProducer 把领域事件投到同一个 topic，事件名放在 header 里，
// 下游按 header 路由。同步发送，失败直接把错误交回调用方
type EventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEventProducer(cfg config.KafkaConfig) (*EventProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, err
	}
	return &EventProducer{producer: producer, topic: cfg.Topic}, nil
}

func (s *EventProducer) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event"), Value: []byte(event.EventName())},
		},
	}
	_, _, err = s.producer.SendMessage(msg)
	return err
}

func (s *EventProducer) Close() error {
	return s.producer.Close()
}
