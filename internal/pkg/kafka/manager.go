package kafka

import (
	"Trellis/internal/api/config"
	"Trellis/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	usersConsumer sarama.ConsumerGroup
	usersHandler  sarama.ConsumerGroupHandler

	groupsConsumer sarama.ConsumerGroup
	groupsHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(
	cfg *config.Config,
	userRepo repository.UserRepo,
	groupRepo repository.GroupRepo,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	usersConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaUserConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	usersHandler := NewUserHandler(userRepo)

	groupsConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaGroupConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	groupsHandler := NewGroupHandler(groupRepo)

	return &ConsumerManager{
		usersConsumer:  usersConsumer,
		usersHandler:   usersHandler,
		groupsConsumer: groupsConsumer,
		groupsHandler:  groupsHandler,
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 User Consumer
	go func() {
		topic := cfg.KafkaUserConsumer.Topic
		log.Info("User consumer started", "topic", topic)
		for {
			if err := m.usersConsumer.Consume(ctx, []string{topic}, m.usersHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Group Consumer
	go func() {
		topic := cfg.KafkaGroupConsumer.Topic
		log.Info("Group consumer started", "topic", topic)
		for {
			if err := m.groupsConsumer.Consume(ctx, []string{topic}, m.groupsHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.usersConsumer.Close(); err != nil {
		log.Error("Failed to close users consumer", "err", err)
	}
	if err := m.groupsConsumer.Close(); err != nil {
		log.Error("Failed to close groups consumer", "err", err)
	}

	return nil
}
