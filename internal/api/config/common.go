package config

// Config 配置主体
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	DB     DBConfig     `mapstructure:"database" validate:"required"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Jobs   JobsConfig   `mapstructure:"jobs"`
	Log    LogConfig    `mapstructure:"log"`

	KafkaUserConsumer  KafkaUserConsumer  `mapstructure:"kafka_user_consumer"`
	KafkaGroupConsumer KafkaGroupConsumer `mapstructure:"kafka_group_consumer"`
}

// LogConfig 除标准输出外可选的落盘文件
type LogConfig struct {
	File string `mapstructure:"file"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn" validate:"required"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Topic    string         `mapstructure:"topic"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
}

type KafkaUserConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type KafkaGroupConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// JobsConfig 定时任务的 cron 表达式与批处理参数
type JobsConfig struct {
	SchedulePublishCron string `mapstructure:"schedule_publish_cron"`
	ReactionRecountCron string `mapstructure:"reaction_recount_cron"`
	ContentPurgeCron    string `mapstructure:"content_purge_cron"`
	PageSize            int    `mapstructure:"page_size"`
	PurgeRetentionDays  int    `mapstructure:"purge_retention_days"`
}
