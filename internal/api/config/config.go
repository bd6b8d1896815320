package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	applyDefaults(&cfg)
	Cfg = &cfg

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Jobs.SchedulePublishCron == "" {
		cfg.Jobs.SchedulePublishCron = "@every 1m"
	}
	if cfg.Jobs.ReactionRecountCron == "" {
		cfg.Jobs.ReactionRecountCron = "0 30 3 * * *"
	}
	if cfg.Jobs.ContentPurgeCron == "" {
		cfg.Jobs.ContentPurgeCron = "0 0 4 * * *"
	}
	if cfg.Jobs.PageSize == 0 {
		cfg.Jobs.PageSize = 100
	}
	if cfg.Jobs.PurgeRetentionDays == 0 {
		cfg.Jobs.PurgeRetentionDays = 30
	}
}
