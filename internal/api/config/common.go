package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg，环境变量可覆盖（scoring.lock_ttl -> SCORING_LOCK_TTL）
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("scoring.recalc_timeout", 60)
	viper.SetDefault("scoring.lock_ttl", 120)
	viper.SetDefault("scoring.lock_retries", 5)
	viper.SetDefault("scoring.public_leaderboard_limit", 10)
	viper.SetDefault("scoring.max_leaderboard_limit", 100)
	viper.SetDefault("cron.rescore_spec", "0 */5 * * * *")
	viper.SetDefault("kafka_metrics_consumer.topic", "post-metrics")
	viper.SetDefault("kafka_metrics_consumer.group_id", "campaigner-metrics")
}
