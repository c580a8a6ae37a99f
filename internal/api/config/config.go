package config

// Config 配置主体
type Config struct {
	Server               ServerConfig               `mapstructure:"server"`
	DB                   DBConfig                   `mapstructure:"database"`
	Redis                RedisConfig                `mapstructure:"redis"`
	Mongo                MongoConfig                `mapstructure:"mongo"`
	MinIO                MinIOConfig                `mapstructure:"minio"`
	Logstash             LogstashConfig             `mapstructure:"logstash"`
	JWT                  JWTConfig                  `mapstructure:"jwt"`
	Kafka                KafkaConfig                `mapstructure:"kafka"`
	KafkaMetricsConsumer KafkaMetricsConsumerConfig `mapstructure:"kafka_metrics_consumer"`
	Scoring              ScoringConfig              `mapstructure:"scoring"`
	Cron                 CronConfig                 `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	ReportBucket  string `mapstructure:"report_bucket"`
	ReportTTLDays int    `mapstructure:"report_ttl_days"`
	UseSSL        bool   `mapstructure:"use_ssl"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// KafkaMetricsConsumerConfig 社媒指标回传 topic
type KafkaMetricsConsumerConfig struct {
	Enable  bool   `mapstructure:"enable"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// ScoringConfig 计分与排行榜参数，时间单位为秒
type ScoringConfig struct {
	RecalcTimeout          int `mapstructure:"recalc_timeout"`
	LockTTL                int `mapstructure:"lock_ttl"`
	LockRetries            int `mapstructure:"lock_retries"`
	PublicLeaderboardLimit int `mapstructure:"public_leaderboard_limit"`
	MaxLeaderboardLimit    int `mapstructure:"max_leaderboard_limit"`
}

type CronConfig struct {
	RescoreSpec string `mapstructure:"rescore_spec"`
}
