package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// LoadConfigWithName loads configuration using the specified name, auto-detecting the file type
func LoadConfigWithName(configName string) (*Config, error) {
	return loadConfig(configName, "")
}

// LoadConfigWithNameAndType loads configuration with explicit name and type specification
func LoadConfigWithNameAndType(configName, configType string) (*Config, error) {
	return loadConfig(configName, configType)
}

// LoadConfig loads configuration from a .env file using the provided base name
func LoadConfig(configName string) (*Config, error) {
	configFileName := fmt.Sprintf("%s.env", configName)
	return loadConfig(configFileName, "env")
}

// loadConfig layers defaults, the config file (if found) and environment
// variables, then validates the result. Notices go to stderr so that commands
// writing ledger data to stdout stay clean.
func loadConfig(configName, configType string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}

	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprintf(os.Stderr, "INFO: No config file '%s' found, relying on environment variables and defaults.\n", configName)
		} else {
			fmt.Fprintf(os.Stderr, "WARNING: Error reading config file (%s): %v\n", v.ConfigFileUsed(), err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "INFO: Config loaded from file: %s\n", v.ConfigFileUsed())
	}

	v.AutomaticEnv()

	config := fromViper(v)

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		Ledger: LedgerConfig{
			DataFile:      v.GetString("LEDGER_DATA_FILE"),
			DefaultFormat: v.GetString("LEDGER_DEFAULT_FORMAT"),
		},
		Kafka: KafkaConfig{
			Enabled:           v.GetBool("KAFKA_ENABLED"),
			Brokers:           v.GetString("KAFKA_BROKERS"),
			LedgerTopic:       v.GetString("KAFKA_LEDGER_TOPIC"),
			DLQTopic:          v.GetString("KAFKA_DLQ_TOPIC"),
			NumPartitions:     v.GetInt("KAFKA_NUM_PARTITIONS"),
			ReplicationFactor: v.GetInt("KAFKA_REPLICATION_FACTOR"),
			WriteTimeout:      v.GetDuration("KAFKA_WRITE_TIMEOUT"),
			ConsumerGroup:     v.GetString("KAFKA_CONSUMER_GROUP"),
			MinBytes:          v.GetInt("KAFKA_MIN_BYTES"),
			MaxBytes:          v.GetInt("KAFKA_MAX_BYTES"),
			MaxWait:           v.GetDuration("KAFKA_MAX_WAIT"),
		},
		WorkerPool: WorkerPoolConfig{
			Size: v.GetInt("WORKER_POOL_SIZE"),
		},
	}
}

// setDefaults initializes configuration with values suited to local use:
// an in-process ledger file and no Kafka.
func setDefaults(v *viper.Viper) {
	// HTTP Server defaults
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	// Ledger file defaults
	v.SetDefault("LEDGER_DATA_FILE", "ledger.json")
	v.SetDefault("LEDGER_DEFAULT_FORMAT", "json")

	// Kafka defaults - publishing is opt-in
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_LEDGER_TOPIC", "ledger_events")
	v.SetDefault("KAFKA_DLQ_TOPIC", "ledger_events_dlq")
	v.SetDefault("KAFKA_NUM_PARTITIONS", 1)
	v.SetDefault("KAFKA_REPLICATION_FACTOR", 1)
	v.SetDefault("KAFKA_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("KAFKA_CONSUMER_GROUP", "ledgerctl")
	v.SetDefault("KAFKA_MIN_BYTES", 1)
	v.SetDefault("KAFKA_MAX_BYTES", 10_000_000)
	v.SetDefault("KAFKA_MAX_WAIT", time.Second)

	// Logging defaults
	v.SetDefault("LOG_LEVEL", "info")

	// Application defaults
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "personal-finance-ledger")

	// Worker Pool defaults
	v.SetDefault("WORKER_POOL_SIZE", 4)
}
