// Package config provides configuration structures and validation for the ledger.
// It covers the HTTP surface, the flat-file data location, the optional Kafka
// event stream and the batch import worker pool.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Config holds the complete application configuration. Each field is one
// subsystem and the whole struct is validated when loaded.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Ledger      LedgerConfig
	Kafka       KafkaConfig
	WorkerPool  WorkerPoolConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// LedgerConfig locates the flat file the ledger is loaded from and saved to
type LedgerConfig struct {
	DataFile      string // Empty means an in-memory ledger only
	DefaultFormat string // Format used when a path carries no extension
}

// KafkaConfig contains settings for publishing ledger events
type KafkaConfig struct {
	Enabled           bool
	Brokers           string
	LedgerTopic       string
	DLQTopic          string // Rejected imports; empty disables the DLQ
	NumPartitions     int
	ReplicationFactor int
	WriteTimeout      time.Duration

	// Reader side, used by the event tail command
	ConsumerGroup string
	MinBytes      int
	MaxBytes      int
	MaxWait       time.Duration
}

// BrokerList splits Brokers on commas, trimming blanks and dropping empty entries
func (k KafkaConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// WorkerPoolConfig contains worker pool configuration
type WorkerPoolConfig struct {
	Size int // Maximum number of files parsed concurrently
}

var supportedFormats = []string{"json", "csv", "yaml", "yml"}

// dataFileFormats are the formats that keep record ids across a save and load.
// CSV assigns fresh ids on parse, which would orphan transaction references.
var dataFileFormats = []string{"json", "yaml", "yml"}

// ValidateDataFile checks that the ledger can be saved to and reloaded from
// path. A path without an extension uses defaultFormat. An empty path is valid.
func ValidateDataFile(path, defaultFormat string) error {
	if path == "" {
		return nil
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		format = defaultFormat
	}
	format = strings.ToLower(format)
	if !slices.Contains(dataFileFormats, format) {
		return fmt.Errorf("data file %s must be json or yaml, %s does not keep record ids", path, format)
	}
	return nil
}

// validate checks every subsystem and reports all problems at once
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate Ledger config
	if !slices.Contains(supportedFormats, strings.ToLower(c.Ledger.DefaultFormat)) {
		validationErrors = append(validationErrors, "LEDGER_DEFAULT_FORMAT must be one of json, csv, yaml")
	}
	if err := ValidateDataFile(c.Ledger.DataFile, c.Ledger.DefaultFormat); err != nil {
		validationErrors = append(validationErrors, "LEDGER_DATA_FILE: "+err.Error())
	}

	// Kafka settings only matter when publishing is enabled
	if c.Kafka.Enabled {
		if len(c.Kafka.BrokerList()) == 0 {
			validationErrors = append(validationErrors, "KAFKA_BROKERS is required")
		}
		if c.Kafka.LedgerTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_LEDGER_TOPIC is required")
		}
		if c.Kafka.WriteTimeout <= 0 {
			validationErrors = append(validationErrors, "KAFKA_WRITE_TIMEOUT must be greater than 0")
		}
		if c.Kafka.MinBytes <= 0 || c.Kafka.MaxBytes < c.Kafka.MinBytes {
			validationErrors = append(validationErrors, "KAFKA_MIN_BYTES must be positive and not above KAFKA_MAX_BYTES")
		}
	}

	// Validate WorkerPool config
	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
