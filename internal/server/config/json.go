package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jobboard/internal/flagx"
	"github.com/dmitrijs2005/jobboard/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// "15m", "7d" or integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                     string         `json:"http_addr"`
	GRPCAddr                     string         `json:"grpc_addr"`
	Environment                  string         `json:"environment"`
	LogLevel                     string         `json:"log_level"`
	DatabaseDriver               string         `json:"database_driver"`
	DatabaseDSN                  string         `json:"database_dsn"`
	AccessSecret                 string         `json:"access_secret"`
	RefreshSecret                string         `json:"refresh_secret"`
	AccessTokenTTL               timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL              timex.Duration `json:"refresh_token_ttl"`
	StorageBackend               string         `json:"storage_backend"`
	UploadDir                    string         `json:"upload_dir"`
	PublicPrefix                 string         `json:"public_prefix"`
	MaxUploadSize                int64          `json:"max_upload_size"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	KafkaBroker                  string         `json:"kafka_broker"`
	KafkaTopic                   string         `json:"kafka_topic"`
	RedisAddr                    string         `json:"redis_addr"`
	RateLimit                    int            `json:"rate_limit"`
	RateWindow                   timex.Duration `json:"rate_window"`
	CORSOrigins                  []string       `json:"cors_origins"`
	SweepInterval                timex.Duration `json:"sweep_interval"`
	SweepBatchSize               int            `json:"sweep_batch_size"`
	StrictApplicationTransitions *bool          `json:"strict_application_transitions"`
}

// parseJson overlays the file named by -c/-config onto config. Keys missing
// from the file keep their current values. An unreadable or malformed file
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.AccessSecret, c.AccessSecret)
	setString(&config.RefreshSecret, c.RefreshSecret)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.UploadDir, c.UploadDir)
	setString(&config.PublicPrefix, c.PublicPrefix)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.KafkaBroker, c.KafkaBroker)
	setString(&config.KafkaTopic, c.KafkaTopic)
	setString(&config.RedisAddr, c.RedisAddr)

	if c.AccessTokenTTL.Duration > 0 {
		config.AccessTokenTTL = c.AccessTokenTTL.Duration
	}
	if c.RefreshTokenTTL.Duration > 0 {
		config.RefreshTokenTTL = c.RefreshTokenTTL.Duration
	}
	if c.RateWindow.Duration > 0 {
		config.RateWindow = c.RateWindow.Duration
	}
	if c.SweepInterval.Duration > 0 {
		config.SweepInterval = c.SweepInterval.Duration
	}
	if c.MaxUploadSize > 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	if c.RateLimit > 0 {
		config.RateLimit = c.RateLimit
	}
	if c.SweepBatchSize > 0 {
		config.SweepBatchSize = c.SweepBatchSize
	}
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.StrictApplicationTransitions != nil {
		config.StrictApplicationTransitions = *c.StrictApplicationTransitions
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
