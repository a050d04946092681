package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/flagx"
	"github.com/dmitrijs2005/jobboard/internal/timex"
	"github.com/joho/godotenv"
)

// parseEnv loads the dotenv file (-env-file, default ".env") without
// overriding variables already present in the process environment, then
// overlays recognised variables onto config. Invalid values panic.
func parseEnv(config *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if err := applyEnv(config, os.LookupEnv); err != nil {
		panic(err)
	}
}

type lookupFunc func(key string) (string, bool)

func applyEnv(config *Config, lookup lookupFunc) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	strs := map[string]*string{
		"HTTP_ADDR":          &config.HTTPAddr,
		"GRPC_ADDR":          &config.GRPCAddr,
		"NODE_ENV":           &config.Environment,
		"ENVIRONMENT":        &config.Environment,
		"LOG_LEVEL":          &config.LogLevel,
		"DATABASE_DRIVER":    &config.DatabaseDriver,
		"DATABASE_URL":       &config.DatabaseDSN,
		"JWT_SECRET":         &config.AccessSecret,
		"JWT_REFRESH_SECRET": &config.RefreshSecret,
		"STORAGE_BACKEND":    &config.StorageBackend,
		"UPLOAD_DIR":         &config.UploadDir,
		"PUBLIC_PREFIX":      &config.PublicPrefix,
		"S3_ROOT_USER":       &config.S3RootUser,
		"S3_ROOT_PASSWORD":   &config.S3RootPassword,
		"S3_BUCKET":          &config.S3Bucket,
		"S3_REGION":          &config.S3Region,
		"S3_BASE_ENDPOINT":   &config.S3BaseEndpoint,
		"KAFKA_BROKER":       &config.KafkaBroker,
		"KAFKA_TOPIC":        &config.KafkaTopic,
		"REDIS_ADDR":         &config.RedisAddr,
	}
	// ENVIRONMENT wins over NODE_ENV when both are set.
	for _, key := range []string{
		"HTTP_ADDR", "GRPC_ADDR", "NODE_ENV", "ENVIRONMENT", "LOG_LEVEL",
		"DATABASE_DRIVER", "DATABASE_URL", "JWT_SECRET", "JWT_REFRESH_SECRET",
		"STORAGE_BACKEND", "UPLOAD_DIR", "PUBLIC_PREFIX",
		"S3_ROOT_USER", "S3_ROOT_PASSWORD", "S3_BUCKET", "S3_REGION", "S3_BASE_ENDPOINT",
		"KAFKA_BROKER", "KAFKA_TOPIC", "REDIS_ADDR",
	} {
		if v, ok := get(key); ok {
			*strs[key] = v
		}
	}

	if v, ok := get("PORT"); ok {
		config.HTTPAddr = ":" + v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"JWT_EXPIRE", &config.AccessTokenTTL},
		{"JWT_REFRESH_EXPIRE", &config.RefreshTokenTTL},
		{"RATE_WINDOW", &config.RateWindow},
		{"SWEEP_INTERVAL", &config.SweepInterval},
	}
	for _, d := range durations {
		if v, ok := get(d.key); ok {
			parsed, err := timex.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", d.key, err)
			}
			*d.dst = parsed
		}
	}

	ints := []struct {
		key string
		set func(int64)
	}{
		{"MAX_UPLOAD_SIZE", func(n int64) { config.MaxUploadSize = n }},
		{"RATE_LIMIT", func(n int64) { config.RateLimit = int(n) }},
		{"SWEEP_BATCH_SIZE", func(n int64) { config.SweepBatchSize = int(n) }},
	}
	for _, i := range ints {
		if v, ok := get(i.key); ok {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", i.key, err)
			}
			i.set(n)
		}
	}

	if v, ok := get("CORS_ORIGINS"); ok {
		config.CORSOrigins = splitList(v)
	}

	if v, ok := get("STRICT_APPLICATION_TRANSITIONS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STRICT_APPLICATION_TRANSITIONS: %w", err)
		}
		config.StrictApplicationTransitions = b
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
