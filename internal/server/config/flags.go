package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/flagx"
	"github.com/dmitrijs2005/jobboard/internal/timex"
)

var serverFlags = []string{
	"-a", "-g", "-d", "-driver", "-s", "-rs", "-t", "-r", "-l", "-env",
	"-storage", "-upload-dir", "-u", "-p", "-b", "-region", "-e",
	"-k", "-topic", "-redis", "-sweep", "-strict-transitions",
}

// parseFlags overlays command-line flags onto config. Only the flags listed
// in serverFlags are looked at, so -c/-config and -env-file pass through.
//
//	-a        HTTP listen address
//	-g        gRPC health listen address
//	-d        PostgreSQL DSN
//	-driver   database driver (postgres, memory)
//	-s / -rs  access / refresh token secrets
//	-t / -r   access / refresh token lifetime ("15m", "7d")
//	-l        log level
//	-env      environment (development, production)
//	-storage  file storage backend (disk, s3)
//	-u -p -b -region -e   S3 user, password, bucket, region, endpoint
//	-k -topic Kafka broker and notification topic
//	-redis    Redis address for the shared rate limiter
//	-sweep    periodic expiry sweep interval, 0 disables
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.AccessSecret, "s", config.AccessSecret, "access token secret")
	fs.StringVar(&config.RefreshSecret, "rs", config.RefreshSecret, "refresh token secret")
	fs.Func("t", "access token lifetime", durationFlag(&config.AccessTokenTTL))
	fs.Func("r", "refresh token lifetime", durationFlag(&config.RefreshTokenTTL))
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.Environment, "env", config.Environment, "environment")
	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "storage backend")
	fs.StringVar(&config.UploadDir, "upload-dir", config.UploadDir, "upload directory")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.KafkaBroker, "k", config.KafkaBroker, "Kafka broker address")
	fs.StringVar(&config.KafkaTopic, "topic", config.KafkaTopic, "Kafka notification topic")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "Redis address")
	fs.Func("sweep", "periodic expiry sweep interval", durationFlag(&config.SweepInterval))
	fs.BoolVar(&config.StrictApplicationTransitions, "strict-transitions", config.StrictApplicationTransitions, "enforce forward-only application statuses")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

func durationFlag(dst *time.Duration) func(string) error {
	return func(s string) error {
		d, err := timex.ParseDuration(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*dst = d
		return nil
	}
}
