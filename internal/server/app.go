// Package server wires the job board together: storage backend, file store,
// notification publisher, services, the HTTP API, the gRPC health endpoint
// and the periodic expiry sweeper.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/events"
	"github.com/dmitrijs2005/jobboard/internal/server/httpapi"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/jobboard/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	rm       repomanager.RepositoryManager
	files    *storage.Files
	pub      events.Publisher
	redis    *redis.Client
	limiter  httpapi.Limiter
	services *services.Services
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogLevel)

	rm, err := repomanager.New(c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	backend, err := newBackend(ctx, c)
	if err != nil {
		rm.Close()
		return nil, fmt.Errorf("storage init error: %w", err)
	}
	files := storage.NewFiles(backend, c.PublicPrefix, c.MaxUploadSize)

	app := &App{config: c, logger: logger, rm: rm, files: files}

	app.pub = events.New(c.KafkaBroker, c.KafkaTopic)
	if c.KafkaBroker != "" {
		logger.Info(ctx, "publishing notifications to kafka", "broker", c.KafkaBroker, "topic", c.KafkaTopic)
	}

	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			logger.Warn(ctx, "redis unreachable, rate limiting will fail open", "addr", c.RedisAddr, "error", err)
		}
		app.limiter = httpapi.NewRedisLimiter(app.redis)
	}

	app.services = services.New(rm, files, app.pub, logger, c)

	if c.UsesDefaultSecrets() {
		logger.Warn(ctx, "using default JWT secrets, set JWT_SECRET and JWT_REFRESH_SECRET")
	}

	return app, nil
}

func newBackend(ctx context.Context, c *config.Config) (storage.Backend, error) {
	switch c.StorageBackend {
	case config.StorageS3:
		s3, err := storage.NewS3(ctx, storage.S3Options{
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	case config.StorageDisk, "":
		disk, err := storage.NewDisk(c.UploadDir)
		if err != nil {
			return nil, err
		}
		return disk, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
}

// Services exposes the wired services, e.g. for administrative commands.
func (app *App) Services() *services.Services {
	return app.services
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config, app.logger, app.services, app.files, app.limiter)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.rm)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a signal arrives, then releases the
// backend connections.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment, "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	if app.config.SweepInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.services.Sweeper.Run(ctx, app.config.SweepInterval)
		}()
	}

	wg.Wait()
	app.Close(context.Background())
}

// Close releases the publisher, redis and the database.
func (app *App) Close(ctx context.Context) {
	if err := app.pub.Close(); err != nil {
		app.logger.Error(ctx, "publisher close error", "error", err)
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(ctx, "redis close error", "error", err)
		}
	}
	if err := app.rm.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
