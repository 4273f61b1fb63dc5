// Command server runs the user-directory API.
//
// @title        User Directory API
// @version      1.0
// @description  Minimal user directory with stateless JWT authentication and role-based access control.
// @BasePath     /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/simpleuser/user-directory/internal/api"
	"github.com/simpleuser/user-directory/internal/auth/password"
	"github.com/simpleuser/user-directory/internal/auth/token"
	"github.com/simpleuser/user-directory/internal/core/ports"
	"github.com/simpleuser/user-directory/internal/core/service"
	"github.com/simpleuser/user-directory/internal/infrastructure/config"
	mongodb "github.com/simpleuser/user-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/simpleuser/user-directory/internal/infrastructure/db/redis"
	"github.com/simpleuser/user-directory/internal/infrastructure/seed"
	"github.com/simpleuser/user-directory/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.New("info", false).Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.Env == "development")

	conn, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	users := mongodb.NewUserRepository(conn.Database())
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	// Redis only backs the login throttle; without an address the service
	// runs with the throttle disabled.
	var (
		rdb      *redis.Client
		throttle ports.LoginThrottle
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Timeout)
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() {
			_ = rdb.Close()
		}()
		throttle = redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)
	} else {
		log.Info().Msg("redis not configured, login throttle disabled")
	}

	hasher := password.NewHasher(cfg.BcryptCost)
	codec := token.NewCodec(cfg.JWTSecret)

	authService := service.NewAuthService(users, hasher, codec, cfg.TokenTTL(), throttle, log)
	userService := service.NewUserService(users, hasher, log)

	if cfg.Seed {
		if err := seed.New(users, hasher, log).Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
	}

	e := api.NewRouter(log, authService, userService, codec, conn.Database(), rdb)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server shut down")
}
