package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"

	"nclx/gymnotetaker/internal/api"
	"nclx/gymnotetaker/internal/config"
	"nclx/gymnotetaker/internal/repository"
	"nclx/gymnotetaker/internal/repository/memory"
	"nclx/gymnotetaker/internal/repository/mongo"
	"nclx/gymnotetaker/internal/service"
	"nclx/gymnotetaker/internal/session"
	"nclx/gymnotetaker/internal/storage"
)

type repositories struct {
	accounts  repository.AccountRepository
	users     repository.UserRepository
	workouts  repository.WorkoutRepository
	exercises repository.ExerciseRepository
	sets      repository.SetRepository
	exports   repository.ExportRepository
}

func openRepositories(ctx context.Context, cfg config.Config) (repositories, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warnln("using in-memory storage, data is lost on restart")
		return repositories{
			accounts:  memory.NewAccountRepository(),
			users:     memory.NewUserRepository(),
			workouts:  memory.NewWorkoutRepository(),
			exercises: memory.NewExerciseRepository(),
			sets:      memory.NewSetRepository(),
			exports:   memory.NewExportRepository(),
		}, func() {}, nil

	case config.DriverMongo:
		dbClient, err := mongo.ConnectDB(cfg.Database.URI)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("connect to mongodb: %w", err)
		}
		appDB := dbClient.Database(cfg.Database.Name)
		log.Infof("connected to mongodb database %s", cfg.Database.Name)

		go func() {
			ctx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()
			if err := mongo.EnsureIndexes(ctx, appDB, cfg.Collections); err != nil {
				log.Warnf("failed to create indexes: %s", err)
				return
			}
			log.Debugln("index creation completed")
		}()

		names := cfg.Collections
		return repositories{
				accounts:  mongo.NewMongoAccountRepository(appDB, names.Account),
				users:     mongo.NewMongoUserRepository(appDB, names.User),
				workouts:  mongo.NewMongoWorkoutRepository(appDB, names.Workout),
				exercises: mongo.NewMongoExerciseRepository(appDB, names.Exercise),
				sets:      mongo.NewMongoSetRepository(appDB, names.WorkoutSet),
				exports:   mongo.NewMongoExportRepository(appDB, names.Export),
			}, func() {
				log.Infoln("disconnecting mongodb ...")
				if err := mongo.DisconnectDB(dbClient); err != nil {
					log.Errorf("failed to disconnect mongodb: %s", err)
				}
			}, nil

	default:
		return repositories{}, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// openSessions uses Redis when redis.addr is set, otherwise keeps sessions in memory.
func openSessions(ctx context.Context, cfg config.Config) (session.Store, api.RequestRateLimiter, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Warnln("redis.addr not set: sessions kept in memory, login is not rate limited")
		return session.NewMemoryStore(cfg.JWT.Secret, cfg.JWT.Expiration), nil, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	log.Infof("connected to redis at %s", cfg.Redis.Addr)

	closeFn := func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("failed to close redis client: %s", err)
		}
	}
	return session.NewRedisStore(rdb, cfg.JWT.Secret, cfg.JWT.Expiration), redis_rate.NewLimiter(rdb), closeFn, nil
}

func openStorage(ctx context.Context, cfg config.Config) (storage.FileStorage, error) {
	if !cfg.S3.Enabled() {
		log.Warnln("s3 not configured: history export disabled")
		return nil, nil
	}
	fileStorage, err := storage.NewS3Storage(ctx, cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("init s3 storage: %w", err)
	}
	return fileStorage, nil
}

func newServices(repos repositories, sessions session.Store, fileStorage storage.FileStorage) api.Services {
	return api.Services{
		Accounts: service.NewAccountService(repos.accounts, sessions),
		Profiles: service.NewProfileService(repos.users),
		Workouts: service.NewWorkoutService(repos.workouts, repos.exercises),
		Sets:     service.NewSetService(repos.sets, repos.exercises, repos.workouts),
		Export:   service.NewExportService(repos.workouts, repos.exercises, repos.sets, repos.exports, fileStorage),
	}
}
