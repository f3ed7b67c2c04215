package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "magicmover/internal/adapters/in/http"
	"magicmover/internal/adapters/out/memory"
	"magicmover/internal/adapters/out/mongostore"
	"magicmover/internal/adapters/out/postgres"
	"magicmover/internal/adapters/out/postgres/activityrepo"
	"magicmover/internal/adapters/out/postgres/itemrepo"
	"magicmover/internal/adapters/out/postgres/moverrepo"
	"magicmover/internal/adapters/out/redis/leaderboardcache"
	"magicmover/internal/core/application/usecases/commands"
	"magicmover/internal/core/application/usecases/queries"
	"magicmover/internal/core/ports"
	"magicmover/internal/jobs"

	"github.com/redis/go-redis/v9"
)

type repositories struct {
	items  ports.ItemRepository
	movers ports.MoverRepository
	log    ports.ActivityLogRepository
}

// CompositionRoot owns every long-lived dependency of the service and builds
// use case handlers on top of them.
type CompositionRoot struct {
	cfg      Config
	logger   *slog.Logger
	repos    repositories
	cache    ports.LeaderboardCache
	recorder *commands.ActivityRecorder
	clock    commands.Clock
	closers  []func(context.Context) error
}

// NewCompositionRoot connects the configured storage and the leaderboard
// cache: Redis when REDIS_ADDR is set, otherwise an in-process cache for the
// memory driver and none for the others.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		logger: logger,
		clock:  commands.Clock(time.Now),
	}

	if err := c.openStorage(ctx); err != nil {
		_ = c.Close(ctx)
		return nil, err
	}
	if err := c.openCache(ctx); err != nil {
		_ = c.Close(ctx)
		return nil, err
	}

	c.recorder = commands.NewActivityRecorder(c.repos.log, c.cache, logger)
	return c, nil
}

func (c *CompositionRoot) openStorage(ctx context.Context) error {
	switch c.cfg.StorageDriver {
	case StoragePostgres:
		db, err := postgres.Open(postgres.DSN(
			c.cfg.DBHost, c.cfg.DBPort, c.cfg.DBUser, c.cfg.DBPassword, c.cfg.DBName, c.cfg.DBSslMode,
		))
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("postgres handle: %w", err)
		}
		c.closers = append(c.closers, func(context.Context) error { return sqlDB.Close() })

		if err = postgres.Migrate(db); err != nil {
			return err
		}
		c.repos = repositories{
			items:  itemrepo.NewGormItemRepository(db),
			movers: moverrepo.NewGormMoverRepository(db),
			log:    activityrepo.NewGormActivityLogRepository(db),
		}

	case StorageMongo:
		client, err := mongostore.Connect(ctx, c.cfg.MongoURI)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, client.Disconnect)

		db := client.Database(c.cfg.MongoDatabase)
		if err = mongostore.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		c.repos = repositories{
			items:  mongostore.NewItemRepository(db),
			movers: mongostore.NewMoverRepository(db),
			log:    mongostore.NewActivityLogRepository(db),
		}

	case StorageMemory:
		c.repos = repositories{
			items:  memory.NewItemRepository(),
			movers: memory.NewMoverRepository(),
			log:    memory.NewActivityLogRepository(),
		}

	default:
		return fmt.Errorf("unknown storage driver %q", c.cfg.StorageDriver)
	}

	c.logger.InfoContext(ctx, "Storage ready", "driver", c.cfg.StorageDriver)
	return nil
}

func (c *CompositionRoot) openCache(ctx context.Context) error {
	if c.cfg.RedisAddr == "" {
		if c.cfg.StorageDriver == StorageMemory {
			c.cache = memory.NewLeaderboardCache()
			c.logger.InfoContext(ctx, "Leaderboard cache in process")
			return nil
		}
		c.logger.InfoContext(ctx, "Leaderboard cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.RedisAddr,
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
	})
	c.closers = append(c.closers, func(context.Context) error { return client.Close() })

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}

	c.cache = leaderboardcache.NewRedisLeaderboardCache(client, "", c.cfg.LeaderboardCacheTTL)
	c.logger.InfoContext(ctx, "Leaderboard cache enabled", "addr", c.cfg.RedisAddr, "ttl", c.cfg.LeaderboardCacheTTL)
	return nil
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i](ctx))
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreateCreateItemCommandHandler() commands.CreateItemCommandHandler {
	return commands.NewCreateItemCommandHandler(c.repos.items, c.clock)
}

func (c *CompositionRoot) CreateCreateMoverCommandHandler() commands.CreateMoverCommandHandler {
	return commands.NewCreateMoverCommandHandler(c.repos.movers, c.clock)
}

func (c *CompositionRoot) CreateLoadItemsCommandHandler() commands.LoadItemsCommandHandler {
	return commands.NewLoadItemsCommandHandler(c.repos.movers, c.repos.items, c.recorder, c.clock)
}

func (c *CompositionRoot) CreateStartMissionCommandHandler() commands.StartMissionCommandHandler {
	return commands.NewStartMissionCommandHandler(c.repos.movers, c.recorder, c.clock)
}

func (c *CompositionRoot) CreateEndMissionCommandHandler() commands.EndMissionCommandHandler {
	return commands.NewEndMissionCommandHandler(c.repos.movers, c.recorder, c.clock)
}

func (c *CompositionRoot) CreateUnloadItemsCommandHandler() commands.UnloadItemsCommandHandler {
	return commands.NewUnloadItemsCommandHandler(c.repos.movers, c.recorder, c.clock)
}

func (c *CompositionRoot) CreateGetAllItemsQueryHandler() queries.GetAllItemsQueryHandler {
	return queries.NewGetAllItemsQueryHandler(c.repos.items)
}

func (c *CompositionRoot) CreateGetAllMoversQueryHandler() queries.GetAllMoversQueryHandler {
	return queries.NewGetAllMoversQueryHandler(c.repos.movers)
}

func (c *CompositionRoot) CreateGetMoverQueryHandler() queries.GetMoverQueryHandler {
	return queries.NewGetMoverQueryHandler(c.repos.movers)
}

func (c *CompositionRoot) CreateGetMoverActivityQueryHandler() queries.GetMoverActivityQueryHandler {
	return queries.NewGetMoverActivityQueryHandler(c.repos.movers, c.repos.log)
}

func (c *CompositionRoot) CreateGetTopPerformersQueryHandler() queries.GetTopPerformersQueryHandler {
	return queries.NewGetTopPerformersQueryHandler(c.repos.movers, c.repos.log, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetCargoViolationsQueryHandler() queries.GetCargoViolationsQueryHandler {
	return queries.NewGetCargoViolationsQueryHandler(c.repos.movers, c.repos.items)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreateItem:       c.CreateCreateItemCommandHandler(),
		CreateMover:      c.CreateCreateMoverCommandHandler(),
		LoadItems:        c.CreateLoadItemsCommandHandler(),
		StartMission:     c.CreateStartMissionCommandHandler(),
		EndMission:       c.CreateEndMissionCommandHandler(),
		UnloadItems:      c.CreateUnloadItemsCommandHandler(),
		GetAllItems:      c.CreateGetAllItemsQueryHandler(),
		GetAllMovers:     c.CreateGetAllMoversQueryHandler(),
		GetMover:         c.CreateGetMoverQueryHandler(),
		GetMoverActivity: c.CreateGetMoverActivityQueryHandler(),
		GetTopPerformers: c.CreateGetTopPerformersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetCargoViolationsQueryHandler(), c.cfg.AuditSchedule, c.logger)
}
