package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/foodyou-backend/internal/data/db"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/platform/openfoodfacts"
)

type Clients struct {
	DB     *gorm.DB
	Redis  *goredis.Client
	Remote openfoodfacts.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	theDB, err := openDB(log, cfg)
	if err != nil {
		return Clients{}, err
	}
	if err := db.AutoMigrateAll(theDB); err != nil {
		return Clients{}, fmt.Errorf("automigrate: %w", err)
	}
	if err := db.EnsureSearchIndexes(theDB); err != nil {
		return Clients{}, fmt.Errorf("search indexes: %w", err)
	}
	if err := db.SeedDefaultMeals(theDB, log); err != nil {
		return Clients{}, fmt.Errorf("seed meals: %w", err)
	}

	out := Clients{DB: theDB}

	// Redis
	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, DialTimeout: 5 * time.Second})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			return Clients{}, fmt.Errorf("redis ping: %w", err)
		}
		out.Redis = rdb
	} else if cfg.PrefsBackend == "redis" {
		return Clients{}, fmt.Errorf("PREFS_BACKEND=redis requires REDIS_ADDR")
	}

	// Open Food Facts
	if cfg.OFFEnabled {
		remote, err := openfoodfacts.NewClient(openfoodfacts.Config{
			BaseURL:   cfg.OFFBaseURL,
			UserAgent: cfg.OFFUserAgent,
			Country:   cfg.OFFCountry,
			Timeout:   cfg.OFFTimeout,
			Retries:   cfg.OFFRetries,
		}, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init open food facts client: %w", err)
		}
		out.Remote = remote
	} else {
		log.Warn("remote product source disabled; searches are local only")
	}
	return out, nil
}

func openDB(log *logger.Logger, cfg Config) (*gorm.DB, error) {
	switch cfg.DBDriver {
	case "postgres":
		pg, err := db.NewPostgresService(cfg.PostgresDSN, log)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		return pg.DB(), nil
	case "sqlite", "":
		lite, err := db.NewSQLiteService(cfg.SQLitePath, log)
		if err != nil {
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		return lite.DB(), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
