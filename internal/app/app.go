package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/foodyou-backend/internal/http"
	"github.com/yungbote/foodyou-backend/internal/observability"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/envutil"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/realtime"
	"github.com/yungbote/foodyou-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	Hub      *realtime.Hub

	bus          bus.Bus
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

func New(ctx context.Context) (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfigFromEnv(serviceName, cfg.Environment, cfg.Version))

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	hub := realtime.NewHub(log)
	reposet := wireRepos(clients.DB, log)
	serviceset := wireServices(log, cfg, clients, reposet, hub)
	handlerset := wireHandlers(log, clients, serviceset, hub)
	router := wireRouter(log, cfg, handlerset)

	return &App{
		Log:          log,
		DB:           clients.DB,
		Router:       router,
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Hub:          hub,
		otelShutdown: otelShutdown,
	}, nil
}

// Start attaches the cross-process change bus and starts the purge loop.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Clients.Redis != nil {
		a.bus = bus.NewRedisBusFromClient(a.Clients.Redis, a.Cfg.RedisChannel, a.Log)
		if err := bus.Attach(ctx, a.Hub, a.bus); err != nil {
			return fmt.Errorf("attach change bus: %w", err)
		}
		a.Log.Info("change bus attached", "channel", a.Cfg.RedisChannel)
	}

	if a.Cfg.PurgeAfter > 0 && a.Cfg.PurgeInterval > 0 {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.purgeLoop(ctx)
		}()
	}
	return nil
}

func (a *App) purgeLoop(ctx context.Context) {
	t := time.NewTicker(a.Cfg.PurgeInterval)
	defer t.Stop()
	for {
		before := time.Now().Add(-a.Cfg.PurgeAfter)
		n, err := a.Services.Diary.PurgeDeletedMeasurements(dbctx.New(ctx), before)
		if err != nil {
			a.Log.Warn("purge deleted measurements failed", "error", err)
		} else if n > 0 {
			a.Log.Info("purged deleted measurements", "count", n, "before", before)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}

// Run serves HTTP until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	srv := &http.Server{Engine: a.Router}
	a.Log.Info("server listening", "port", a.Cfg.Port)
	return srv.Run(ctx, ":"+a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.wg.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if a.Services.Diary != nil {
		if err := a.Services.Diary.Close(ctx); err != nil {
			a.Log.Warn("background writes not drained", "error", err)
		}
	}
	if a.bus != nil {
		// The bus owns the shared redis client.
		_ = a.bus.Close()
	} else if a.Clients.Redis != nil {
		_ = a.Clients.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
