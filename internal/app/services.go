package app

import (
	"github.com/yungbote/foodyou-backend/internal/data/prefs"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/realtime"
	"github.com/yungbote/foodyou-backend/internal/services"
)

type Services struct {
	Prefs prefs.Store
	Diary services.DiaryService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, reposet Repos, hub *realtime.Hub) Services {
	log.Info("Wiring services...")

	var store prefs.Store
	if cfg.PrefsBackend == "redis" && clients.Redis != nil {
		store = prefs.NewRedisStore(clients.Redis, cfg.RedisPrefKey, hub, log)
	} else {
		store = prefs.NewDBStore(clients.DB, hub, log)
	}

	diary := services.NewDiaryService(
		clients.DB,
		log,
		services.DiaryConfig{
			PageSize:       cfg.PageSize,
			MaxAppends:     cfg.MaxAppends,
			RemoteCacheTTL: cfg.RemoteCacheTTL,
			HistoryTimeout: cfg.HistoryTimeout,
		},
		reposet.Meal,
		reposet.Product,
		reposet.Measurement,
		reposet.ProductQuery,
		reposet.RemoteKey,
		store,
		clients.Remote,
		hub,
	)
	return Services{Prefs: store, Diary: diary}
}
