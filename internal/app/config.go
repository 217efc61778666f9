package app

import (
	"strings"
	"time"

	"github.com/yungbote/foodyou-backend/internal/platform/envutil"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type Config struct {
	Port string

	DBDriver    string
	SQLitePath  string
	PostgresDSN string

	PrefsBackend string
	RedisAddr    string
	RedisChannel string
	RedisPrefKey string

	OFFEnabled   bool
	OFFBaseURL   string
	OFFUserAgent string
	OFFCountry   string
	OFFTimeout   time.Duration
	OFFRetries   int

	PageSize       int
	MaxAppends     int
	RemoteCacheTTL time.Duration
	HistoryTimeout time.Duration

	// PurgeAfter is how long soft-deleted measurements are kept; zero disables purging.
	PurgeAfter    time.Duration
	PurgeInterval time.Duration

	CORSOrigins []string
	Environment string
	Version     string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:           envutil.String("PORT", "8080"),
		DBDriver:       strings.ToLower(envutil.String("DB_DRIVER", "sqlite")),
		SQLitePath:     envutil.String("SQLITE_PATH", "data/foodyou.db"),
		PostgresDSN:    envutil.String("POSTGRES_DSN", ""),
		PrefsBackend:   strings.ToLower(envutil.String("PREFS_BACKEND", "db")),
		RedisAddr:      envutil.String("REDIS_ADDR", ""),
		RedisChannel:   envutil.String("REDIS_CHANNEL", "foodyou:changes"),
		RedisPrefKey:   envutil.String("REDIS_PREFS_KEY", "foodyou:preferences"),
		OFFEnabled:     envutil.Bool("OFF_ENABLED", true),
		OFFBaseURL:     envutil.String("OFF_BASE_URL", ""),
		OFFUserAgent:   envutil.String("OFF_USER_AGENT", ""),
		OFFCountry:     envutil.String("OFF_COUNTRY", ""),
		OFFTimeout:     envutil.Duration("OFF_TIMEOUT", 10*time.Second),
		OFFRetries:     envutil.Int("OFF_RETRIES", 2),
		PageSize:       envutil.Int("PAGE_SIZE", 30),
		MaxAppends:     envutil.Int("MAX_REMOTE_APPENDS", 3),
		RemoteCacheTTL: envutil.Duration("REMOTE_CACHE_TTL", time.Hour),
		HistoryTimeout: envutil.Duration("HISTORY_TIMEOUT", 5*time.Second),
		PurgeAfter:     envutil.Duration("PURGE_DELETED_AFTER", 30*24*time.Hour),
		PurgeInterval:  envutil.Duration("PURGE_INTERVAL", 6*time.Hour),
		CORSOrigins:    splitList(envutil.String("CORS_ORIGINS", "")),
		Environment:    envutil.String("APP_ENV", "development"),
		Version:        envutil.String("APP_VERSION", "dev"),
	}
	if log != nil {
		log.Info("config loaded",
			"port", cfg.Port,
			"db_driver", cfg.DBDriver,
			"prefs_backend", cfg.PrefsBackend,
			"redis", cfg.RedisAddr != "",
			"off_enabled", cfg.OFFEnabled,
			"page_size", cfg.PageSize,
		)
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
