package services

import (
	"context"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/foodyou-backend/internal/data/prefs"
	"github.com/yungbote/foodyou-backend/internal/data/repos"
	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/platform/openfoodfacts"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

// DiaryService is the single integration point between the local store, the
// preference store and the remote product database.
//
// Observe* methods return a channel that carries a full snapshot now and after
// every change to anything the snapshot depends on. The channel is closed when
// ctx is done.
type DiaryService interface {
	ObserveDailyGoals(ctx context.Context) <-chan types.DailyGoals
	GetDailyGoals(ctx context.Context) (types.DailyGoals, error)
	SetDailyGoals(ctx context.Context, goals types.DailyGoals) error

	ObserveDiaryDay(ctx context.Context, date time.Time) <-chan *types.DiaryDay
	GetDiaryDay(ctx context.Context, date time.Time) (*types.DiaryDay, error)

	ObserveMeals(ctx context.Context) <-chan []*types.Meal
	ObserveMealByID(ctx context.Context, id int64) <-chan *types.Meal
	ListMeals(dbc dbctx.Context) ([]*types.Meal, error)
	GetMeal(dbc dbctx.Context, id int64) (*types.Meal, error)
	CreateMeal(dbc dbctx.Context, name string, from, to datatypes.Time) (*types.Meal, error)
	UpdateMeal(dbc dbctx.Context, meal *types.Meal) error
	DeleteMeal(dbc dbctx.Context, id int64) error
	UpdateMealsRanks(dbc dbctx.Context, ranks map[int64]int) error

	CreateProduct(dbc dbctx.Context, p *types.Product) (*types.Product, error)
	GetProduct(dbc dbctx.Context, id int64) (*types.Product, error)
	UpdateProduct(dbc dbctx.Context, p *types.Product) error
	DeleteProduct(dbc dbctx.Context, id int64) error
	ObserveProduct(ctx context.Context, id int64) <-chan *types.Product

	ObserveQuantitySuggestionByProductID(ctx context.Context, productID int64) <-chan *types.QuantitySuggestion
	GetQuantitySuggestion(ctx context.Context, productID int64) (*types.QuantitySuggestion, error)

	ObserveProductQueries(ctx context.Context, limit int) <-chan []*types.ProductQuery
	ListProductQueries(dbc dbctx.Context, limit int) ([]*types.ProductQuery, error)

	ObserveMeasurements(ctx context.Context, mealID *int64, date time.Time) <-chan []types.MeasuredProduct
	ListMeasurements(ctx context.Context, mealID *int64, date time.Time) ([]types.MeasuredProduct, error)
	ObserveProductByMeasurementID(ctx context.Context, id int64) <-chan *types.MeasuredProduct
	GetMeasurement(ctx context.Context, id int64) (*types.MeasuredProduct, error)
	AddMeasurement(dbc dbctx.Context, date time.Time, mealID, productID int64, m types.Measurement) (*types.WeightMeasurement, error)
	UpdateMeasurement(dbc dbctx.Context, id int64, m types.Measurement) error
	RemoveMeasurement(dbc dbctx.Context, id int64) error
	RestoreMeasurement(dbc dbctx.Context, id int64) error
	PurgeDeletedMeasurements(dbc dbctx.Context, before time.Time) (int64, error)

	QueryProducts(dbc dbctx.Context, mealID int64, date time.Time, query *string) *ProductSearch

	ObserveMealsCardSettings(ctx context.Context) <-chan types.MealsCardSettings
	GetMealsCardSettings(ctx context.Context) (types.MealsCardSettings, error)
	SetMealsCardSettings(ctx context.Context, settings types.MealsCardSettings) error
	GetSelectedDate(ctx context.Context) (time.Time, bool, error)
	SetSelectedDate(ctx context.Context, date time.Time) error

	// Close waits for background history writes to finish or ctx to end.
	Close(ctx context.Context) error
}

type DiaryConfig struct {
	PageSize       int
	MaxAppends     int
	RemoteCacheTTL time.Duration
	HistoryTimeout time.Duration
}

type diaryService struct {
	db           *gorm.DB
	log          *logger.Logger
	cfg          DiaryConfig
	meals        repos.MealRepo
	products     repos.ProductRepo
	measurements repos.MeasurementRepo
	queries      repos.ProductQueryRepo
	remoteKeys   repos.RemoteKeyRepo
	prefs        prefs.Store
	remote       openfoodfacts.Client
	hub          *realtime.Hub
	now          func() time.Time

	bg sync.WaitGroup
}

func NewDiaryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	cfg DiaryConfig,
	mealRepo repos.MealRepo,
	productRepo repos.ProductRepo,
	measurementRepo repos.MeasurementRepo,
	queryRepo repos.ProductQueryRepo,
	remoteKeyRepo repos.RemoteKeyRepo,
	prefStore prefs.Store,
	remote openfoodfacts.Client,
	hub *realtime.Hub,
) DiaryService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 30
	}
	if cfg.MaxAppends <= 0 {
		cfg.MaxAppends = 3
	}
	if cfg.HistoryTimeout <= 0 {
		cfg.HistoryTimeout = 5 * time.Second
	}
	if hub == nil {
		hub = realtime.NewHub(baseLog)
	}
	return &diaryService{
		db:           db,
		log:          baseLog.With("service", "DiaryService"),
		cfg:          cfg,
		meals:        mealRepo,
		products:     productRepo,
		measurements: measurementRepo,
		queries:      queryRepo,
		remoteKeys:   remoteKeyRepo,
		prefs:        prefStore,
		remote:       remote,
		hub:          hub,
		now:          time.Now,
	}
}

func (s *diaryService) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.bg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// read returns a repo context that never joins a caller transaction.
func read(ctx context.Context) dbctx.Context { return dbctx.New(ctx) }

// changed must run after commit so observers never reload uncommitted state.
func (s *diaryService) changed(tables ...string) {
	s.hub.NotifyTables(tables...)
}

// inTx runs fn in the caller's transaction, or in a new one.
func (s *diaryService) inTx(dbc dbctx.Context, fn func(inner dbctx.Context) error) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = s.db
	}
	return transaction.WithContext(dbc.Ctx).Transaction(func(txx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: dbc.Ctx, Tx: txx})
	})
}

func watch[T any](s *diaryService, ctx context.Context, channels []string, load realtime.LoadFunc[T]) <-chan T {
	return realtime.Watch(ctx, s.hub, s.log, channels, load)
}
