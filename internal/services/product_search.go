package services

import (
	"context"
	"strings"
	"time"

	"github.com/yungbote/foodyou-backend/internal/data/repos"
	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/paging"
	"github.com/yungbote/foodyou-backend/internal/platform/ctxutil"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

type SearchMode string

const (
	SearchLocal   SearchMode = "local"
	SearchBarcode SearchMode = "barcode"
	SearchText    SearchMode = "text"
)

// ProductSearch is one paged product search session.
type ProductSearch struct {
	Mode   SearchMode
	Query  string
	pager  *paging.Pager[types.ProductSearchEntry]
	record func(ctx context.Context)
}

// Load reads one page. Loading the first page counts as a new search and
// records it in the query history; later pages do not.
func (ps *ProductSearch) Load(ctx context.Context, page int) (paging.Page[types.ProductSearchEntry], error) {
	if page == 0 && ps.record != nil {
		ps.record(ctx)
	}
	return ps.pager.Load(ctx, page)
}

func (ps *ProductSearch) PageSize() int { return ps.pager.PageSize() }

// QueryProducts routes a search:
//   - nil or blank query: local browsing only.
//   - all digits: barcode lookup, never a text search, no history.
//   - anything else: remote text search plus a best-effort history write that
//     outlives the caller.
func (s *diaryService) QueryProducts(dbc dbctx.Context, mealID int64, date time.Time, query *string) *ProductSearch {
	filter := repos.ProductFilter{MealID: mealID, EpochDay: types.EpochDay(date)}
	ps := &ProductSearch{Mode: SearchLocal}
	var mediator paging.RemoteMediator

	switch {
	case query == nil || strings.TrimSpace(*query) == "":
	case isBarcode(*query):
		code := *query
		ps.Mode, ps.Query = SearchBarcode, code
		filter.Barcode = code
		if s.remote != nil {
			mediator = &barcodeMediator{log: s.log, remote: s.remote, products: s.products, hub: s.hub, code: code}
		}
	default:
		text := strings.TrimSpace(*query)
		ps.Mode, ps.Query = SearchText, text
		filter.Query = text
		ps.record = func(ctx context.Context) { s.recordQuery(ctx, text) }
		if s.remote != nil {
			mediator = &queryMediator{
				log:        s.log,
				remote:     s.remote,
				products:   s.products,
				remoteKeys: s.remoteKeys,
				hub:        s.hub,
				query:      text,
				pageSize:   s.cfg.PageSize,
				cacheTTL:   s.cfg.RemoteCacheTTL,
				now:        s.now,
			}
		}
	}

	source := func(ctx context.Context, offset, limit int) ([]types.ProductSearchEntry, error) {
		rows, err := s.products.Search(read(ctx), filter, limit, offset)
		if err != nil {
			return nil, err
		}
		return s.toSearchEntries(rows), nil
	}
	ps.pager = paging.NewPager(paging.Config{PageSize: s.cfg.PageSize, MaxAppends: s.cfg.MaxAppends}, source, mediator)
	return ps
}

// recordQuery upserts the history entry on a context detached from the caller.
func (s *diaryService) recordQuery(parent context.Context, text string) {
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx, cancel := context.WithTimeout(ctxutil.Detach(parent), s.cfg.HistoryTimeout)
		defer cancel()
		if err := s.queries.Upsert(dbctx.New(ctx), text, s.now()); err != nil {
			s.log.Warn("record product query failed", append([]any{"query", text, "error", err}, ctxutil.LogFields(ctx)...)...)
			return
		}
		s.changed(realtime.ChannelProductQueries)
	}()
}

// toSearchEntries turns rows with today's measurement into Measurement entries
// and the rest into Suggestions.
func (s *diaryService) toSearchEntries(rows []*types.ProductWithMeasurement) []types.ProductSearchEntry {
	out := make([]types.ProductSearchEntry, 0, len(rows))
	for _, r := range rows {
		p := r.Product
		if r.TodaysMeasurement && r.Measurement != nil {
			m, err := types.NewMeasurement(r.Measurement.Kind, r.Measurement.Quantity, &p)
			if err != nil {
				s.log.Warn("search row measurement not resolvable; skipped", "measurementID", r.Measurement.ID, "error", err)
				continue
			}
			id := r.Measurement.ID
			out = append(out, types.ProductSearchEntry{Kind: types.SearchEntryMeasurement, Product: p, MeasurementID: &id, Measurement: m})
			continue
		}
		var m types.Measurement
		if r.Measurement != nil {
			var err error
			if m, err = types.NewMeasurement(r.Measurement.Kind, r.Measurement.Quantity, &p); err != nil {
				m = nil
			}
		}
		if m == nil {
			m = p.DefaultMeasurement()
		}
		out = append(out, types.ProductSearchEntry{Kind: types.SearchEntrySuggestion, Product: p, Measurement: m})
	}
	return out
}

// isBarcode is true for a non-empty run of ASCII digits; surrounding spaces
// make it a text query.
func isBarcode(q string) bool {
	if q == "" {
		return false
	}
	for _, r := range q {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
