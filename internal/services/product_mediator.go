package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/foodyou-backend/internal/data/repos"
	types "github.com/yungbote/foodyou-backend/internal/domain"
	"github.com/yungbote/foodyou-backend/internal/paging"
	"github.com/yungbote/foodyou-backend/internal/pkg/pointers"
	"github.com/yungbote/foodyou-backend/internal/platform/dbctx"
	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/platform/openfoodfacts"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

// barcodeMediator fetches the single product behind a barcode.
type barcodeMediator struct {
	log      *logger.Logger
	remote   openfoodfacts.Client
	products repos.ProductRepo
	hub      *realtime.Hub
	code     string
}

func (m *barcodeMediator) Load(ctx context.Context, loadType paging.LoadType) (paging.MediatorResult, error) {
	if loadType != paging.Refresh {
		return paging.MediatorResult{EndOfPagination: true}, nil
	}
	rp, err := m.remote.GetProduct(ctx, m.code)
	if err != nil {
		return paging.MediatorResult{}, err
	}
	if rp == nil {
		return paging.MediatorResult{EndOfPagination: true}, nil
	}
	p, ok := openfoodfacts.ToDomain(*rp)
	if !ok {
		m.log.Debug("remote product unusable", "code", m.code)
		return paging.MediatorResult{EndOfPagination: true}, nil
	}
	if err := m.products.UpsertRemote(dbctx.New(ctx), []*types.Product{p}); err != nil {
		return paging.MediatorResult{}, fmt.Errorf("store remote product: %w", err)
	}
	if m.hub != nil {
		m.hub.NotifyTables(realtime.ChannelProducts)
	}
	return paging.MediatorResult{EndOfPagination: true}, nil
}

// queryMediator walks the remote search pages of one query. The cursor is
// kept in remote_key so a fresh search resumes instead of refetching.
type queryMediator struct {
	log        *logger.Logger
	remote     openfoodfacts.Client
	products   repos.ProductRepo
	remoteKeys repos.RemoteKeyRepo
	hub        *realtime.Hub
	query      string
	pageSize   int
	cacheTTL   time.Duration
	now        func() time.Time
}

func remoteQueryKey(query string) string {
	return "query:" + strings.ToLower(strings.TrimSpace(query))
}

func (m *queryMediator) Load(ctx context.Context, loadType paging.LoadType) (paging.MediatorResult, error) {
	dbc := dbctx.New(ctx)
	key, err := m.remoteKeys.Get(dbc, remoteQueryKey(m.query))
	if err != nil {
		return paging.MediatorResult{}, err
	}

	page := 1
	switch loadType {
	case paging.Refresh:
		if key != nil && m.cacheTTL > 0 && m.now().Sub(time.Unix(key.UpdatedAt, 0)) < m.cacheTTL {
			return paging.MediatorResult{EndOfPagination: key.EndOfPagination}, nil
		}
	case paging.Append:
		if key != nil {
			if key.EndOfPagination {
				return paging.MediatorResult{EndOfPagination: true}, nil
			}
			page = pointers.Deref(key.NextPage, page)
		}
	}

	resp, err := m.remote.Search(ctx, strings.TrimSpace(m.query), page, m.pageSize)
	if err != nil {
		return paging.MediatorResult{}, err
	}
	products := openfoodfacts.ToDomainList(resp.Products)
	if err := m.products.UpsertRemote(dbc, products); err != nil {
		return paging.MediatorResult{}, fmt.Errorf("store remote products: %w", err)
	}

	end := len(resp.Products) == 0 || page*m.pageSize >= int(resp.Count)
	newKey := &types.RemoteKey{QueryKey: remoteQueryKey(m.query), EndOfPagination: end, UpdatedAt: m.now().Unix()}
	if !end {
		newKey.NextPage = pointers.Ptr(page + 1)
	}
	if err := m.remoteKeys.Upsert(dbc, newKey); err != nil {
		return paging.MediatorResult{}, fmt.Errorf("store remote key: %w", err)
	}
	if m.hub != nil {
		m.hub.NotifyTables(realtime.ChannelProducts, realtime.ChannelRemoteKeys)
	}
	m.log.Debug("remote page loaded", "query", m.query, "page", page, "stored", len(products), "end", end)
	return paging.MediatorResult{EndOfPagination: end}, nil
}
