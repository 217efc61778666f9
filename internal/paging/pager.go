package paging

import (
	"context"
	"errors"
)

type LoadType int

const (
	// Refresh reloads from the first remote page.
	Refresh LoadType = iota
	// Append fetches the next remote page after the last one loaded.
	Append
)

func (t LoadType) String() string {
	if t == Refresh {
		return "refresh"
	}
	return "append"
}

type MediatorResult struct {
	EndOfPagination bool
}

// RemoteMediator pulls remote pages into the local store.
type RemoteMediator interface {
	Load(ctx context.Context, loadType LoadType) (MediatorResult, error)
}

// Source reads one page of local data.
type Source[T any] func(ctx context.Context, offset, limit int) ([]T, error)

type Page[T any] struct {
	Index int `json:"page"`
	Items []T `json:"items"`
	// HasMore is false once the local store is exhausted and the mediator,
	// if any, reported the end of pagination.
	HasMore bool `json:"has_more"`
	// RemoteErr is a remote load failure; Items still hold local data.
	RemoteErr error `json:"-"`
}

type Config struct {
	PageSize int
	// MaxAppends bounds the remote Append rounds spent filling one short page.
	MaxAppends int
}

// Pager serves pages from a local Source while a RemoteMediator keeps the
// source filled. The mediator is optional.
type Pager[T any] struct {
	cfg      Config
	source   Source[T]
	mediator RemoteMediator
	end      bool
}

func NewPager[T any](cfg Config, source Source[T], mediator RemoteMediator) *Pager[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 30
	}
	if cfg.MaxAppends < 0 {
		cfg.MaxAppends = 0
	}
	if cfg.MaxAppends == 0 {
		cfg.MaxAppends = 3
	}
	return &Pager[T]{cfg: cfg, source: source, mediator: mediator}
}

func (p *Pager[T]) PageSize() int { return p.cfg.PageSize }

// Load returns page index. Page 0 triggers a mediator Refresh first; a page
// the local store cannot fill triggers Append rounds until it fills, the
// mediator reports the end, or MaxAppends is reached.
func (p *Pager[T]) Load(ctx context.Context, index int) (Page[T], error) {
	if index < 0 {
		index = 0
	}
	page := Page[T]{Index: index}
	offset := index * p.cfg.PageSize

	if index == 0 && p.mediator != nil {
		p.end = false
		res, err := p.mediator.Load(ctx, Refresh)
		if err != nil {
			if isCtxErr(ctx, err) {
				return page, err
			}
			page.RemoteErr = err
		} else {
			p.end = res.EndOfPagination
		}
	}

	items, err := p.source(ctx, offset, p.cfg.PageSize)
	if err != nil {
		return page, err
	}

	for rounds := 0; p.mediator != nil && page.RemoteErr == nil && !p.end &&
		len(items) < p.cfg.PageSize && rounds < p.cfg.MaxAppends; rounds++ {
		res, err := p.mediator.Load(ctx, Append)
		if err != nil {
			if isCtxErr(ctx, err) {
				return page, err
			}
			page.RemoteErr = err
			break
		}
		p.end = res.EndOfPagination
		items, err = p.source(ctx, offset, p.cfg.PageSize)
		if err != nil {
			return page, err
		}
	}

	page.Items = items
	page.HasMore = len(items) == p.cfg.PageSize || (p.mediator != nil && !p.end && page.RemoteErr == nil)
	return page, nil
}

func isCtxErr(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}
