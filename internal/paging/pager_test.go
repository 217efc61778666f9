package paging

import (
	"context"
	"errors"
	"testing"
)

type fakeMediator struct {
	store    *[]int
	pages    [][]int
	next     int
	calls    []LoadType
	failWith error
}

func (m *fakeMediator) Load(ctx context.Context, lt LoadType) (MediatorResult, error) {
	m.calls = append(m.calls, lt)
	if m.failWith != nil {
		return MediatorResult{}, m.failWith
	}
	if lt == Refresh {
		m.next = 0
	}
	if m.next >= len(m.pages) {
		return MediatorResult{EndOfPagination: true}, nil
	}
	*m.store = append(*m.store, m.pages[m.next]...)
	m.next++
	return MediatorResult{EndOfPagination: m.next >= len(m.pages)}, nil
}

func sliceSource(store *[]int) Source[int] {
	return func(ctx context.Context, offset, limit int) ([]int, error) {
		s := *store
		if offset >= len(s) {
			return nil, nil
		}
		end := offset + limit
		if end > len(s) {
			end = len(s)
		}
		return append([]int(nil), s[offset:end]...), nil
	}
}

func TestPagerRefreshThenAppend(t *testing.T) {
	var store []int
	m := &fakeMediator{store: &store, pages: [][]int{{1, 2}, {3, 4}, {5}}}
	p := NewPager(Config{PageSize: 3}, sliceSource(&store), m)

	first, err := p.Load(context.Background(), 0)
	if err != nil {
		t.Fatalf("Load(0): %v", err)
	}
	if len(first.Items) != 3 || !first.HasMore {
		t.Fatalf("Load(0): unexpected page %+v", first)
	}
	if len(m.calls) != 2 || m.calls[0] != Refresh || m.calls[1] != Append {
		t.Fatalf("mediator calls: %v", m.calls)
	}

	second, err := p.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load(1): %v", err)
	}
	if len(second.Items) != 2 || second.HasMore {
		t.Fatalf("Load(1): unexpected page %+v", second)
	}
}

func TestPagerWithoutMediatorIsLocalOnly(t *testing.T) {
	store := []int{1, 2, 3, 4}
	p := NewPager[int](Config{PageSize: 3}, sliceSource(&store), nil)
	page, err := p.Load(context.Background(), 1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(page.Items) != 1 || page.HasMore {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestPagerCarriesRemoteError(t *testing.T) {
	store := []int{7}
	boom := errors.New("network down")
	m := &fakeMediator{store: &store, failWith: boom}
	p := NewPager(Config{PageSize: 3}, sliceSource(&store), m)

	page, err := p.Load(context.Background(), 0)
	if err != nil {
		t.Fatalf("Load should not fail on remote errors: %v", err)
	}
	if !errors.Is(page.RemoteErr, boom) {
		t.Fatalf("RemoteErr: want %v got %v", boom, page.RemoteErr)
	}
	if len(page.Items) != 1 || page.Items[0] != 7 {
		t.Fatalf("local data should still be served: %+v", page.Items)
	}
	if len(m.calls) != 1 {
		t.Fatalf("no append after a failed refresh, calls=%v", m.calls)
	}
}

func TestPagerStopsAfterMaxAppends(t *testing.T) {
	var store []int
	m := &fakeMediator{store: &store, pages: [][]int{{}, {}, {}, {}, {}, {1}}}
	p := NewPager(Config{PageSize: 5, MaxAppends: 2}, sliceSource(&store), m)
	if _, err := p.Load(context.Background(), 0); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.calls) != 3 {
		t.Fatalf("want refresh + 2 appends, got %v", m.calls)
	}
}
