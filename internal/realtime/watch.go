package realtime

import (
	"context"

	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

// LoadFunc computes a snapshot. ok=false means there is nothing to emit for
// now (e.g. the observed row does not exist); the watch keeps running.
type LoadFunc[T any] func(ctx context.Context) (value T, ok bool, err error)

// Watch emits the result of load once and again after every change on any of
// channels. Bursts are coalesced: the output holds at most one snapshot and a
// newer one replaces a snapshot the consumer has not read yet. The output is
// closed when ctx is done. Load errors are logged and skipped.
func Watch[T any](ctx context.Context, hub *Hub, log *logger.Logger, channels []string, load LoadFunc[T]) <-chan T {
	out := make(chan T, 1)
	// Subscribe before the first load so no change in between is lost.
	client := hub.Subscribe(1, channels...)

	go func() {
		defer close(out)
		defer hub.CloseClient(client)

		emit := func() {
			v, ok, err := load(ctx)
			if err != nil {
				if ctx.Err() == nil {
					log.Warn("watch load failed", "channels", channels, "error", err)
				}
				return
			}
			if !ok {
				return
			}
			select {
			case <-out:
			default:
			}
			select {
			case out <- v:
			case <-ctx.Done():
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case _, open := <-client.Outbound:
				if !open {
					return
				}
				emit()
			}
		}
	}()
	return out
}
