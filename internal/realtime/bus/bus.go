package bus

import (
	"context"

	"github.com/yungbote/foodyou-backend/internal/realtime"
)

// Bus carries hub messages between processes sharing one backend.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}

// Attach wires hub and bus both ways: local publishes go out on the bus, bus
// messages from other processes are broadcast locally.
func Attach(ctx context.Context, hub *realtime.Hub, b Bus) error {
	if err := b.StartForwarder(ctx, hub.Receive); err != nil {
		return err
	}
	hub.SetForwarder(func(m realtime.Message) {
		pubCtx := context.WithoutCancel(ctx)
		_ = b.Publish(pubCtx, m)
	})
	return nil
}
