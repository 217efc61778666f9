package bus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yungbote/foodyou-backend/internal/platform/logger"
	"github.com/yungbote/foodyou-backend/internal/realtime"
)

func TestRedisBusRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis bus integration tests")
	}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	b, err := NewRedisBus(RedisConfig{Addr: addr, Channel: "foodyou:test:" + time.Now().Format("150405.000")}, log)
	if err != nil {
		t.Fatalf("NewRedisBus: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	remote := realtime.NewHub(log)
	if err := Attach(ctx, remote, b); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	client := remote.Subscribe(4, realtime.ChannelMeals)
	defer remote.CloseClient(client)

	// A message from another origin must be broadcast locally.
	if err := b.Publish(ctx, realtime.Message{Channel: realtime.ChannelMeals, Event: realtime.EventTableChanged, Origin: "other"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case msg := <-client.Outbound:
		if msg.Origin != "other" {
			t.Fatalf("unexpected origin %q", msg.Origin)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for bus message")
	}
}
