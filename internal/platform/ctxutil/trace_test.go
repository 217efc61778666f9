package ctxutil

import (
	"context"
	"testing"
	"time"
)

func TestDetachKeepsTraceData(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	parent = WithTraceData(parent, &TraceData{TraceID: "t-1", RequestID: "r-1"})
	cancel()

	ctx := Detach(parent)
	if ctx.Err() != nil {
		t.Fatalf("detached context inherited cancellation: %v", ctx.Err())
	}
	kv := LogFields(ctx)
	if len(kv) != 4 || kv[1] != "t-1" || kv[3] != "r-1" {
		t.Fatalf("LogFields: %v", kv)
	}
	if LogFields(context.Background()) != nil {
		t.Fatalf("LogFields without trace data should be nil")
	}
}
