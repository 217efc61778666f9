package observability

import (
	"context"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key = abc , broken, =x, tenant=food ")
	if len(got) != 2 || got["api-key"] != "abc" || got["tenant"] != "food" {
		t.Fatalf("unexpected headers: %#v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("empty input should yield nil")
	}
}

func TestSampleRatioClamps(t *testing.T) {
	cases := map[string]float64{"": 0.1, "abc": 0.1, "-2": 0, "3": 1, "0.25": 0.25}
	for in, want := range cases {
		if got := sampleRatio(in); got != want {
			t.Fatalf("sampleRatio(%q): want=%v got=%v", in, want, got)
		}
	}
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	if shutdown := InitOTel(context.Background(), nil, OtelConfig{Enabled: false}); shutdown != nil {
		t.Fatalf("expected nil shutdown when disabled")
	}
}
