package prefs

import (
	"context"
	"os"
	"sort"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/foodyou-backend/internal/data/repos/testutil"
)

type recordingNotifier struct {
	calls [][]string
}

func (n *recordingNotifier) NotifyPreferences(keys ...string) {
	k := append([]string(nil), keys...)
	sort.Strings(k)
	n.calls = append(n.calls, k)
}

func exerciseStore(t *testing.T, s Store, n *recordingNotifier) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, KeyCaloriesGoal); err != nil || ok {
		t.Fatalf("Get(unset): ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, map[string]string{
		KeyCaloriesGoal: FormatFloat(2500),
		KeyFatsGoal:     FormatFloat(80.5),
	}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, map[string]string{KeyCaloriesGoal: FormatFloat(2400)}); err != nil {
		t.Fatalf("Set(overwrite): %v", err)
	}

	got, err := s.GetMany(ctx, KeyCaloriesGoal, KeyFatsGoal, KeyProteinsGoal)
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetMany: unset keys must be omitted, got %v", got)
	}
	if v, ok := Float(got, KeyCaloriesGoal); !ok || v != 2400 {
		t.Fatalf("calories: want=2400 got=%v ok=%v", v, ok)
	}
	if v, ok := Float(got, KeyFatsGoal); !ok || v != 80.5 {
		t.Fatalf("fats: want=80.5 got=%v ok=%v", v, ok)
	}

	if err := s.Delete(ctx, KeyCaloriesGoal, KeyFatsGoal); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, KeyCaloriesGoal); ok {
		t.Fatalf("Get after Delete: still set")
	}

	if len(n.calls) != 3 {
		t.Fatalf("notifications: want 3 got %d (%v)", len(n.calls), n.calls)
	}
	if len(n.calls[0]) != 2 || n.calls[0][0] != KeyCaloriesGoal || n.calls[0][1] != KeyFatsGoal {
		t.Fatalf("first notification: %v", n.calls[0])
	}
}

func TestDBStore(t *testing.T) {
	n := &recordingNotifier{}
	exerciseStore(t, NewDBStore(testutil.DB(t), n, testutil.Logger(t)), n)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis preference store tests")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	defer rdb.Close()
	hash := "foodyou:test:prefs:" + time.Now().Format("150405.000000")
	defer rdb.Del(context.Background(), hash)

	n := &recordingNotifier{}
	exerciseStore(t, NewRedisStore(rdb, hash, n, testutil.Logger(t)), n)
}

func TestBoolDefaults(t *testing.T) {
	values := map[string]string{KeyTimeBasedSorting: "true", KeyIncludeAllDayMeals: "garbage"}
	if !Bool(values, KeyTimeBasedSorting, false) {
		t.Fatalf("expected true")
	}
	if Bool(values, KeyIncludeAllDayMeals, false) {
		t.Fatalf("unparsable value should fall back to default")
	}
	if !Bool(values, KeySelectedDate, true) {
		t.Fatalf("missing key should fall back to default")
	}
}
