package ban

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, strikes int) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewStore(rdb, strikes, time.Minute), mr
}

func TestStore_StrikeBansAfterLimit(t *testing.T) {
	s, _ := newTestStore(t, 3)
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		banned, err := s.Strike(ctx, "10.0.0.1", "/login")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if banned {
			t.Fatalf("expected no ban after %d strikes", i)
		}
	}

	banned, err := s.Strike(ctx, "10.0.0.1", "/login")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !banned {
		t.Fatal("expected ban on third strike")
	}

	isBanned, err := s.IsBanned(ctx, "10.0.0.1")
	if err != nil || !isBanned {
		t.Errorf("expected target to be banned, got %v (err %v)", isBanned, err)
	}
	isBanned, _ = s.IsBanned(ctx, "10.0.0.2")
	if isBanned {
		t.Error("expected other target not to be banned")
	}
}

func TestStore_BanExpires(t *testing.T) {
	s, mr := newTestStore(t, 1)
	ctx := context.Background()

	if _, err := s.Strike(ctx, "10.0.0.1", "/login"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	isBanned, _ := s.IsBanned(ctx, "10.0.0.1")
	if isBanned {
		t.Error("expected ban to expire")
	}
}

func TestStore_DrainDailyLog(t *testing.T) {
	s, _ := newTestStore(t, 1)
	ctx := context.Background()

	s.Strike(ctx, "10.0.0.1", "/login")
	s.Strike(ctx, "10.0.0.2", "/login")
	s.Strike(ctx, "10.0.0.1", "/refresh")

	summary, err := s.DrainDailyLog(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 3 {
		t.Errorf("expected 3 entries, got %d", summary.Total)
	}
	if summary.ByRoute["/login"] != 2 {
		t.Errorf("expected 2 bans on /login, got %d", summary.ByRoute["/login"])
	}
	if summary.ByTarget["10.0.0.1"] != 2 {
		t.Errorf("expected 2 bans for 10.0.0.1, got %d", summary.ByTarget["10.0.0.1"])
	}

	again, err := s.DrainDailyLog(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Total != 0 {
		t.Errorf("expected log to be cleared, got %d entries", again.Total)
	}

	s.LogDailySummary(ctx, zap.NewNop())
}
