package ban

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	DailyBanLogKey = "ratelimit:banlog:daily"
	strikesPrefix  = "ratelimit:strikes:"
	banPrefix      = "ratelimit:ban:"
)

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

type Summary struct {
	Total    int            `json:"total"`
	ByRoute  map[string]int `json:"by_route"`
	ByTarget map[string]int `json:"by_target"`
	Entries  []BanLogEntry  `json:"entries"`
}

// Store counts rate-limit strikes per client and bans clients that collect too many.
type Store struct {
	rdb        *redis.Client
	maxStrikes int
	banFor     time.Duration
}

func NewStore(rdb *redis.Client, maxStrikes int, banFor time.Duration) *Store {
	return &Store{rdb: rdb, maxStrikes: maxStrikes, banFor: banFor}
}

func (s *Store) IsBanned(ctx context.Context, target string) (bool, error) {
	n, err := s.rdb.Exists(ctx, banPrefix+target).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Strike records a limited request. It reports true when the strike triggered a ban.
func (s *Store) Strike(ctx context.Context, target, route string) (bool, error) {
	key := strikesPrefix + target
	strikes, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if strikes == 1 {
		if err := s.rdb.Expire(ctx, key, s.banFor).Err(); err != nil {
			return false, err
		}
	}
	if int(strikes) < s.maxStrikes {
		return false, nil
	}

	entry, err := json.Marshal(BanLogEntry{Target: target, Route: route, Strikes: int(strikes), Time: time.Now().UTC()})
	if err != nil {
		return false, err
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, banPrefix+target, route, s.banFor)
		pipe.Del(ctx, key)
		pipe.RPush(ctx, DailyBanLogKey, entry)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("banning %s: %w", target, err)
	}
	return true, nil
}

// DrainDailyLog reads and clears the ban log.
func (s *Store) DrainDailyLog(ctx context.Context) (Summary, error) {
	summary := Summary{ByRoute: map[string]int{}, ByTarget: map[string]int{}}

	var items *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, DailyBanLogKey, 0, -1)
		pipe.Del(ctx, DailyBanLogKey)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return summary, err
	}

	for _, item := range items.Val() {
		var entry BanLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		summary.Entries = append(summary.Entries, entry)
		summary.ByRoute[entry.Route]++
		summary.ByTarget[entry.Target]++
	}
	summary.Total = len(summary.Entries)
	return summary, nil
}

// LogDailySummary drains the ban log and writes the report through log.
func (s *Store) LogDailySummary(ctx context.Context, log *zap.Logger) {
	summary, err := s.DrainDailyLog(ctx)
	if err != nil {
		log.Error("Failed to read daily ban log", zap.Error(err))
		return
	}
	if summary.Total == 0 {
		return
	}

	targets := make([]string, 0, len(summary.ByTarget))
	for target := range summary.ByTarget {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	log.Warn("Daily ban summary",
		zap.Int("total", summary.Total),
		zap.Any("by_route", summary.ByRoute),
		zap.Strings("targets", targets),
	)
}
