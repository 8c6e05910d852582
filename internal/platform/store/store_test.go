package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestOpen_RedisOnly(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	s, err := Open(ctx, Config{
		AppName: "posdash-test",
		RDS:     RedisConfig{Enabled: true, URL: "redis://" + mr.Addr() + "/0"},
	}, WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Redis == nil || s.PG != nil || s.CH != nil {
		t.Fatalf("seams PG=%T CH=%T Redis=%v", s.PG, s.CH, s.Redis)
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpen_BadConfigFails(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"redis url", Config{RDS: RedisConfig{Enabled: true, URL: "http://nope"}}},
		{"clickhouse dsn", Config{CH: CHConfig{Enabled: true, URL: "::bad"}}},
		{"postgres url", Config{PG: PGConfig{Enabled: true, URL: "://bad"}}},
		{"first failure wins", Config{PG: PGConfig{Enabled: true, URL: "://bad"}, CH: CHConfig{Enabled: true, URL: "::bad"}}},
	}
	for _, tc := range tests {
		s, err := Open(context.Background(), tc.cfg)
		if err == nil || s != nil {
			t.Fatalf("%s: store=%v err=%v", tc.name, s, err)
		}
	}
}

func TestOpen_NothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil || s == nil {
		t.Fatalf("store=%v err=%v", s, err)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard on empty store: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store: %v", err)
	}
}

type pingTx struct {
	TxRunner
	err error
}

func (p pingTx) Ping(context.Context) error { return p.err }

func TestGuard_PrefixesFailures(t *testing.T) {
	var nilStore *Store
	if err := nilStore.Guard(context.Background()); err == nil {
		t.Fatalf("nil store should fail Guard")
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	s := &Store{
		PG:    pingTx{err: errors.New("boom")},
		CH:    &clickhouseAdapter{inner: &fakeCH{pingErr: errors.New("gone")}},
		Redis: rdb,
	}
	err := s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "pg: boom") || !strings.Contains(err.Error(), "ch: ") {
		t.Fatalf("err=%v", err)
	}
	if strings.Contains(err.Error(), "redis") {
		t.Fatalf("healthy redis reported: %v", err)
	}

	mr.Close()
	s.PG, s.CH = pingTx{}, nil
	if err := s.Guard(context.Background()); err == nil || !strings.HasPrefix(err.Error(), "redis: ") {
		t.Fatalf("redis down err=%v", err)
	}
}
