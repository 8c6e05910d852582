package ch

import (
	"context"
	"testing"

	perr "posdash/internal/platform/errors"
)

func TestOpen_RequiresURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "  "})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestOpen_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{URL: "::not a dsn"})
	if err == nil {
		t.Fatalf("expected dsn parse error")
	}
}

func TestZeroClient_Unavailable(t *testing.T) {
	t.Parallel()

	var cl *CH
	ctx := context.Background()
	if err := cl.Insert(ctx, "t", [][]any{{1}}); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Insert on nil client: %v", err)
	}
	if _, err := cl.Query(ctx, "SELECT 1"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Query on nil client: %v", err)
	}
	if err := cl.Exec(ctx, "SELECT 1"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Exec on nil client: %v", err)
	}
	if err := cl.Ping(ctx); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("Ping on nil client: %v", err)
	}
	if err := cl.Close(); err != nil {
		t.Fatalf("Close on nil client: %v", err)
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	info := BuildClientInfo(" api ", "v1.2.3")
	got := map[string]string{}
	for _, p := range info.Products {
		got[p.Name] = p.Version
	}
	if got["posdash"] != "v1.2.3" || got["role"] != "api" || got["go"] == "" || got["commit"] == "" {
		t.Fatalf("products=%v", got)
	}
	if info := BuildClientInfo("mockpos", ""); info.Products[0].Version != "dev" {
		t.Fatalf("empty tag should fall back to the build version: %+v", info.Products[0])
	}
}
