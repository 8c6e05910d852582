package net_test

import (
	"context"
	"testing"

	pnet "posdash/internal/platform/net"
)

func TestContextValues(t *testing.T) {
	tests := []struct {
		name    string
		reqID   string
		session string
		seq     uint64
	}{
		{"all set", "req-1", "tab-a", 4},
		{"no sequence", "req-2", "tab-b", 0},
		{"nothing", "", "", 0},
	}
	for _, tc := range tests {
		ctx := pnet.WithRequest(context.Background(), tc.reqID)
		ctx = pnet.WithSession(ctx, tc.session, tc.seq)
		if pnet.RequestID(ctx) != tc.reqID || pnet.SessionID(ctx) != tc.session || pnet.SessionSeq(ctx) != tc.seq {
			t.Fatalf("%s: got %q %q %d", tc.name, pnet.RequestID(ctx), pnet.SessionID(ctx), pnet.SessionSeq(ctx))
		}
	}
}
