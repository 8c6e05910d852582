// Package net carries request scoped values and the response envelope
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey uint8

const (
	keySessionID ctxKey = iota
	keySessionSeq
)

// WithRequest stores reqID under chi's key so chimw.GetReqID sees it too
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// WithSession stores the dashboard tab's session id and the request's sequence number
// A zero seq means the client did not number the request.
func WithSession(ctx context.Context, sessionID string, seq uint64) context.Context {
	if sessionID != "" {
		ctx = context.WithValue(ctx, keySessionID, sessionID)
	}
	if seq > 0 {
		ctx = context.WithValue(ctx, keySessionSeq, seq)
	}
	return ctx
}

func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

func SessionID(ctx context.Context) string {
	s, _ := ctx.Value(keySessionID).(string)
	return s
}

// SessionSeq is 0 when the client sent none
func SessionSeq(ctx context.Context) uint64 {
	n, _ := ctx.Value(keySessionSeq).(uint64)
	return n
}
