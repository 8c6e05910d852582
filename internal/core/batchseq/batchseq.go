// Package batchseq orders request batches per client session
//
// Each batch carries a monotonic sequence number. Starting a newer batch
// cancels the previous one for the same session, and a batch that is no
// longer the latest when it finishes is reported as superseded so its
// results are dropped instead of overwriting newer ones.
//
// Ordering only holds while a session is tracked. A session idle past
// Options.Idle with nothing in flight is forgotten, and a client returning
// after that starts over: any sequence it sends is accepted as the first.
package batchseq

import (
	"context"
	"errors"
	"sync"
	"time"

	perr "posdash/internal/platform/errors"
)

// ErrSuperseded marks a batch that lost to a newer one
var ErrSuperseded = perr.New(perr.ErrorCodeConflict, "superseded by a newer request")

const (
	defaultIdle        = 10 * time.Minute
	defaultMaxSessions = 4096
)

// Options tune a Tracker
type Options struct {
	// Idle is how long a finished session is remembered
	Idle time.Duration
	// MaxSessions triggers a sweep of idle sessions when exceeded
	MaxSessions int
	// Now is the clock, time.Now when nil
	Now func() time.Time
}

// Tracker holds the latest sequence per session
// Safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*session
	opt      Options
}

type session struct {
	latest uint64
	cancel context.CancelCauseFunc
	seen   time.Time
}

// New returns a Tracker
func New(opt Options) *Tracker {
	if opt.Idle <= 0 {
		opt.Idle = defaultIdle
	}
	if opt.MaxSessions <= 0 {
		opt.MaxSessions = defaultMaxSessions
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Tracker{sessions: map[string]*session{}, opt: opt}
}

// Ticket is one started batch
type Ticket struct {
	Session string
	Seq     uint64

	ctx    context.Context
	cancel context.CancelCauseFunc
	t      *Tracker
}

// Context is cancelled with ErrSuperseded when a newer batch starts
func (tk *Ticket) Context() context.Context { return tk.ctx }

// Begin starts a batch for session
//
// seq zero asks the tracker to assign the next number. A client seq at or
// below the latest one seen is rejected with ErrSuperseded. An empty session
// disables ordering and the ticket is always current.
func (t *Tracker) Begin(ctx context.Context, sessionID string, seq uint64) (*Ticket, error) {
	c, cancel := context.WithCancelCause(ctx)
	if sessionID == "" {
		return &Ticket{Seq: seq, ctx: c, cancel: cancel, t: t}, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.sessions[sessionID]
	if !ok {
		t.sweepLocked()
		s = &session{}
		t.sessions[sessionID] = s
	}
	if seq == 0 {
		seq = s.latest + 1
	} else if seq <= s.latest {
		cancel(ErrSuperseded)
		return nil, perr.Wrapf(ErrSuperseded, perr.ErrorCodeConflict, "stale sequence %d, latest is %d", seq, s.latest)
	}
	if s.cancel != nil {
		s.cancel(ErrSuperseded)
	}
	s.latest = seq
	s.cancel = cancel
	s.seen = t.opt.Now()

	return &Ticket{Session: sessionID, Seq: seq, ctx: c, cancel: cancel, t: t}, nil
}

// Current reports whether tk is still the latest batch for its session
func (tk *Ticket) Current() bool {
	if tk.Session == "" {
		return true
	}
	tk.t.mu.Lock()
	defer tk.t.mu.Unlock()
	s, ok := tk.t.sessions[tk.Session]
	return ok && s.latest == tk.Seq
}

// Finish releases the ticket and folds ordering into err
// A batch that is no longer current returns ErrSuperseded whatever err was.
func (tk *Ticket) Finish(err error) error {
	current := true
	if tk.Session != "" {
		tk.t.mu.Lock()
		s, ok := tk.t.sessions[tk.Session]
		current = ok && s.latest == tk.Seq
		if current {
			s.cancel = nil
			s.seen = tk.t.opt.Now()
		}
		tk.t.mu.Unlock()
	}

	cause := context.Cause(tk.ctx)
	tk.cancel(nil)

	if !current || errors.Is(cause, ErrSuperseded) {
		return ErrSuperseded
	}
	return err
}

// Latest returns the newest sequence seen for session
func (t *Tracker) Latest(sessionID string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.sessions[sessionID]; ok {
		return s.latest
	}
	return 0
}

// Len is the number of remembered sessions
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Sweep forgets idle sessions with nothing in flight
func (t *Tracker) Sweep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.forgetIdleLocked()
}

func (t *Tracker) sweepLocked() {
	if len(t.sessions) < t.opt.MaxSessions {
		return
	}
	t.forgetIdleLocked()
}

func (t *Tracker) forgetIdleLocked() {
	cutoff := t.opt.Now().Add(-t.opt.Idle)
	for id, s := range t.sessions {
		if s.cancel == nil && s.seen.Before(cutoff) {
			delete(t.sessions, id)
		}
	}
}
