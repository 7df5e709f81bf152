package mocks

import (
	"context"
	"sync"

	"hotel/infras/otel"
)

// Recorder is an in-memory otel.Otel. It keeps every scope it opens so tests can inspect them.
type Recorder struct {
	mu     sync.Mutex
	scopes []*Scope
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	scope := NewScope(spanName)

	r.mu.Lock()
	r.scopes = append(r.scopes, scope)
	r.mu.Unlock()

	return ctx, scope
}

// Scopes returns the scopes opened so far in order.
func (r *Recorder) Scopes() []*Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*Scope(nil), r.scopes...)
}
