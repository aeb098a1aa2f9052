// Package chflow holds context-aware channel helpers for stream producers and
// consumers. Both helpers report why they stopped: a closed channel or the
// cancellation cause of the context, so a consumer can tell a finished stream
// from a superseded or canceled one.
package chflow

import (
	"context"
	"errors"
)

// ErrClosed is returned by Receive once the channel is closed and drained.
var ErrClosed = errors.New("channel closed")

// Receive returns the next value from ch.
//
// Returns:
//   - The value and nil on success.
//   - ErrClosed when ch is closed and drained.
//   - context.Cause(ctx) when ctx is done first.
func Receive[T any](ctx context.Context, ch <-chan T) (T, error) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, context.Cause(ctx)
	case v, ok := <-ch:
		if !ok {
			return zero, ErrClosed
		}
		return v, nil
	}
}

// Send delivers v on ch. It returns context.Cause(ctx) when ctx is done before
// a receiver takes the value.
func Send[T any](ctx context.Context, ch chan<- T, v T) error {
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case ch <- v:
		return nil
	}
}
