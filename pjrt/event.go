package pjrt

import (
	"context"
	"unsafe"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

// Event wraps a raw PJRT_Event for the synchronous wait path: await,
// check completion status, then destroy unconditionally.
// An Event is consumed exactly once, by Wait or by being handed to
// newFuture — never both.
type Event struct {
	ctx     *Context
	handle  unsafe.Pointer
	spentOn string
}

func newEvent(ctx *Context, handle unsafe.Pointer) *Event {
	return &Event{ctx: ctx, handle: handle}
}

// Wait blocks until the event resolves, surfaces any completion error, and
// always destroys the underlying PJRT_Event.
func (e *Event) Wait() error {
	if e.spentOn != "" {
		panic("pjrt: Event already consumed by " + e.spentOn)
	}
	e.spentOn = "Wait"
	if e.handle == nil {
		return nil
	}
	if err := pjrtabi.EventWait(e.ctx.api, e.handle); err != nil {
		return wrapCall("Event.Wait", err)
	}
	return nil
}

// futureResult carries either a value or an error across the callback ->
// channel bridge, never both.
type futureResult[T any] struct {
	value T
	err   error
}

// Future is the Go counterpart to CallbackUserData<T>/std::future<T>: a
// single-fulfillment, single-read channel bridging the plugin's async
// completion callback back into ordinary goroutine-blocking code.
type Future[T any] struct {
	ch   chan futureResult[T]
	spent bool
}

// newFuture registers an OnReady callback on eventHandle. When the event
// resolves without error, produce is called to materialize the value
// (e.g. reading a device buffer's freshly-written host bytes); produce
// runs on the plugin's callback thread and must not block.
func newFuture[T any](ctx *Context, eventHandle unsafe.Pointer, produce func() (T, error)) *Future[T] {
	f := &Future[T]{ch: make(chan futureResult[T], 1)}
	if eventHandle == nil {
		value, err := produce()
		f.ch <- futureResult[T]{value: value, err: err}
		return f
	}
	err := pjrtabi.EventOnReady(ctx.api, eventHandle, func(completionErr error) {
		if completionErr != nil {
			var zero T
			f.ch <- futureResult[T]{value: zero, err: wrapCall("Future.OnReady", completionErr)}
			return
		}
		value, produceErr := produce()
		f.ch <- futureResult[T]{value: value, err: produceErr}
	})
	if err != nil {
		var zero T
		f.ch <- futureResult[T]{value: zero, err: wrapCall("Future.OnReady", err)}
	}
	return f
}

// readyFuture builds a Future that is already resolved, for call sites
// that have the value in hand synchronously (e.g. a zero-size transfer).
func readyFuture[T any](value T, err error) *Future[T] {
	f := &Future[T]{ch: make(chan futureResult[T], 1)}
	f.ch <- futureResult[T]{value: value, err: err}
	return f
}

// Get blocks until the future resolves or ctx is cancelled. Cancellation
// only abandons the wait: the underlying PJRT operation keeps running to
// completion and cannot itself be cancelled at this layer. A Future may
// only be read once.
func (f *Future[T]) Get(ctx context.Context) (T, error) {
	if f.spent {
		var zero T
		return zero, stateError("Future.Get", "future already consumed")
	}
	select {
	case r := <-f.ch:
		f.spent = true
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, newError(StateError, "Future.Get", ctx.Err())
	}
}
