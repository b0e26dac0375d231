package pjrt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyFutureResolvesImmediately(t *testing.T) {
	f := readyFuture(42, nil)
	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestReadyFutureCarriesError(t *testing.T) {
	want := errors.New("boom")
	f := readyFuture(0, want)
	_, err := f.Get(context.Background())
	assert.ErrorIs(t, err, want)
}

func TestFutureGetSecondReadFails(t *testing.T) {
	f := readyFuture("ok", nil)
	_, err := f.Get(context.Background())
	require.NoError(t, err)

	_, err = f.Get(context.Background())
	require.Error(t, err)
	var pjrtErr *Error
	require.True(t, errors.As(err, &pjrtErr))
	assert.Equal(t, StateError, pjrtErr.Kind)
}

func TestFutureGetRespectsCancellation(t *testing.T) {
	f := &Future[int]{ch: make(chan futureResult[int])}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Get(ctx)
	require.Error(t, err)
	var pjrtErr *Error
	require.True(t, errors.As(err, &pjrtErr))
	assert.Equal(t, StateError, pjrtErr.Kind)
}
