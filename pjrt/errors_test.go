package pjrt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pjrtgo/pjrtgo/pjrtabi"
)

func TestErrorRendersPluginMessage(t *testing.T) {
	cause := &pjrtabi.CallError{Op: "PJRT_Buffer_Destroy", Message: "device busy"}
	err := wrapCall("Buffer.Destroy", cause)
	require.Error(t, err)

	var pjrtErr *Error
	require.True(t, errors.As(err, &pjrtErr))
	assert.Equal(t, PluginAPIError, pjrtErr.Kind)
	assert.Equal(t, "Buffer.Destroy failed. Error: PJRT_Buffer_Destroy failed. Error: device busy", pjrtErr.Error())
}

func TestWrapCallNilIsNil(t *testing.T) {
	assert.Nil(t, wrapCall("Whatever", nil))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := newError(StateError, "Context.Destroy", cause)
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "PluginLoadError", PluginLoadError.String())
	assert.Equal(t, "InvalidArgument", InvalidArgument.String())
}
