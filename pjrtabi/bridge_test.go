package pjrtabi

import (
	"runtime/cgo"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCallbackBridgeReleaseBalancesCreate exercises the bookkeeping
// EventOnReady relies on: every newCallbackBridge must be matched by
// exactly one releaseCallbackBridge, whether or not the registered
// callback ever actually runs. This is what makes "drop a Future without
// calling Get()" leak-safe: EventOnReady's registration-failure path and
// go_pjrt_event_on_ready's success path both route through
// releaseCallbackBridge, so activeCallbackBridges always returns to zero.
func TestCallbackBridgeReleaseBalancesCreate(t *testing.T) {
	before := ActiveCallbackBridges()

	fired := false
	h := newCallbackBridge(func() { fired = true })
	assert.Equal(t, before+1, ActiveCallbackBridges(), "handle registration must be counted")

	releaseCallbackBridge(h)
	assert.Equal(t, before, ActiveCallbackBridges(), "release must return the counter to its prior value")
	assert.False(t, fired, "releasing a handle must not invoke the callback itself")
}

// TestCallbackBridgeManyOutstanding confirms the counter tracks several
// concurrently-registered bridges independently, the way a caller that
// abandons one Future while another is still pending would.
func TestCallbackBridgeManyOutstanding(t *testing.T) {
	before := ActiveCallbackBridges()

	const n = 5
	handles := make([]cgo.Handle, 0, n)
	for i := 0; i < n; i++ {
		handles = append(handles, newCallbackBridge(func() {}))
	}
	assert.Equal(t, before+int64(n), ActiveCallbackBridges())

	for _, h := range handles {
		releaseCallbackBridge(h)
	}
	assert.Equal(t, before, ActiveCallbackBridges())
}
