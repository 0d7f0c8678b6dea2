package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurstCoalescesToLastValue(t *testing.T) {
	t.Parallel()

	d := New(30 * time.Millisecond)
	t.Cleanup(d.Stop)

	var (
		mu    sync.Mutex
		calls int
		last  string
	)

	for _, value := range []string{"j", "ja", "jan", "jane", "jane "} {
		v := value
		d.Trigger("hosts", func() {
			mu.Lock()
			calls++
			last = v
			mu.Unlock()
		})
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls > 0
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
	assert.Equal(t, "jane ", last)
}

func TestKeysAreIndependent(t *testing.T) {
	t.Parallel()

	d := New(10 * time.Millisecond)
	t.Cleanup(d.Stop)

	var hosts, cars atomic.Int32
	d.Trigger("hosts", func() { hosts.Add(1) })
	d.Trigger("cars", func() { cars.Add(1) })

	require.Eventually(t, func() bool {
		return hosts.Load() == 1 && cars.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCancelAndStop(t *testing.T) {
	t.Parallel()

	d := New(10 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger("hosts", func() { fired.Add(1) })
	d.Cancel("hosts")

	d.Trigger("cars", func() { fired.Add(1) })
	d.Stop()
	d.Trigger("clients", func() { fired.Add(1) })

	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, fired.Load())
}
