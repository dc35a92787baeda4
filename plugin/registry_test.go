package plugin_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/garage/id"
	"github.com/xraph/garage/plugin"
	"github.com/xraph/garage/spot"
)

type recorder struct {
	name string

	mu     sync.Mutex
	events []string
	fail   bool
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) add(event string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	if r.fail {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) OnInit(context.Context, id.GarageID) error { return r.add("init") }

func (r *recorder) OnCarCheckedIn(_ context.Context, _ id.GarageID, s *spot.Spot) error {
	return r.add("in:" + s.LicensePlate)
}

func (r *recorder) OnGarageFull(context.Context, id.GarageID, int) error { return r.add("full") }

type blocker struct {
	returned chan struct{}
}

func (blocker) Name() string { return "blocker" }

func (b blocker) OnCarCheckedIn(ctx context.Context, _ id.GarageID, _ *spot.Spot) error {
	<-ctx.Done()
	close(b.returned)
	return ctx.Err()
}

func newRegistry() *plugin.Registry {
	return plugin.NewRegistry().WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterCachesHooks(t *testing.T) {
	r := newRegistry()
	rec := &recorder{name: "rec"}
	require.NoError(t, r.Register(rec))

	ctx := context.Background()
	gid := id.NewGarageID()
	r.EmitInit(ctx, gid)
	r.EmitCarCheckedIn(ctx, gid, &spot.Spot{LicensePlate: "HAI"})
	r.EmitGarageFull(ctx, gid, 1)
	r.EmitShutdown(ctx, gid) // rec has no OnShutdown

	assert.Equal(t, []string{"init", "in:HAI", "full"}, rec.events)
	assert.Equal(t, 1, r.Count())
	assert.Same(t, rec, r.Get("rec"))
	assert.Nil(t, r.Get("missing"))
	assert.Len(t, r.List(), 1)
}

func TestRegisterRejectsDuplicateNames(t *testing.T) {
	r := newRegistry()
	require.NoError(t, r.Register(&recorder{name: "rec"}))
	assert.Error(t, r.Register(&recorder{name: "rec"}))
	assert.Equal(t, 1, r.Count())
}

func TestFailingHookDoesNotStopDispatch(t *testing.T) {
	r := newRegistry()
	first := &recorder{name: "first", fail: true}
	second := &recorder{name: "second"}
	require.NoError(t, r.Register(first))
	require.NoError(t, r.Register(second))

	r.EmitCarCheckedIn(context.Background(), id.NewGarageID(), &spot.Spot{LicensePlate: "X"})

	assert.Equal(t, []string{"in:X"}, first.events)
	assert.Equal(t, []string{"in:X"}, second.events)
}

func TestHookTimeout(t *testing.T) {
	r := newRegistry().WithTimeout(20 * time.Millisecond)
	b := blocker{returned: make(chan struct{})}
	require.NoError(t, r.Register(b))

	// The caller's context stays live, so only the hook timeout can release
	// the blocked hook.
	ctx := context.Background()

	start := time.Now()
	r.EmitCarCheckedIn(ctx, id.NewGarageID(), &spot.Spot{LicensePlate: "X"})
	assert.Less(t, time.Since(start), 2*time.Second)

	select {
	case <-b.returned:
	case <-time.After(2 * time.Second):
		t.Fatal("timed-out hook was never cancelled")
	}
}
