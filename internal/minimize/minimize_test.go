package minimize

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/ledge/internal/geometry"
)

type forwardCall struct {
	output string
	rect   geometry.Rect
}

func newTestTracker() (*Tracker, *[]forwardCall) {
	calls := &[]forwardCall{}
	fwd := ForwarderFunc(func(output string, rect geometry.Rect) {
		*calls = append(*calls, forwardCall{output: output, rect: rect})
	})
	return NewTracker(fwd, zerolog.Nop()), calls
}

func TestNominateForwardsChanges(t *testing.T) {
	tracker, calls := newTestTracker()
	inst := uuid.New()
	rect := geometry.NewRect(10, 4, 40, 40)

	tracker.Nominate("DP-1", inst, rect, 0)
	require.Len(t, *calls, 1)
	assert.Equal(t, "DP-1", (*calls)[0].output)
	assert.Equal(t, rect, (*calls)[0].rect)

	// identical nomination is not re-forwarded
	tracker.Nominate("DP-1", inst, rect, 0)
	assert.Len(t, *calls, 1)

	// the holder moving its target is forwarded
	moved := geometry.NewRect(50, 4, 40, 40)
	tracker.Nominate("DP-1", inst, moved, 0)
	require.Len(t, *calls, 2)
	assert.Equal(t, moved, (*calls)[1].rect)
}

func TestNominatePriority(t *testing.T) {
	tracker, calls := newTestTracker()
	bar := uuid.New()
	dock := uuid.New()

	tracker.Nominate("DP-1", bar, geometry.NewRect(0, 0, 40, 40), 0)
	require.Len(t, *calls, 1)

	// an equal-priority rival does not displace the holder
	tracker.Nominate("DP-1", dock, geometry.NewRect(100, 0, 48, 48), 0)
	cur, ok := tracker.Current("DP-1")
	require.True(t, ok)
	assert.Equal(t, geometry.NewRect(0, 0, 40, 40), cur)

	// a higher-priority panel does
	tracker.Nominate("DP-1", dock, geometry.NewRect(100, 0, 48, 48), 1)
	cur, _ = tracker.Current("DP-1")
	assert.Equal(t, geometry.NewRect(100, 0, 48, 48), cur)
	assert.Len(t, *calls, 2)

	// and a lower-priority one cannot take it back
	tracker.Nominate("DP-1", bar, geometry.NewRect(0, 0, 40, 40), 0)
	cur, _ = tracker.Current("DP-1")
	assert.Equal(t, geometry.NewRect(100, 0, 48, 48), cur)
}

func TestReleaseFreesOutputs(t *testing.T) {
	tracker, calls := newTestTracker()
	inst := uuid.New()
	tracker.Nominate("DP-1", inst, geometry.NewRect(0, 0, 40, 40), 1)
	tracker.Nominate("DP-2", inst, geometry.NewRect(0, 0, 40, 40), 1)
	require.Len(t, *calls, 2)

	tracker.Release(inst)
	_, ok := tracker.Current("DP-1")
	assert.False(t, ok)
	_, ok = tracker.Current("DP-2")
	assert.False(t, ok)
	// releases forward an empty rect for each held output
	assert.Len(t, *calls, 4)

	// a lower-priority panel can now claim the slot
	other := uuid.New()
	tracker.Nominate("DP-1", other, geometry.NewRect(5, 5, 20, 20), 0)
	cur, ok := tracker.Current("DP-1")
	require.True(t, ok)
	assert.Equal(t, geometry.NewRect(5, 5, 20, 20), cur)
}

func TestDropOutput(t *testing.T) {
	tracker, _ := newTestTracker()
	inst := uuid.New()
	tracker.Nominate("DP-1", inst, geometry.NewRect(0, 0, 40, 40), 0)

	tracker.DropOutput("DP-1")
	_, ok := tracker.Current("DP-1")
	assert.False(t, ok)
}
