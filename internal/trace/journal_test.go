package trace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/propnet/internal/network"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.db")
	j, err := Open(path, "test-net")
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func sampleEvents() []network.Event {
	return []network.Event{
		{Seq: 1, Turn: "turn-1", Type: network.EventCellCreated, Cell: "a"},
		{Seq: 2, Turn: "turn-1", Type: network.EventCellUpdated, Cell: "a", Old: "<nothing>", New: "3"},
		{Seq: 3, Turn: "turn-1", Type: network.EventPropagatorFired, Propagator: "adder", Wiring: []string{"a", "b", "total"}},
		{Seq: 4, Turn: "turn-1", Type: network.EventCellUpdated, Cell: "total", Old: "<nothing>", New: "15"},
	}
}

func TestJournal_AppendAndReadBack(t *testing.T) {
	j := openTestJournal(t)

	for _, ev := range sampleEvents() {
		require.NoError(t, j.Append(ev))
	}

	events, err := j.ReadEvents()
	require.NoError(t, err)
	require.Len(t, events, 4)

	assert.Equal(t, int64(1), events[0].Seq)
	assert.Equal(t, network.EventCellCreated, events[0].Type)
	assert.Equal(t, "a", events[0].Cell)

	assert.Equal(t, "15", events[3].New)
	assert.Equal(t, []string{"a", "b", "total"}, events[2].Wiring)
}

func TestJournal_AppendIsIdempotent(t *testing.T) {
	j := openTestJournal(t)

	ev := network.Event{Seq: 1, Turn: "turn-1", Type: network.EventCellCreated, Cell: "a"}
	require.NoError(t, j.Append(ev))
	require.NoError(t, j.Append(ev))

	events, err := j.ReadEvents()
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestJournal_ReadEventsOfType(t *testing.T) {
	j := openTestJournal(t)

	for _, ev := range sampleEvents() {
		require.NoError(t, j.Append(ev))
	}

	updates, err := j.ReadEventsOfType(network.EventCellUpdated)
	require.NoError(t, err)
	require.Len(t, updates, 2)
	assert.Equal(t, "a", updates[0].Cell)
	assert.Equal(t, "total", updates[1].Cell)

	none, err := j.ReadEventsOfType(network.EventContradiction)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJournal_Summary(t *testing.T) {
	j := openTestJournal(t)

	for _, ev := range sampleEvents() {
		require.NoError(t, j.Append(ev))
	}

	summary, err := j.Summary()
	require.NoError(t, err)
	assert.Equal(t, map[network.EventType]int{
		network.EventCellCreated:     1,
		network.EventCellUpdated:     2,
		network.EventPropagatorFired: 1,
	}, summary)
}

func TestJournal_RecordImplementsRecorder(t *testing.T) {
	j := openTestJournal(t)

	var r network.Recorder = j
	r.Record(network.Event{Seq: 1, Turn: "turn-1", Type: network.EventCellCreated, Cell: "a"})

	require.NoError(t, j.Err())
	events, err := j.ReadEvents()
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestJournal_OpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	j1, err := Open(path, "test-net")
	require.NoError(t, err)
	require.NoError(t, j1.Append(network.Event{Seq: 1, Turn: "t", Type: network.EventCellCreated, Cell: "a"}))
	require.NoError(t, j1.Close())

	j2, err := Open(path, "test-net")
	require.NoError(t, err)
	defer j2.Close()

	events, err := j2.ReadEvents()
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestJournal_SecondSessionRestartsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	j1, err := Open(path, "test-net")
	require.NoError(t, err)
	require.NoError(t, j1.Append(network.Event{Seq: 1, Turn: "turn-A", Type: network.EventCellCreated, Cell: "a"}))
	require.NoError(t, j1.Append(network.Event{Seq: 2, Turn: "turn-A", Type: network.EventCellUpdated, Cell: "a", New: "3"}))
	require.NoError(t, j1.Close())

	// A fresh session restarts its logical clock at 1. Its events carry a
	// different turn token and different content ids, so they append
	// alongside the first session's rather than colliding with it.
	j2, err := Open(path, "test-net")
	require.NoError(t, err)
	defer j2.Close()
	require.NoError(t, j2.Append(network.Event{Seq: 1, Turn: "turn-B", Type: network.EventCellCreated, Cell: "b"}))

	events, err := j2.ReadEvents()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "turn-A", events[0].Turn)
	assert.Equal(t, "turn-B", events[1].Turn)
	assert.Equal(t, int64(1), events[1].Seq)
	require.NoError(t, j2.Err())
}

func TestJournal_NetworksAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.db")

	j1, err := Open(path, "net-one")
	require.NoError(t, err)
	defer j1.Close()
	require.NoError(t, j1.Append(network.Event{Seq: 1, Turn: "t", Type: network.EventCellCreated, Cell: "a"}))

	j2, err := Open(path, "net-two")
	require.NoError(t, err)
	defer j2.Close()

	events, err := j2.ReadEvents()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventID_Deterministic(t *testing.T) {
	ev := network.Event{Seq: 7, Turn: "turn-1", Type: network.EventCellUpdated, Cell: "a", New: "3"}

	id1, err := EventID("test-net", ev)
	require.NoError(t, err)
	id2, err := EventID("test-net", ev)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64) // hex sha256
}

func TestEventID_SensitiveToFields(t *testing.T) {
	ev := network.Event{Seq: 7, Turn: "turn-1", Type: network.EventCellUpdated, Cell: "a", New: "3"}

	base, err := EventID("test-net", ev)
	require.NoError(t, err)

	otherNet, err := EventID("other-net", ev)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherNet)

	ev.New = "4"
	otherValue, err := EventID("test-net", ev)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherValue)
}
