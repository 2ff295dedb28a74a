package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/propnet/internal/network"
)

func TestMarshalCanonical_SortedKeys(t *testing.T) {
	enc, err := marshalCanonical(map[string]string{
		"zeta":  "1",
		"alpha": "2",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":"2","zeta":"1"}`, string(enc))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	enc, err := marshalCanonical(map[string]string{"k": "<nothing>"})
	require.NoError(t, err)
	assert.Equal(t, `{"k":"<nothing>"}`, string(enc))
}

func TestEventID_UnicodeNormalization(t *testing.T) {
	// "é" composed (U+00E9) vs decomposed (e + U+0301) must hash the same.
	composed := network.Event{Seq: 1, Turn: "t", Type: network.EventCellCreated, Cell: "café"}
	decomposed := network.Event{Seq: 1, Turn: "t", Type: network.EventCellCreated, Cell: "café"}

	id1, err := EventID("net", composed)
	require.NoError(t, err)
	id2, err := EventID("net", decomposed)
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
}
