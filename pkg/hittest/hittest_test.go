package hittest_test

import (
	"testing"

	"github.com/aretw0/wireframe/pkg/hittest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHit_Zones(t *testing.T) {
	e := hittest.NewEngine()
	e.Register(hittest.Box{NodeID: "col", X: 0, Y: 0, W: 100, H: 100, AcceptsChildren: true})

	tests := []struct {
		y    float64
		zone hittest.Zone
	}{
		{0, hittest.ZoneBefore},
		{24.9, hittest.ZoneBefore},
		{25, hittest.ZoneInside},
		{50, hittest.ZoneInside},
		{75, hittest.ZoneInside},
		{75.1, hittest.ZoneAfter},
		{100, hittest.ZoneAfter},
	}
	for _, tt := range tests {
		h, ok := e.Hit(50, tt.y)
		require.True(t, ok, "y=%v", tt.y)
		assert.Equal(t, tt.zone, h.Zone, "y=%v", tt.y)
		assert.Equal(t, "col", h.Box.NodeID)
	}
}

func TestHit_LeafMiddleFallsBackToAfter(t *testing.T) {
	e := hittest.NewEngine()
	e.Register(hittest.Box{NodeID: "txt", X: 0, Y: 0, W: 10, H: 40})
	h, ok := e.Hit(5, 20)
	require.True(t, ok)
	assert.Equal(t, hittest.ZoneAfter, h.Zone)
}

func TestHit_InnermostWins(t *testing.T) {
	e := hittest.NewEngine()
	e.Register(hittest.Box{NodeID: "outer", X: 0, Y: 0, W: 200, H: 200, AcceptsChildren: true})
	e.Register(hittest.Box{NodeID: "inner", Slot: "controls", X: 50, Y: 50, W: 20, H: 20})

	h, ok := e.Hit(60, 52)
	require.True(t, ok)
	assert.Equal(t, "inner", h.Box.NodeID)
	assert.Equal(t, "controls", h.Box.Slot)

	h, ok = e.Hit(150, 150)
	require.True(t, ok)
	assert.Equal(t, "outer", h.Box.NodeID)
}

func TestHit_MissAndClear(t *testing.T) {
	e := hittest.NewEngine()
	_, ok := e.Hit(0, 0)
	assert.False(t, ok)

	e.Register(hittest.Box{NodeID: "a", X: 10, Y: 10, W: 5, H: 5})
	_, ok = e.Hit(9.99, 10)
	assert.False(t, ok)
	assert.Equal(t, 1, e.Len())

	e.Clear()
	assert.Equal(t, 0, e.Len())
	_, ok = e.Hit(12, 12)
	assert.False(t, ok)
}

func TestHit_ZeroHeight(t *testing.T) {
	e := hittest.NewEngine()
	e.Register(hittest.Box{NodeID: "line", X: 0, Y: 10, W: 100, H: 0, AcceptsChildren: true})
	h, ok := e.Hit(50, 10)
	require.True(t, ok)
	assert.Equal(t, hittest.ZoneBefore, h.Zone)
}
