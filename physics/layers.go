package physics

import "github.com/lixenwraith/rigid2d/constants"

// LayerMask filters queries by collision layer. Bit i admits layer i
type LayerMask uint32

// LayerMaskAll admits every layer
const LayerMaskAll = LayerMask(^uint32(0))

// MaskOf builds a mask admitting exactly the given layers
func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << uint(clampLayer(l))
	}
	return m
}

// Admits reports whether the mask admits the given layer
func (m LayerMask) Admits(layer int) bool {
	return m&(1<<uint(clampLayer(layer))) != 0
}

// LayerMatrix is the symmetric table declaring which layer pairs may
// collide. Row i is a bitmask of the layers that interact with layer i.
// The zero value blocks everything; NewLayerMatrix allows everything
type LayerMatrix struct {
	rows [constants.MaxLayers]uint32
}

// NewLayerMatrix returns a matrix with every pair colliding
func NewLayerMatrix() LayerMatrix {
	var m LayerMatrix
	for i := range m.rows {
		m.rows[i] = ^uint32(0)
	}
	return m
}

// Set declares whether layers a and b interact. Symmetric; out-of-range
// layers are clamped into [0, MaxLayers)
func (m *LayerMatrix) Set(a, b int, collide bool) {
	a = clampLayer(a)
	b = clampLayer(b)
	if collide {
		m.rows[a] |= 1 << uint(b)
		m.rows[b] |= 1 << uint(a)
	} else {
		m.rows[a] &^= 1 << uint(b)
		m.rows[b] &^= 1 << uint(a)
	}
}

// ShouldCollide reports whether layers a and b interact
func (m *LayerMatrix) ShouldCollide(a, b int) bool {
	return m.rows[clampLayer(a)]&(1<<uint(clampLayer(b))) != 0
}

// clampLayer forces a layer index into the valid range, part of the
// clamp-never-fail configuration error policy
func clampLayer(layer int) int {
	if layer < 0 {
		return 0
	}
	if layer >= constants.MaxLayers {
		return constants.MaxLayers - 1
	}
	return layer
}
