package component

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxLayerBits is the number of independent collision categories.
const MaxLayerBits = 32

// SetBit turns a single bit of a layer or mask on or off. Bits outside
// [0, MaxLayerBits) are ignored.
func SetBit(layer *uint32, bit int, value bool) {
	if layer == nil || bit < 0 || bit >= MaxLayerBits {
		return
	}
	if value {
		*layer |= 1 << uint(bit)
	} else {
		*layer &^= 1 << uint(bit)
	}
}

// Bit reports whether bit is set in layer.
func Bit(layer uint32, bit int) bool {
	if bit < 0 || bit >= MaxLayerBits {
		return false
	}
	return layer&(1<<uint(bit)) != 0
}

// LayerOf ORs the given bits into a layer value.
func LayerOf(bits ...int) uint32 {
	var layer uint32
	for _, bit := range bits {
		SetBit(&layer, bit, true)
	}
	return layer
}

// Named layer bits used by prefabs and the demo.
const (
	LayerWorld = iota
	LayerPlayer
	LayerEnemy
	LayerPickup
	LayerHazard
)

var ErrUnknownLayer = errors.New("layer: unknown name")

var layerNames = map[string]int{
	"world":  LayerWorld,
	"player": LayerPlayer,
	"enemy":  LayerEnemy,
	"pickup": LayerPickup,
	"hazard": LayerHazard,
}

// ParseLayers turns layer names (or decimal bit indices) into a bit set.
func ParseLayers(names []string) (uint32, error) {
	var layer uint32
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		bit, ok := layerNames[key]
		if !ok {
			n, err := strconv.Atoi(key)
			if err != nil || n < 0 || n >= MaxLayerBits {
				return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
			}
			bit = n
		}
		SetBit(&layer, bit, true)
	}
	return layer, nil
}
