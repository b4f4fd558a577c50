package component

import "slices"

// Sensor reports which bodies overlap its owner's Body. Overlapping is
// rebuilt from scratch every frame; enter/exit tracking is up to the reader.
type Sensor struct {
	// Mask selects the layers to sense. Zero means "use the body's mask".
	Mask        uint32
	Active      bool
	Overlapping []uint64
}

var SensorComponent = NewComponent[Sensor]()

func NewSensor() *Sensor {
	return &Sensor{Active: true}
}

func NewSensorWithMask(mask uint32) *Sensor {
	return &Sensor{Mask: mask, Active: true}
}

// EffectiveMask returns the sensor mask, falling back to bodyMask when unset.
func (s *Sensor) EffectiveMask(bodyMask uint32) uint32 {
	if s.Mask != 0 {
		return s.Mask
	}
	return bodyMask
}

func (s *Sensor) IsOverlapping(id uint64) bool {
	return slices.Contains(s.Overlapping, id)
}
