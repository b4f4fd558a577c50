package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// HazardTag marks bodies that hurt on overlap.
type HazardTag struct{}

var HazardTagComponent = NewComponent[HazardTag]()

// PickupTag marks collectable bodies.
type PickupTag struct{}

var PickupTagComponent = NewComponent[PickupTag]()
