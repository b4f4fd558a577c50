package component

// PickupCounter tallies what a player collected and how often it respawned.
type PickupCounter struct {
	Collected int
	Deaths    int
}

var PickupCounterComponent = NewComponent[PickupCounter]()
