package component

import "github.com/jakecoffman/cp"

// SafeRespawn stores the last position where the entity stood on solid
// ground.
type SafeRespawn struct {
	Point       cp.Vector
	Initialized bool
}

var SafeRespawnComponent = NewComponent[SafeRespawn]()
