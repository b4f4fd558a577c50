package component

// RespawnRequest asks the respawn system to return a player to its
// SafeRespawn point. Cause is the entity that triggered it, 0 if unknown.
type RespawnRequest struct {
	Cause uint64
}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
