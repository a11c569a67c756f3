package game

import "errors"

// Outcome kinds returned by core operations. Callers match them with errors.Is;
// every one is recoverable and leaves the world unchanged.
var (
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrNoPath            = errors.New("no path found")
	ErrOccupiedCell      = errors.New("cell is occupied")
	ErrEmptyCell         = errors.New("cell has no building")
	ErrBlockedCell       = errors.New("cell is impassable")
	ErrDegenerateTarget  = errors.New("target is the occupied tile")
	ErrUnknownActor      = errors.New("unknown actor")
	ErrUnknownBuilding   = errors.New("unknown building kind")
	ErrInvalidDimensions = errors.New("map dimensions must be positive")
)
