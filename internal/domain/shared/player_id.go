package shared

import (
	"fmt"
	"strconv"
)

// PlayerID is a value object identifying the owner of fort state (the viewer id).
type PlayerID struct {
	value int
}

// NewPlayerID creates a new PlayerID value object
func NewPlayerID(id int) (PlayerID, error) {
	if id <= 0 {
		return PlayerID{}, NewValidationError("player_id", "must be positive")
	}
	return PlayerID{value: id}, nil
}

// MustNewPlayerID creates a new PlayerID value object, panicking if invalid.
// Use this only for ids read back from storage.
func MustNewPlayerID(id int) PlayerID {
	playerID, err := NewPlayerID(id)
	if err != nil {
		panic(err)
	}
	return playerID
}

// Value returns the integer value of the PlayerID
func (p PlayerID) Value() int {
	return p.value
}

func (p PlayerID) String() string {
	return strconv.Itoa(p.value)
}

// Equals checks if two PlayerIDs are equal
func (p PlayerID) Equals(other PlayerID) bool {
	return p.value == other.value
}

// IsZero checks if the PlayerID is the zero value (uninitialized)
func (p PlayerID) IsZero() bool {
	return p.value == 0
}

// GoString keeps test failure output readable.
func (p PlayerID) GoString() string {
	return fmt.Sprintf("PlayerID(%d)", p.value)
}
