package engine

import "fmt"

// Tile is a single domino. A and B are the pip values on its two faces; on the
// board A faces left and B faces right. ID identifies the physical tile and
// survives flipping, so two orientations of the same tile compare equal by ID.
type Tile struct {
	ID int `json:"id"`
	A  int `json:"a"`
	B  int `json:"b"`
}

// NewTile creates a tile with the given identity and faces
func NewTile(id, a, b int) Tile {
	return Tile{ID: id, A: a, B: b}
}

// Flip returns the same tile with its faces swapped
func (t Tile) Flip() Tile {
	return Tile{ID: t.ID, A: t.B, B: t.A}
}

// Matches reports whether either face shows value
func (t Tile) Matches(value int) bool {
	return t.A == value || t.B == value
}

// IsDouble reports whether both faces are equal
func (t Tile) IsDouble() bool {
	return t.A == t.B
}

// Pips returns the sum of both faces
func (t Tile) Pips() int {
	return t.A + t.B
}

// SameTile reports whether t and other are the same physical tile,
// regardless of orientation.
func (t Tile) SameTile(other Tile) bool {
	return t.ID == other.ID
}

func (t Tile) String() string {
	return fmt.Sprintf("%d|%d", t.A, t.B)
}
