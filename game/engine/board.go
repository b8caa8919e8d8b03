package engine

import "fmt"

// Board is the chain of placed tiles. For every adjacent pair the right face
// of the first equals the left face of the second. Every mutation either keeps
// that property or fails without touching the chain.
type Board struct {
	tiles   []Tile
	opening OpeningOrientation
}

// NewBoard creates an empty board using the given opening orientation
func NewBoard(opening OpeningOrientation) *Board {
	if opening == "" {
		opening = OpeningAsPlayed
	}
	return &Board{opening: opening}
}

// IsEmpty reports whether no tile has been placed yet
func (b *Board) IsEmpty() bool {
	return len(b.tiles) == 0
}

// Len returns the number of placed tiles
func (b *Board) Len() int {
	return len(b.tiles)
}

// Ends returns the open values on the left and right of the chain
func (b *Board) Ends() (int, int, error) {
	if len(b.tiles) == 0 {
		return 0, 0, ErrEmptyBoard
	}
	return b.tiles[0].A, b.tiles[len(b.tiles)-1].B, nil
}

// Tiles returns a copy of the chain with each tile in its placed orientation
func (b *Board) Tiles() []Tile {
	return append([]Tile(nil), b.tiles...)
}

// Contains reports whether the tile with the given ID is on the board
func (b *Board) Contains(id int) bool {
	for _, t := range b.tiles {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Place attaches tile to the chain. On an empty board the side is ignored and
// the tile is laid according to the opening orientation. Otherwise the tile is
// flipped when needed so that the face touching the chosen end matches it.
func (b *Board) Place(tile Tile, side Side) (Tile, error) {
	if b.Contains(tile.ID) {
		return Tile{}, fmt.Errorf("%w: tile %s already on the board", ErrIllegalPlacement, tile)
	}

	if b.IsEmpty() {
		placed := tile
		if b.opening == OpeningSmallerFirst && placed.A > placed.B {
			placed = placed.Flip()
		}
		b.tiles = append(b.tiles, placed)
		return placed, nil
	}

	left, right, _ := b.Ends()

	switch side {
	case SideLeft:
		placed, ok := orientFor(tile, left, false)
		if !ok {
			return Tile{}, fmt.Errorf("%w: %s on left end %d", ErrIllegalPlacement, tile, left)
		}
		b.tiles = append([]Tile{placed}, b.tiles...)
		return placed, nil

	case SideRight:
		placed, ok := orientFor(tile, right, true)
		if !ok {
			return Tile{}, fmt.Errorf("%w: %s on right end %d", ErrIllegalPlacement, tile, right)
		}
		b.tiles = append(b.tiles, placed)
		return placed, nil

	default:
		return Tile{}, fmt.Errorf("%w: side %q", ErrIllegalPlacement, side)
	}
}

// orientFor returns tile turned so that the face touching end equals end.
// Attaching on the right means face A touches the chain, on the left face B.
func orientFor(tile Tile, end int, right bool) (Tile, bool) {
	touching, other := tile.B, tile.A
	if right {
		touching, other = tile.A, tile.B
	}
	switch {
	case touching == end:
		return tile, true
	case other == end:
		return tile.Flip(), true
	default:
		return Tile{}, false
	}
}
