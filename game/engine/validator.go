package engine

// CanPlay reports whether tile may be placed: always on an empty board,
// otherwise when either face matches either end.
func (b *Board) CanPlay(tile Tile) bool {
	if b.IsEmpty() {
		return true
	}
	left, right, _ := b.Ends()
	return tile.Matches(left) || tile.Matches(right)
}

// PlayableSides lists every side tile legally attaches to. On an empty board
// it returns nil because the opening move needs no side.
func (b *Board) PlayableSides(tile Tile) []Side {
	if b.IsEmpty() {
		return nil
	}
	left, right, _ := b.Ends()
	var sides []Side
	if tile.Matches(left) {
		sides = append(sides, SideLeft)
	}
	if tile.Matches(right) {
		sides = append(sides, SideRight)
	}
	return sides
}

// ResolveSide checks a requested side against the legal ones. A side must be
// given exactly when the tile fits both ends; with a single legal side the
// request must be empty and that side is used.
func (b *Board) ResolveSide(tile Tile, requested Side) (Side, error) {
	if b.IsEmpty() {
		if requested != SideNone {
			return SideNone, ErrAmbiguousOrInvalidSide
		}
		return SideNone, nil
	}

	sides := b.PlayableSides(tile)
	switch len(sides) {
	case 0:
		return SideNone, ErrIllegalMove
	case 1:
		if requested != SideNone {
			return SideNone, ErrAmbiguousOrInvalidSide
		}
		return sides[0], nil
	default:
		if requested != SideLeft && requested != SideRight {
			return SideNone, ErrAmbiguousOrInvalidSide
		}
		return requested, nil
	}
}

func containsSide(sides []Side, side Side) bool {
	for _, s := range sides {
		if s == side {
			return true
		}
	}
	return false
}
