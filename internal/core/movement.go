package core

// Movement patterns per piece kind: a fixed offset set for stepping pieces,
// a fixed direction set for sliding pieces. Targets are occupancy-agnostic;
// blocking and capture rules are the Validator's job.

var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

var kingOffsets = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

var orthogonalDirs = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var diagonalDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var allDirs = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// IsSliding reports whether the kind moves along rays that can be blocked.
func IsSliding(k PieceKind) bool {
	switch k {
	case Bishop, Rook, Queen:
		return true
	}
	return false
}

// PotentialTargets lists the squares a piece of the given kind and color
// could geometrically reach from a square, ignoring board occupancy.
// For pawns this is the four candidate squares (one forward, two forward
// from the start rank, and both forward diagonals); which of those are
// legal in context is decided by the Validator.
func PotentialTargets(k PieceKind, c Color, from Square) []Square {
	switch k {
	case Pawn:
		return pawnTargets(c, from)
	case Knight:
		return stepTargets(from, knightOffsets[:])
	case King:
		return stepTargets(from, kingOffsets[:])
	case Bishop:
		return slideTargets(from, diagonalDirs[:])
	case Rook:
		return slideTargets(from, orthogonalDirs[:])
	case Queen:
		return slideTargets(from, allDirs[:])
	}
	return nil
}

func stepTargets(from Square, offsets [][2]int) []Square {
	targets := make([]Square, 0, len(offsets))
	for _, o := range offsets {
		if sq := from.Offset(o[0], o[1]); sq.Valid() {
			targets = append(targets, sq)
		}
	}
	return targets
}

func slideTargets(from Square, dirs [][2]int) []Square {
	targets := make([]Square, 0, 27)
	for _, d := range dirs {
		for dist := 1; dist < 8; dist++ {
			sq := from.Offset(d[0]*dist, d[1]*dist)
			if !sq.Valid() {
				break
			}
			targets = append(targets, sq)
		}
	}
	return targets
}

func pawnTargets(c Color, from Square) []Square {
	dir := c.PawnDirection()
	targets := make([]Square, 0, 4)
	if sq := from.Offset(0, dir); sq.Valid() {
		targets = append(targets, sq)
	}
	if from.Rank == c.PawnStartRank() {
		if sq := from.Offset(0, 2*dir); sq.Valid() {
			targets = append(targets, sq)
		}
	}
	if sq := from.Offset(-1, dir); sq.Valid() {
		targets = append(targets, sq)
	}
	if sq := from.Offset(1, dir); sq.Valid() {
		targets = append(targets, sq)
	}
	return targets
}

// PawnAttacks lists the two forward-diagonal squares a pawn attacks.
// Pawns attack only diagonally, never the squares they push to.
func PawnAttacks(c Color, from Square) []Square {
	dir := c.PawnDirection()
	attacks := make([]Square, 0, 2)
	if sq := from.Offset(-1, dir); sq.Valid() {
		attacks = append(attacks, sq)
	}
	if sq := from.Offset(1, dir); sq.Valid() {
		attacks = append(attacks, sq)
	}
	return attacks
}
