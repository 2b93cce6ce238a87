package model

import (
	"sort"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/random"
)

// TargetingStrategy selects how automatic shots pick their coordinate.
type TargetingStrategy string

const (
	// TargetingRandom shoots uniformly at untried cells.
	TargetingRandom TargetingStrategy = "random"

	// TargetingHunt shoots randomly until it wounds a ship, then pursues it:
	// a single hit tries the adjacent cells, two or more hits extend the hit
	// line at its ends.
	TargetingHunt TargetingStrategy = "hunt"
)

// ValidTargetingStrategies returns the strategies a game accepts.
func ValidTargetingStrategies() []TargetingStrategy {
	return []TargetingStrategy{TargetingRandom, TargetingHunt}
}

// Valid reports whether the strategy is a known one.
func (s TargetingStrategy) Valid() bool {
	return s == TargetingRandom || s == TargetingHunt
}

// DisplayName returns a human-readable name for the strategy.
func (s TargetingStrategy) DisplayName() string {
	switch s {
	case TargetingRandom:
		return "Random"
	case TargetingHunt:
		return "Hunt"
	}
	return string(s)
}

// chooseTarget picks the next coordinate to shoot on a board. Hunt targeting
// falls back to a uniform random cell when no wounded ship offers a viable
// candidate, so the returned coordinate is always in bounds and unshot.
func chooseTarget(b *Board, strategy TargetingStrategy, rnd random.Random) (Coord, error) {
	if strategy == TargetingHunt {
		if c, ok := huntTarget(b, rnd); ok {
			return c, nil
		}
	}
	return randomTarget(b, rnd)
}

// randomTarget picks uniformly among cells not yet shot.
func randomTarget(b *Board, rnd random.Random) (Coord, error) {
	open := make([]Coord, 0, GridSize*GridSize)
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			coord := Coord{Row: MinRow + rune(r), Col: MinCol + c}
			if !b.HasShot(coord) {
				open = append(open, coord)
			}
		}
	}
	if len(open) == 0 {
		return Coord{}, ErrNoUntriedCoordinates
	}
	return open[rnd.Intn(len(open))], nil
}

// huntTarget looks for the first wounded, still-afloat ship in placement
// order and proposes a cell that could extend the damage.
func huntTarget(b *Board, rnd random.Random) (Coord, bool) {
	for _, p := range b.Placements {
		hits := hitCells(b, p)
		if len(hits) == 0 || len(hits) == len(p.Cells) {
			continue
		}
		var candidates []Coord
		if len(hits) == 1 {
			candidates = openNeighbors(b, hits[0])
		} else {
			candidates = openLineEnds(b, hits)
		}
		if len(candidates) > 0 {
			return candidates[rnd.Intn(len(candidates))], true
		}
	}
	return Coord{}, false
}

func hitCells(b *Board, p ShipPlacement) []Coord {
	var hits []Coord
	for _, c := range p.Cells {
		if b.HasShot(c) {
			hits = append(hits, c)
		}
	}
	return hits
}

// openNeighbors returns the in-bounds, unshot cells orthogonally adjacent
// to c, in compass order.
func openNeighbors(b *Board, c Coord) []Coord {
	var out []Coord
	for _, o := range ValidOrientations() {
		n := c.Step(o)
		if n.InBounds() && !b.HasShot(n) {
			out = append(out, n)
		}
	}
	return out
}

// openLineEnds returns the unshot cells just beyond either end of a straight
// run of hits, stepping by the unit direction between the sorted hits.
func openLineEnds(b *Board, hits []Coord) []Coord {
	run := make([]Coord, len(hits))
	copy(run, hits)
	sort.Slice(run, func(i, j int) bool {
		if run[i].Row != run[j].Row {
			return run[i].Row < run[j].Row
		}
		return run[i].Col < run[j].Col
	})
	first, last := run[0], run[len(run)-1]
	dr := sign(int(last.Row) - int(first.Row))
	dc := sign(last.Col - first.Col)
	var out []Coord
	for _, end := range []Coord{first.Offset(-dr, -dc), last.Offset(dr, dc)} {
		if end.InBounds() && !b.HasShot(end) {
			out = append(out, end)
		}
	}
	return out
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
