package mines

import (
	"fmt"
	"math/rand/v2"
)

// placeRandomMines lays MineCount mines on distinct cells chosen uniformly
// at random.
func (g *Game) placeRandomMines(r *rand.Rand) {
	/*
	 * Write down the list of possible mine locations, then pick n off
	 * the list at random, swapping each pick out of the live range.
	 */
	candidates := make([]int, g.dims.Len())
	for i := range candidates {
		candidates[i] = i
	}

	k := len(candidates)
	for range g.params.MineCount {
		i := r.IntN(k)
		g.placeMine(candidates[i])
		k--
		candidates[i] = candidates[k]
	}
}

func (g *Game) placeMines(mines []Point) error {
	if len(mines) != g.params.MineCount {
		return &InvalidConfigError{
			g.params,
			fmt.Sprintf("layout has %d mines", len(mines)),
		}
	}
	for _, p := range mines {
		if !g.dims.Contains(p) {
			return &InvalidConfigError{g.params, "mine " + p.String() + " out of bounds"}
		}
		if g.cells[g.dims.Index(p)].Content == Mine {
			return &InvalidConfigError{g.params, "mine " + p.String() + " placed twice"}
		}
		g.placeMine(g.dims.Index(p))
	}
	return nil
}

// placeMine turns cell i into a mine and bumps the hint of every neighbour
// that is not a mine itself.
func (g *Game) placeMine(i int) {
	if g.cells[i].Content == Mine {
		panic(AssertionError{"mine placed twice"})
	}
	g.cells[i].Content = Mine
	for n := range g.dims.Neighbors(g.dims.Point(i)) {
		j := g.dims.Index(n)
		if g.cells[j].Content != Mine {
			g.cells[j].Content++
		}
	}
}
