package suitability

import (
	"errors"

	"github.com/rotisserie/eris"

	"github.com/shrijwal/f-t-landsuitability/internal/raster"
)

// ErrShapeMismatch reports classification grids of differing dimensions fed
// to Combine. Grids are never broadcast or truncated to fit.
var ErrShapeMismatch = errors.New("suitability: grid shape mismatch")

// Combine merges per-factor classification grids into one combined score
// grid. A cell where any factor is NotSuitable combines to 0 regardless of
// the other factors (veto). Every other cell combines to the sum of its
// per-factor classes, so for N factors the output range is {0} ∪ [N, 2N].
func Combine(grids []*raster.Grid) (*raster.Grid, error) {
	if len(grids) == 0 {
		return nil, eris.New("suitability: combine requires at least one grid")
	}

	h, w := grids[0].Shape()
	for i, g := range grids[1:] {
		gh, gw := g.Shape()
		if gh != h || gw != w {
			return nil, eris.Wrapf(ErrShapeMismatch, "grid %d is %dx%d, want %dx%d", i+1, gh, gw, h, w)
		}
	}

	out, err := raster.NewGrid(h, w)
	if err != nil {
		return nil, err
	}

	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			var sum float64
			vetoed := false
			for _, g := range grids {
				v := g.At(r, c)
				if v == float64(NotSuitable) {
					vetoed = true
					break
				}
				sum += v
			}
			if !vetoed {
				out.Set(r, c, sum)
			}
		}
	}
	return out, nil
}
