// Package spatial maps query coordinates onto the nearest cell of a regular
// lat/lon grid.
package spatial

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"github.com/HHRClemson/hydrological-toolkit/internal/domain"
)

// NormalizeLons maps raw grid longitudes in [0, 360) onto [-180, 180] by
// subtracting 360 from any value above 180. Values already in [-180, 180]
// pass through unchanged, so normalizing twice is a no-op.
func NormalizeLons(lons []float64) []float64 {
	out := make([]float64, len(lons))
	for i, lon := range lons {
		if lon > 180 {
			lon -= 360
		}
		out[i] = lon
	}
	return out
}

// CellRef identifies one grid cell by its position on the two axes.
type CellRef struct {
	LatIdx int
	LonIdx int
}

type cell struct {
	geom.Point
	ref CellRef
}

// Index answers nearest-cell queries over the full cartesian product of a
// grid's latitude and longitude cell centers.
type Index struct {
	tree *rtree.Rtree
}

// NewIndex builds the index from the grid axes. Longitudes are expected
// already normalized to [-180, 180] so query coordinates and cell centers
// share one coordinate space. Cells are inserted lat-major, lon-minor, which
// fixes the order equidistant candidates are found in.
func NewIndex(lats, lons []float64) *Index {
	tree := rtree.NewTree(25, 50)
	for i, lat := range lats {
		for j, lon := range lons {
			tree.Insert(&cell{
				Point: geom.Point{X: lon, Y: lat},
				ref:   CellRef{LatIdx: i, LonIdx: j},
			})
		}
	}
	return &Index{tree: tree}
}

// Nearest returns, for each query location, the grid cell closest under
// planar Euclidean distance in (lat, lon) space. Geodesic distance is not
// used: at 1/4 degree resolution the planar approximation picks the same
// cell. A non-empty grid always yields a match.
func (ix *Index) Nearest(locs []domain.Location) []CellRef {
	refs := make([]CellRef, len(locs))
	for i, loc := range locs {
		nn := ix.tree.NearestNeighbor(geom.Point{X: loc.Lon, Y: loc.Lat})
		refs[i] = nn.(*cell).ref
	}
	return refs
}
