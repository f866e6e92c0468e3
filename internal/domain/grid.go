package domain

import "fmt"

// Sentinel is the reserved value marking missing or land cells in decoded
// grid data.
const Sentinel = -9.96921e+36

// MissingThreshold: any extracted value at or below this is reported as
// missing, never as a numeric reading.
const MissingThreshold = -9e35

// Grid holds the decoded contents of one yearly grid file.
type Grid struct {
	Lat  []float64 // grid latitudes, fixed step
	Lon  []float64 // raw grid longitudes in [0, 360)
	Time []int     // day offsets from the 1800-01-01 epoch
	SST  *Cube     // values indexed [time][lat][lon]
}

// Cube is a dense 3-D array stored flat in [time][lat][lon] order.
type Cube struct {
	data           []float64
	nt, nlat, nlon int
}

// NewCube wraps a flat value slice. The slice length must equal nt*nlat*nlon.
func NewCube(data []float64, nt, nlat, nlon int) (*Cube, error) {
	if nt < 0 || nlat < 0 || nlon < 0 {
		return nil, fmt.Errorf("cube dimensions must be non-negative, got [%d, %d, %d]", nt, nlat, nlon)
	}
	if len(data) != nt*nlat*nlon {
		return nil, fmt.Errorf("cube data length %d does not match dimensions [%d, %d, %d]",
			len(data), nt, nlat, nlon)
	}
	return &Cube{data: data, nt: nt, nlat: nlat, nlon: nlon}, nil
}

// Dims returns the time, latitude, and longitude axis lengths.
func (c *Cube) Dims() (nt, nlat, nlon int) {
	return c.nt, c.nlat, c.nlon
}

// At reads the value at [t][lat][lon].
func (c *Cube) At(t, lat, lon int) float64 {
	return c.data[(t*c.nlat+lat)*c.nlon+lon]
}
