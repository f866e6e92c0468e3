// Package netcdf decodes yearly OISST grid files into in-memory arrays.
package netcdf

import (
	"fmt"
	"math"

	"github.com/fhs/go-netcdf/netcdf"

	"github.com/HHRClemson/hydrological-toolkit/internal/domain"
)

// Reader decodes local NetCDF grid files. Longitudes are returned raw in
// [0, 360) as stored; normalization is the caller's job.
type Reader struct{}

// Decode parses one yearly grid file into its coordinate axes, time axis,
// and sst cube. Fill values are mapped to the dataset sentinel; scale_factor
// and add_offset attributes are applied to packed data.
func (Reader) Decode(path string) (*domain.Grid, error) {
	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		return nil, fmt.Errorf("failed to open NetCDF file %s: %w", path, err)
	}
	defer func() { _ = nc.Close() }()

	lat, err := read1DVar(nc, []string{"lat", "latitude", "y"})
	if err != nil {
		return nil, fmt.Errorf("latitude axis: %w", err)
	}
	lon, err := read1DVar(nc, []string{"lon", "longitude", "x"})
	if err != nil {
		return nil, fmt.Errorf("longitude axis: %w", err)
	}

	timeVals, err := read1DVar(nc, []string{"time"})
	if err != nil {
		return nil, fmt.Errorf("time axis: %w", err)
	}
	timeAxis := make([]int, len(timeVals))
	for i, v := range timeVals {
		timeAxis[i] = int(math.Round(v))
	}

	cube, err := readSSTCube(nc, len(timeAxis), len(lat), len(lon))
	if err != nil {
		return nil, fmt.Errorf("sst variable: %w", err)
	}

	return &domain.Grid{Lat: lat, Lon: lon, Time: timeAxis, SST: cube}, nil
}

// findVar tries each candidate variable name in order.
func findVar(nc netcdf.Dataset, names []string) (netcdf.Var, error) {
	for _, name := range names {
		if v, err := nc.Var(name); err == nil {
			return v, nil
		}
	}
	return netcdf.Var{}, fmt.Errorf("variable not found (tried: %v)", names)
}

// read1DVar reads a 1D coordinate variable as float64.
func read1DVar(nc netcdf.Dataset, names []string) ([]float64, error) {
	v, err := findVar(nc, names)
	if err != nil {
		return nil, err
	}

	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("expected 1D variable, got %dD", len(dims))
	}
	length, err := dims[0].Len()
	if err != nil {
		return nil, err
	}

	return readFloats(v, int(length))
}

// readSSTCube reads the 3-D sst array, checking the dimension order matches
// [time, lat, lon].
func readSSTCube(nc netcdf.Dataset, nt, nlat, nlon int) (*domain.Cube, error) {
	v, err := findVar(nc, []string{"sst", "data"})
	if err != nil {
		return nil, err
	}

	dims, err := v.Dims()
	if err != nil {
		return nil, fmt.Errorf("failed to get dimensions: %w", err)
	}
	if len(dims) != 3 {
		return nil, fmt.Errorf("expected 3D data, got %dD", len(dims))
	}

	want := []int{nt, nlat, nlon}
	for i, dim := range dims {
		n, err := dim.Len()
		if err != nil {
			return nil, fmt.Errorf("failed to get dim%d length: %w", i, err)
		}
		if n != uint64(want[i]) {
			return nil, fmt.Errorf("dimension mismatch: dim%d is %d, expected %d (order must be [time, lat, lon])",
				i, n, want[i])
		}
	}

	flat, err := readFloats(v, nt*nlat*nlon)
	if err != nil {
		return nil, err
	}

	// Packed data: unscale real values, map fill to the sentinel. The fill
	// comparison happens on raw values, before scaling.
	fill, hasFill := fillValue(v)
	scale, offset := packing(v)
	for i, raw := range flat {
		if hasFill && raw == fill {
			flat[i] = domain.Sentinel
			continue
		}
		flat[i] = raw*scale + offset
	}

	return domain.NewCube(flat, nt, nlat, nlon)
}

// readFloats reads an entire variable flat as float64, converting from the
// stored type.
func readFloats(v netcdf.Var, total int) ([]float64, error) {
	t, err := v.Type()
	if err != nil {
		return nil, fmt.Errorf("failed to get var type: %w", err)
	}

	switch t {
	case netcdf.DOUBLE:
		data := make([]float64, total)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, total)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, total)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.INT:
		tmp := make([]int32, total)
		if err := v.ReadInt32s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, total)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	case netcdf.SHORT:
		tmp := make([]int16, total)
		if err := v.ReadInt16s(tmp); err != nil {
			return nil, err
		}
		out := make([]float64, total)
		for i, val := range tmp {
			out[i] = float64(val)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported var type: %v", t)
	}
}

// fillValue returns the _FillValue or missing_value attribute if present.
func fillValue(v netcdf.Var) (float64, bool) {
	for _, name := range []string{"_FillValue", "missing_value"} {
		a := v.Attr(name)
		n, err := a.Len()
		if err != nil || n == 0 {
			continue
		}
		if val, ok := readFloatAttr(a); ok {
			return val, true
		}
	}
	return 0, false
}

// packing returns the scale_factor and add_offset attributes, defaulting to
// the identity transform when absent.
func packing(v netcdf.Var) (scale, offset float64) {
	scale, offset = 1, 0
	if a := v.Attr("scale_factor"); attrPresent(a) {
		if val, ok := readFloatAttr(a); ok && val != 0 {
			scale = val
		}
	}
	if a := v.Attr("add_offset"); attrPresent(a) {
		if val, ok := readFloatAttr(a); ok {
			offset = val
		}
	}
	return scale, offset
}

func attrPresent(a netcdf.Attr) bool {
	n, err := a.Len()
	return err == nil && n > 0
}

// readFloatAttr reads a scalar numeric attribute trying the common types.
func readFloatAttr(a netcdf.Attr) (float64, bool) {
	buf64 := make([]float64, 1)
	if err := a.ReadFloat64s(buf64); err == nil {
		return buf64[0], true
	}
	buf32 := make([]float32, 1)
	if err := a.ReadFloat32s(buf32); err == nil {
		return float64(buf32[0]), true
	}
	bufi := make([]int32, 1)
	if err := a.ReadInt32s(bufi); err == nil {
		return float64(bufi[0]), true
	}
	bufs := make([]int16, 1)
	if err := a.ReadInt16s(bufs); err == nil {
		return float64(bufs[0]), true
	}
	return 0, false
}
