// Package domain holds the core types of the SST extraction toolkit: query
// locations, the per-year work plan, the grid file's time axis, and the
// assembled result table.
package domain

import "fmt"

// Location is a single query coordinate. Duplicates are allowed and input
// order is preserved in the output.
type Location struct {
	Lat float64
	Lon float64
}

// Table is a column-oriented set of named float columns, the tabular form of
// location input.
type Table map[string][]float64

// LocationsFromTable selects the latitude and longitude columns named by the
// caller. Returns a ColumnError when either column is absent.
func LocationsFromTable(t Table, latCol, lonCol string) ([]Location, error) {
	lats, haveLat := t[latCol]
	lons, haveLon := t[lonCol]
	if !haveLat || !haveLon {
		return nil, &ColumnError{LatCol: latCol, LonCol: lonCol}
	}
	if len(lats) != len(lons) {
		return nil, fmt.Errorf("columns %q and %q have different lengths (%d vs %d)",
			latCol, lonCol, len(lats), len(lons))
	}
	locs := make([]Location, len(lats))
	for i := range lats {
		locs[i] = Location{Lat: lats[i], Lon: lons[i]}
	}
	return locs, nil
}

// ParseLocations interprets the accepted location input shapes:
//
//   - a Table with the default "LAT" and "LON" columns,
//   - a single coordinate pair ([2]float64, []float64 of length two, or a
//     Location), where the first element is assumed to be latitude,
//   - a list of pairs ([][]float64, [][2]float64, or []Location).
//
// Strings are rejected with an UnsupportedInputError: the dataset covers sea
// only, so state abbreviations and street addresses cannot be resolved to a
// usable coordinate. No coercion is attempted for any other type.
func ParseLocations(input interface{}) ([]Location, error) {
	switch v := input.(type) {
	case []Location:
		if len(v) == 0 {
			return nil, &UnsupportedInputError{Reason: "at least one location is required"}
		}
		out := make([]Location, len(v))
		copy(out, v)
		return out, nil
	case Location:
		return []Location{v}, nil
	case [2]float64:
		return []Location{{Lat: v[0], Lon: v[1]}}, nil
	case []float64:
		if len(v) != 2 {
			return nil, &UnsupportedInputError{
				Reason: fmt.Sprintf("a flat coordinate slice must have exactly two elements (lat, lon), got %d", len(v)),
			}
		}
		return []Location{{Lat: v[0], Lon: v[1]}}, nil
	case [][]float64:
		if len(v) == 0 {
			return nil, &UnsupportedInputError{Reason: "at least one location is required"}
		}
		locs := make([]Location, len(v))
		for i, pair := range v {
			if len(pair) != 2 {
				return nil, &UnsupportedInputError{
					Reason: fmt.Sprintf("coordinate pair %d must have exactly two elements (lat, lon), got %d", i, len(pair)),
				}
			}
			locs[i] = Location{Lat: pair[0], Lon: pair[1]}
		}
		return locs, nil
	case [][2]float64:
		if len(v) == 0 {
			return nil, &UnsupportedInputError{Reason: "at least one location is required"}
		}
		locs := make([]Location, len(v))
		for i, pair := range v {
			locs[i] = Location{Lat: pair[0], Lon: pair[1]}
		}
		return locs, nil
	case Table:
		return LocationsFromTable(v, "LAT", "LON")
	case string:
		if len(v) == 2 {
			return nil, &UnsupportedInputError{
				Reason: "state abbreviations are not supported for sea surface temperature: the data only exists on the sea",
			}
		}
		return nil, &UnsupportedInputError{
			Reason: "addresses are not supported for sea surface temperature: the data only exists on the sea",
		}
	default:
		return nil, &UnsupportedInputError{
			Reason: fmt.Sprintf("unsupported location input type %T: provide a coordinate pair, a list of pairs, or a table", input),
		}
	}
}
