package domain

import "sort"

var locations = map[string]struct{}{
	"Albuquerque, New Mexico":    {},
	"Carlsbad, California":       {},
	"Chula Vista, California":    {},
	"Colorado Springs, Colorado": {},
	"Denver, Colorado":           {},
	"El Cajon, California":       {},
	"El Paso, Texas":             {},
	"Escondido, California":      {},
	"Fresno, California":         {},
	"La Mesa, California":        {},
	"Las Vegas, Nevada":          {},
	"Los Angeles, California":    {},
	"Oceanside, California":      {},
	"Phoenix, Arizona":           {},
	"Sacramento, California":     {},
	"Salt Lake City, Utah":       {},
	"San Diego, California":      {},
	"Tucson, Arizona":            {},
}

// IsValidLocation reports whether loc is one of the known locations.
// Matching is exact: case, comma and spacing all count.
func IsValidLocation(loc string) bool {
	_, ok := locations[loc]
	return ok
}

// Locations returns the known locations, sorted.
func Locations() []string {
	out := make([]string, 0, len(locations))
	for l := range locations {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
