// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"regexp"
	"strconv"
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// ParseLiteral detects whether a string is a raw coordinate literal and returns the
// parsed coordinate. The first two numeric tokens are taken as the coordinate pair.
// When the first number fits the latitude range and the second fits the longitude
// range, the pair is read lat-first; otherwise it is read lon-first. A pair like
// "45, 45" is ambiguous and deliberately resolved by the lat-first convention.
func ParseLiteral(s string) (Coordinate, bool) {
	tokens := numberPattern.FindAllString(s, 2)
	if len(tokens) < 2 {
		return Coordinate{}, false
	}

	a, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return Coordinate{}, false
	}
	b, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return Coordinate{}, false
	}

	coord := Coordinate{Lon: b, Lat: a}
	if a < -90 || a > 90 || b < -180 || b > 180 {
		coord = Coordinate{Lon: a, Lat: b}
	}
	if !coord.Valid() {
		return Coordinate{}, false
	}

	return coord, true
}
