// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package polyline implements the encoded polyline format used by the Google
// Directions API: coordinate deltas in 1e-5 fixed point, zig-zag coded into
// 5-bit groups with an offset of 63.
package polyline

import (
	"strings"

	"github.com/wneessen/go-tripfare/internal/geo"
)

const (
	scale       = 1e5
	chunkBits   = 5
	chunkMask   = 0x1f
	continueBit = 0x20
	asciiOffset = 63
)

// Decode converts an encoded polyline into an ordered sequence of coordinates.
// An empty input yields an empty sequence, a truncated trailing delta is dropped.
func Decode(encoded string) []geo.Coordinate {
	var coords []geo.Coordinate
	var lat, lon int64

	pos := 0
	for pos < len(encoded) {
		dLat, next, ok := decodeValue(encoded, pos)
		if !ok {
			break
		}
		dLon, after, ok := decodeValue(encoded, next)
		if !ok {
			break
		}
		lat += dLat
		lon += dLon
		coords = append(coords, geo.Coordinate{
			Lon: float64(lon) / scale,
			Lat: float64(lat) / scale,
		})
		pos = after
	}

	return coords
}

// Encode converts an ordered sequence of coordinates into an encoded polyline.
func Encode(coords []geo.Coordinate) string {
	var sb strings.Builder
	var lat, lon int64

	for _, coord := range coords {
		nextLat := int64(round(coord.Lat * scale))
		nextLon := int64(round(coord.Lon * scale))
		encodeValue(&sb, nextLat-lat)
		encodeValue(&sb, nextLon-lon)
		lat, lon = nextLat, nextLon
	}

	return sb.String()
}

// decodeValue accumulates 5-bit chunks into a zig-zag decoded signed delta,
// starting at pos. It reports the position after the value and whether a complete
// value was read.
func decodeValue(encoded string, pos int) (int64, int, bool) {
	var value int64
	var shift uint

	for pos < len(encoded) {
		chunk := int64(encoded[pos]) - asciiOffset
		pos++
		value |= (chunk & chunkMask) << shift
		if chunk&continueBit == 0 {
			// Zig-zag: the low bit carries the sign.
			if value&1 != 0 {
				return ^(value >> 1), pos, true
			}
			return value >> 1, pos, true
		}
		shift += chunkBits
	}

	return 0, pos, false
}

func encodeValue(sb *strings.Builder, value int64) {
	value <<= 1
	if value < 0 {
		value = ^value
	}
	for value >= continueBit {
		sb.WriteByte(byte((value&chunkMask)|continueBit) + asciiOffset)
		value >>= chunkBits
	}
	sb.WriteByte(byte(value) + asciiOffset)
}

func round(f float64) float64 {
	if f < 0 {
		return f - 0.5
	}
	return f + 0.5
}
