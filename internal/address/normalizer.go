// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package address turns messy user-supplied address strings into geocoder-friendly
// ones. Inputs are frequently pasted from chat exports and carry timestamps, phone
// numbers, local shorthand and postal codes that confuse the upstream geocoders.
package address

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	timestampPattern = regexp.MustCompile(`^\s*\[[^\]]*\]\s*`)
	senderPattern    = regexp.MustCompile(`^\s*[+\w][\w\s().+-]{0,30}:\s*`)
	labelPattern     = regexp.MustCompile(`(?i)^\s*(from|to)\s*[:,]?\s*`)
	postcodePattern  = regexp.MustCompile(`\b\d{5}\b`)
	commaRunPattern  = regexp.MustCompile(`,{2,}`)
	spaceRunPattern  = regexp.MustCompile(`\s+`)
)

// Substitution is a single replacement rule. Substitutions match whole words,
// case-insensitively, and keep their configuration-list order.
type Substitution struct {
	From string
	To   string
}

// Normalizer cleans raw address strings. The zero value is not usable, construct
// it with New.
type Normalizer struct {
	country       string
	countryCheck  *regexp.Regexp
	abbreviations []substitution
	aliases       []substitution
}

type substitution struct {
	pattern *regexp.Regexp
	to      string
}

// DefaultAbbreviations expands the Malaysian street and place-type shorthand
// commonly found in chat-shared addresses.
var DefaultAbbreviations = []Substitution{
	{From: "jln", To: "Jalan"},
	{From: "tmn", To: "Taman"},
	{From: "lrg", To: "Lorong"},
	{From: "kg", To: "Kampung"},
	{From: "kpg", To: "Kampung"},
	{From: "bkt", To: "Bukit"},
	{From: "sg", To: "Sungai"},
	{From: "psn", To: "Persiaran"},
	{From: "bndr", To: "Bandar"},
	{From: "apt", To: "Apartment"},
}

// DefaultAliases maps known place-name shorthands and misspellings to their
// canonical names. At most one alias applies per address segment, first match wins.
var DefaultAliases = []Substitution{
	{From: "kl", To: "Kuala Lumpur"},
	{From: "pj", To: "Petaling Jaya"},
	{From: "jb", To: "Johor Bahru"},
	{From: "penang", To: "Pulau Pinang"},
	{From: "malacca", To: "Melaka"},
}

// New returns a Normalizer that appends the given default country and applies the
// given substitution tables. Nil tables fall back to the defaults.
func New(country string, abbreviations, aliases []Substitution) *Normalizer {
	if abbreviations == nil {
		abbreviations = DefaultAbbreviations
	}
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &Normalizer{
		country:       country,
		countryCheck:  regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(country) + `\b`),
		abbreviations: compile(abbreviations),
		aliases:       compile(aliases),
	}
}

func compile(subs []Substitution) []substitution {
	compiled := make([]substitution, 0, len(subs))
	for _, s := range subs {
		compiled = append(compiled, substitution{
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(s.From) + `\b`),
			to:      s.To,
		})
	}
	return compiled
}

// Normalize cleans a raw address string. It never fails, the worst case is an
// empty or minimally altered string.
func (n *Normalizer) Normalize(raw string) string {
	candidate := selectCandidateLine(raw)

	candidate = strings.ReplaceAll(candidate, "\n", " ")
	candidate = commaRunPattern.ReplaceAllString(candidate, ",")

	segments := make([]string, 0, 4)
	for _, segment := range strings.Split(candidate, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		segment = postcodePattern.ReplaceAllString(segment, "")
		for _, abbr := range n.abbreviations {
			segment = abbr.pattern.ReplaceAllString(segment, abbr.to)
		}
		for _, alias := range n.aliases {
			if alias.pattern.MatchString(segment) {
				segment = alias.pattern.ReplaceAllString(segment, alias.to)
				break
			}
		}
		segment = strings.TrimSpace(spaceRunPattern.ReplaceAllString(segment, " "))
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}

	result := strings.Join(segments, ", ")
	if result == "" {
		return ""
	}
	if !n.countryCheck.MatchString(result) {
		result = fmt.Sprintf("%s, %s", result, n.country)
	}

	return result
}

// selectCandidateLine strips per-line chat-export artifacts and picks the line that
// looks most like an address: the one with the most comma separators, ties broken
// by string length.
func selectCandidateLine(raw string) string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		line = timestampPattern.ReplaceAllString(line, "")
		line = senderPattern.ReplaceAllString(line, "")
		line = labelPattern.ReplaceAllString(line, "")
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return raw
	}

	best := lines[0]
	bestCommas := strings.Count(best, ",")
	for _, line := range lines[1:] {
		commas := strings.Count(line, ",")
		if commas > bestCommas || (commas == bestCommas && len(line) > len(best)) {
			best = line
			bestCommas = commas
		}
	}

	return best
}

// Simplify keeps only the trailing comma-separated segments of an address: the last
// three, or the last two when the address has fewer than three segments. It returns
// the input unchanged when simplification would not alter it.
func Simplify(address string) string {
	segments := strings.Split(address, ",")
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	keep := 3
	if len(segments) < 3 {
		keep = 2
	}
	if len(segments) <= keep {
		return address
	}

	return strings.Join(segments[len(segments)-keep:], ", ")
}
