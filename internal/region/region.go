// Package region maps user-facing server shorthand onto the two
// namespaces the Riot API routes by: a continental routing value for
// account/match endpoints and a platform value for summoner, league
// and mastery endpoints.
package region

import (
	"sort"
	"strings"
)

// Unknown is returned for any server code outside the supported set.
// Callers must check for it before building upstream URLs.
const Unknown = "UNKNOWN"

const (
	Americas = "AMERICAS"
	Asia     = "ASIA"
	Europe   = "EUROPE"
	Sea      = "SEA"
)

type mapping struct {
	platform string
	routing  string
}

var servers = map[string]mapping{
	"br":   {"BR1", Americas},
	"eune": {"EUN1", Europe},
	"euw":  {"EUW1", Europe},
	"jp":   {"JP1", Asia},
	"kr":   {"KR", Asia},
	"lan":  {"LA1", Americas},
	"las":  {"LA2", Americas},
	"na":   {"NA1", Americas},
	"oce":  {"OC1", Sea},
	"tr":   {"TR1", Europe},
	"ru":   {"RU", Europe},
	"ph":   {"PH2", Sea},
	"sg":   {"SG2", Sea},
	"th":   {"TH2", Sea},
	"tw":   {"TW2", Sea},
	"vn":   {"VN2", Sea},
}

// ToRouting returns the continental routing value for a server code,
// or Unknown. Input is case-insensitive.
func ToRouting(server string) string {
	if m, ok := servers[strings.ToLower(server)]; ok {
		return m.routing
	}
	return Unknown
}

// ToPlatform returns the platform value for a server code, or Unknown.
// Input is case-insensitive.
func ToPlatform(server string) string {
	if m, ok := servers[strings.ToLower(server)]; ok {
		return m.platform
	}
	return Unknown
}

// Supported returns the supported server codes, sorted.
func Supported() []string {
	out := make([]string, 0, len(servers))
	for s := range servers {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
