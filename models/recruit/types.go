package recruit

import "fmt"

/*
 * This file defines the closed enum types a recruitment panel is built from.
 * The string values are the exact tokens persisted in Redis and rendered in
 * the panel post, so parsing is strict: anything outside the declared
 * variants is rejected.
 */

// Server is the game region a recruitment targets.
type Server string

const (
	ServerTokyo     Server = "Tokyo"
	ServerHongKong  Server = "HongKong"
	ServerSingapore Server = "Singapore"
	ServerSydney    Server = "Sydney"
	ServerMumbai    Server = "Mumbai"
)

// Servers lists every selectable server, in menu order.
var Servers = []Server{ServerTokyo, ServerHongKong, ServerSingapore, ServerSydney, ServerMumbai}

func ParseServer(s string) (Server, error) {
	for _, v := range Servers {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid server %q", s)
}

// Mode is the match type being recruited for.
type Mode string

const (
	ModeUnrated     Mode = "Unrated"
	ModeCompetitive Mode = "Competitive"
	ModeCustom      Mode = "Custom"
)

var Modes = []Mode{ModeUnrated, ModeCompetitive, ModeCustom}

func ParseMode(s string) (Mode, error) {
	for _, v := range Modes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid mode %q", s)
}

// Rank restricts who a Competitive recruitment is aimed at. RankNone is the
// persisted sentinel for "no rank restriction" (every non-Competitive panel).
type Rank string

const (
	RankNone      Rank = "None"
	RankUnranked  Rank = "Unranked"
	RankIron      Rank = "Iron"
	RankBronze    Rank = "Bronze"
	RankSilver    Rank = "Silver"
	RankGold      Rank = "Gold"
	RankPlatinum  Rank = "Platinum"
	RankDiamond   Rank = "Diamond"
	RankAscendant Rank = "Ascendant"
	RankImmortal  Rank = "Immortal"
	RankRadiant   Rank = "Radiant"
)

// Ranks lists the selectable ranks (RankNone is not offered in the menu).
var Ranks = []Rank{
	RankUnranked, RankIron, RankBronze, RankSilver, RankGold,
	RankPlatinum, RankDiamond, RankAscendant, RankImmortal, RankRadiant,
}

func ParseRank(s string) (Rank, error) {
	for _, v := range Ranks {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid rank %q", s)
}

// Capacity is the party size of a panel. The string form is what gets
// persisted in the "member" hash field.
type Capacity string

const (
	CapacityDuo       Capacity = "Duo"
	CapacityTrio      Capacity = "Trio"
	CapacityQuad      Capacity = "Quad"
	CapacityFullParty Capacity = "FullParty"
	CapacitySix       Capacity = "Six"
	CapacitySeven     Capacity = "Seven"
	CapacityEight     Capacity = "Eight"
	CapacityNine      Capacity = "Nine"
	CapacityTen       Capacity = "Ten"
)

var capacitySizes = map[Capacity]int{
	CapacityDuo:       2,
	CapacityTrio:      3,
	CapacityQuad:      4,
	CapacityFullParty: 5,
	CapacitySix:       6,
	CapacitySeven:     7,
	CapacityEight:     8,
	CapacityNine:      9,
	CapacityTen:       10,
}

// Size returns the member count a capacity admits, 0 for an unknown value.
func (c Capacity) Size() int {
	return capacitySizes[c]
}

func ParseCapacity(s string) (Capacity, error) {
	c := Capacity(s)
	if _, ok := capacitySizes[c]; !ok {
		return "", fmt.Errorf("invalid capacity %q", s)
	}
	return c, nil
}

// capacityOptions is the per-mode party size menu. Kept as a table so product
// changes are one-line edits instead of scattered branching. Competitive
// deliberately has no Quad entry.
var capacityOptions = map[Mode][]Capacity{
	ModeUnrated:     {CapacityDuo, CapacityTrio, CapacityQuad, CapacityFullParty},
	ModeCompetitive: {CapacityDuo, CapacityTrio, CapacityFullParty},
	ModeCustom: {
		CapacityDuo, CapacityTrio, CapacityQuad, CapacityFullParty,
		CapacitySix, CapacitySeven, CapacityEight, CapacityNine, CapacityTen,
	},
}

// CapacityOptions returns the party sizes offered for a mode, in menu order.
// The returned slice is a copy.
func CapacityOptions(m Mode) []Capacity {
	opts := capacityOptions[m]
	out := make([]Capacity, len(opts))
	copy(out, opts)
	return out
}

// CapacityAllowed reports whether a capacity is selectable under a mode.
func CapacityAllowed(m Mode, c Capacity) bool {
	for _, v := range capacityOptions[m] {
		if v == c {
			return true
		}
	}
	return false
}
