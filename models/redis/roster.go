package redis

import (
	"fmt"
	"strings"

	"Recluta/models/recruit"
)

// Roster is the live state of a published recruitment panel. It is stored in
// Redis as a hash keyed by the panel ID, one field per attribute, with the
// joined list flattened to a comma-separated string in join order.
type Roster struct {
	PanelID  string
	Creator  string
	Server   recruit.Server
	Mode     recruit.Mode
	Rank     recruit.Rank // RankNone unless the mode is Competitive
	Capacity recruit.Capacity
	Joined   []string // unique user IDs, join order
}

// Hash field names of the persisted record.
const (
	FieldCreator = "creator"
	FieldServer  = "server"
	FieldMode    = "mode"
	FieldRank    = "rank"
	FieldMember  = "member"
	FieldJoined  = "joined"
)

// FieldMap flattens the roster into the persisted hash representation.
func (r *Roster) FieldMap() map[string]string {
	rank := r.Rank
	if rank == "" {
		rank = recruit.RankNone
	}
	return map[string]string{
		FieldCreator: r.Creator,
		FieldServer:  string(r.Server),
		FieldMode:    string(r.Mode),
		FieldRank:    string(rank),
		FieldMember:  string(r.Capacity),
		FieldJoined:  JoinUserIDs(r.Joined),
	}
}

// RosterFromFields rebuilds a roster from a persisted hash. Unknown enum
// tokens are rejected; a missing or foreign rank collapses to RankNone.
func RosterFromFields(panelID string, fields map[string]string) (*Roster, error) {
	creator, ok := fields[FieldCreator]
	if !ok || creator == "" {
		return nil, fmt.Errorf("roster %s: missing creator field", panelID)
	}
	server, err := recruit.ParseServer(fields[FieldServer])
	if err != nil {
		return nil, fmt.Errorf("roster %s: %v", panelID, err)
	}
	mode, err := recruit.ParseMode(fields[FieldMode])
	if err != nil {
		return nil, fmt.Errorf("roster %s: %v", panelID, err)
	}
	rank := recruit.RankNone
	if v, ok := fields[FieldRank]; ok && v != string(recruit.RankNone) {
		if parsed, err := recruit.ParseRank(v); err == nil {
			rank = parsed
		}
	}
	capacity, err := recruit.ParseCapacity(fields[FieldMember])
	if err != nil {
		return nil, fmt.Errorf("roster %s: %v", panelID, err)
	}
	return &Roster{
		PanelID:  panelID,
		Creator:  creator,
		Server:   server,
		Mode:     mode,
		Rank:     rank,
		Capacity: capacity,
		Joined:   SplitUserIDs(fields[FieldJoined]),
	}, nil
}

// HasJoined reports whether a user is on the roster.
func (r *Roster) HasJoined(user string) bool {
	for _, u := range r.Joined {
		if u == user {
			return true
		}
	}
	return false
}

// IsFull reports whether the roster has reached capacity.
func (r *Roster) IsFull() bool {
	return len(r.Joined) >= r.Capacity.Size()
}

// Clone returns a deep copy, so callers can hand snapshots around without
// sharing the joined slice.
func (r *Roster) Clone() *Roster {
	c := *r
	c.Joined = make([]string, len(r.Joined))
	copy(c.Joined, r.Joined)
	return &c
}

// JoinUserIDs flattens user IDs to the persisted comma-separated form.
func JoinUserIDs(ids []string) string {
	return strings.Join(ids, ",")
}

// SplitUserIDs parses the persisted joined field, dropping empty tokens.
func SplitUserIDs(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
