package wizard

import (
	"time"

	"Recluta/models/recruit"
)

// State tracks how far through the guided dialog a draft has progressed.
type State string

const (
	StateIdle             State = "idle"
	StateServerChosen     State = "server_chosen"
	StateModeChosen       State = "mode_chosen"
	StateRankChosen       State = "rank_chosen"
	StateCapacityChosen   State = "capacity_chosen"
	StateMessageSubmitted State = "message_submitted"
)

// Step identifies which wizard question an answer belongs to.
type Step string

const (
	StepServer   Step = "server"
	StepMode     Step = "mode"
	StepRank     Step = "rank"
	StepCapacity Step = "capacity"
	StepMessage  Step = "message"
)

// Session is one user's in-flight recruitment draft. There is at most one
// per owner; starting a new wizard replaces it.
type Session struct {
	Owner     string
	Server    recruit.Server
	Mode      recruit.Mode
	Rank      recruit.Rank
	Capacity  recruit.Capacity
	Joined    []string
	State     State
	CreatedAt time.Time
}

// NewSession seeds a draft with the defaults the original panel flow uses:
// Tokyo, Unrated, Duo, the owner already on the roster.
func NewSession(owner string) *Session {
	return &Session{
		Owner:     owner,
		Server:    recruit.ServerTokyo,
		Mode:      recruit.ModeUnrated,
		Rank:      recruit.RankNone,
		Capacity:  recruit.CapacityDuo,
		Joined:    []string{owner},
		State:     StateIdle,
		CreatedAt: time.Now(),
	}
}

// Expired reports whether the session has outlived its soft TTL.
func (s *Session) Expired(ttl time.Duration) bool {
	return time.Since(s.CreatedAt) > ttl
}

// Prompt is the single outstanding interactive prompt for a user. The handle
// is opaque to the core; the platform layer needs it to edit or tear down
// the prompt message later.
type Prompt struct {
	Owner     string
	Handle    string
	CreatedAt time.Time
}

// Expired reports whether the prompt has outlived its interactive lifetime.
func (p *Prompt) Expired(ttl time.Duration) bool {
	return time.Since(p.CreatedAt) > ttl
}
