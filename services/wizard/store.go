package wizard

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	wizard_models "Recluta/models/wizard"
)

// ErrNotTracked is returned by Remove when there was nothing stored for the
// user. Teardown logic needs to tell "cleanup succeeded" apart from "nothing
// to clean up", because sessions and prompts are torn down together and only
// a missing session warrants a restart message.
var ErrNotTracked = errors.New("no entry tracked for user")

// SessionStore maps a user to their in-flight recruitment draft. Entries
// carry a soft TTL enforced lazily on access and by a periodic sweep; an
// expired entry behaves exactly like an absent one.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*wizard_models.Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*wizard_models.Session),
	}
}

// Put stores or replaces the owner's session. A new wizard always wins.
func (ss *SessionStore) Put(owner string, s *wizard_models.Session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[owner] = s
}

// Get returns the owner's live session. Expired entries are reaped on the
// spot and reported as absent.
func (ss *SessionStore) Get(owner string) (*wizard_models.Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.sessions[owner]
	if !ok {
		return nil, false
	}
	if s.Expired(ss.ttl) {
		delete(ss.sessions, owner)
		return nil, false
	}
	return s, true
}

// Update runs fn against the owner's live session under the store's lock,
// the same read-validate-mutate contract the panel store gives membership
// changes. A user's client can double-submit an answer; serializing the whole
// step transition here is what keeps the draft consistent. An fn error aborts
// with the session untouched only if fn itself made no writes. Returns
// ErrNotTracked when there is no live session.
func (ss *SessionStore) Update(owner string, fn func(*wizard_models.Session) error) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.sessions[owner]
	if !ok {
		return ErrNotTracked
	}
	if s.Expired(ss.ttl) {
		delete(ss.sessions, owner)
		return ErrNotTracked
	}
	return fn(s)
}

// Remove drops the owner's session, failing loudly when there was none.
func (ss *SessionStore) Remove(owner string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, ok := ss.sessions[owner]; !ok {
		return ErrNotTracked
	}
	delete(ss.sessions, owner)
	return nil
}

// Sweep drops every expired session and returns how many were reaped.
func (ss *SessionStore) Sweep() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	reaped := 0
	for owner, s := range ss.sessions {
		if s.Expired(ss.ttl) {
			delete(ss.sessions, owner)
			reaped++
		}
	}
	return reaped
}

// PromptStore maps a user to their single outstanding interactive prompt.
// Same contract as SessionStore: one entry per owner, soft TTL, loud Remove.
type PromptStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	prompts map[string]*wizard_models.Prompt
}

func NewPromptStore(ttl time.Duration) *PromptStore {
	return &PromptStore{
		ttl:     ttl,
		prompts: make(map[string]*wizard_models.Prompt),
	}
}

func (ps *PromptStore) Put(owner string, p *wizard_models.Prompt) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.prompts[owner] = p
}

func (ps *PromptStore) Get(owner string) (*wizard_models.Prompt, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, ok := ps.prompts[owner]
	if !ok {
		return nil, false
	}
	if p.Expired(ps.ttl) {
		delete(ps.prompts, owner)
		return nil, false
	}
	return p, true
}

func (ps *PromptStore) Remove(owner string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if _, ok := ps.prompts[owner]; !ok {
		return ErrNotTracked
	}
	delete(ps.prompts, owner)
	return nil
}

func (ps *PromptStore) Sweep() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	reaped := 0
	for owner, p := range ps.prompts {
		if p.Expired(ps.ttl) {
			delete(ps.prompts, owner)
			reaped++
		}
	}
	return reaped
}

// StartSweeper reaps expired sessions and prompts on a fixed cadence until
// the context is cancelled.
func StartSweeper(ctx context.Context, interval time.Duration, ss *SessionStore, ps *PromptStore) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := ss.Sweep() + ps.Sweep(); n > 0 {
					log.Printf("[WIZARD] swept %d expired entries", n)
				}
			}
		}
	}()
}
