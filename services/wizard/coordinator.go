package wizard

import (
	"context"
	"errors"
	"log"
	"time"

	recruit_constants "Recluta/constants/recruit"
	"Recluta/models/recruit"
	redis_models "Recluta/models/redis"
	wizard_models "Recluta/models/wizard"
	"Recluta/services/roster"
)

// ErrSessionExpired means there is no live draft for the user. Expected:
// the caller answers with a "please restart" message, nothing is logged.
var ErrSessionExpired = errors.New("wizard session expired")

// ErrInvalidState means the answered step does not match where the draft
// actually is (double submit, stale UI).
var ErrInvalidState = errors.New("answer does not match the current wizard step")

// ErrInvalidAnswer means the answer is outside the step's option set.
var ErrInvalidAnswer = errors.New("answer not among the offered options")

// StepPrompt describes the next question to render: which step it is and
// the options to offer. Options is empty for the free-text message step.
type StepPrompt struct {
	Step    wizard_models.Step
	Options []string
}

// PublishResult is what Finalize hands back: the published roster, the
// free-text recruitment message for rendering, and the handle of the now
// stale prompt so the caller can tear its UI down.
type PublishResult struct {
	Roster       *redis_models.Roster
	Message      string
	PromptHandle string
}

// Coordinator drives the wizard's finite-state progression and converts a
// finished draft into a published panel. Per-user state lives in the two
// stores; step transitions run inside SessionStore.Update so concurrent
// submissions for the same owner serialize there.
type Coordinator struct {
	sessions *SessionStore
	prompts  *PromptStore
	engine   *roster.Engine
}

func NewCoordinator(sessions *SessionStore, prompts *PromptStore, engine *roster.Engine) *Coordinator {
	return &Coordinator{
		sessions: sessions,
		prompts:  prompts,
		engine:   engine,
	}
}

// Start opens (or restarts) the wizard for a user. Any previous draft and
// prompt are replaced without complaint; a new wizard always wins.
func (c *Coordinator) Start(owner string, promptHandle string) StepPrompt {
	c.sessions.Put(owner, wizard_models.NewSession(owner))
	c.prompts.Put(owner, &wizard_models.Prompt{
		Owner:     owner,
		Handle:    promptHandle,
		CreatedAt: time.Now(),
	})
	return serverPrompt()
}

// Advance validates one answer, mutates the draft and returns the next
// prompt. The whole step transition runs inside the session store's Update so
// a double-submitted answer serializes: the first wins, the second sees the
// advanced state and gets ErrInvalidState. ErrSessionExpired when there is no
// draft; ErrInvalidAnswer when the answer is out of domain. None of these are
// fatal.
func (c *Coordinator) Advance(owner string, step wizard_models.Step, answer string) (StepPrompt, error) {
	var next StepPrompt
	err := c.sessions.Update(owner, func(s *wizard_models.Session) error {
		if step != expectedStep(s) {
			return ErrInvalidState
		}

		switch step {
		case wizard_models.StepServer:
			server, err := recruit.ParseServer(answer)
			if err != nil {
				return ErrInvalidAnswer
			}
			s.Server = server
			s.State = wizard_models.StateServerChosen
			next = modePrompt()
			return nil

		case wizard_models.StepMode:
			mode, err := recruit.ParseMode(answer)
			if err != nil {
				return ErrInvalidAnswer
			}
			s.Mode = mode
			s.State = wizard_models.StateModeChosen
			if mode == recruit.ModeCompetitive {
				next = rankPrompt()
				return nil
			}
			// Non-competitive drafts skip straight to party size.
			s.Rank = recruit.RankNone
			next = capacityPrompt(mode)
			return nil

		case wizard_models.StepRank:
			rank, err := recruit.ParseRank(answer)
			if err != nil {
				return ErrInvalidAnswer
			}
			s.Rank = rank
			s.State = wizard_models.StateRankChosen
			next = capacityPrompt(s.Mode)
			return nil

		case wizard_models.StepCapacity:
			capacity, err := recruit.ParseCapacity(answer)
			if err != nil || !recruit.CapacityAllowed(s.Mode, capacity) {
				return ErrInvalidAnswer
			}
			s.Capacity = capacity
			s.State = wizard_models.StateCapacityChosen
			next = messagePrompt()
			return nil

		default:
			return ErrInvalidState
		}
	})
	if errors.Is(err, ErrNotTracked) {
		return StepPrompt{}, ErrSessionExpired
	}
	if err != nil {
		return StepPrompt{}, err
	}
	return next, nil
}

// Finalize turns a draft in CapacityChosen into a published panel, then
// retires the draft and its prompt. Both stores are torn down together;
// a missing entry in either is logged but does not undo the publish.
func (c *Coordinator) Finalize(ctx context.Context, owner string, message string) (PublishResult, error) {
	// Validate and claim the draft under the store's lock; moving to
	// MessageSubmitted here means a double-submitted Finalize publishes once
	// and the loser gets ErrInvalidState. The publish itself runs outside
	// the lock against a private draft copy.
	var draft *redis_models.Roster
	err := c.sessions.Update(owner, func(s *wizard_models.Session) error {
		if s.State != wizard_models.StateCapacityChosen {
			return ErrInvalidState
		}
		if len([]rune(message)) > recruit_constants.MaxRecruitMessageLength {
			return ErrInvalidAnswer
		}
		s.State = wizard_models.StateMessageSubmitted
		draft = &redis_models.Roster{
			Creator:  s.Owner,
			Server:   s.Server,
			Mode:     s.Mode,
			Rank:     s.Rank,
			Capacity: s.Capacity,
			Joined:   append([]string{}, s.Joined...),
		}
		return nil
	})
	if errors.Is(err, ErrNotTracked) {
		return PublishResult{}, ErrSessionExpired
	}
	if err != nil {
		return PublishResult{}, err
	}

	published, err := c.engine.Publish(ctx, draft)
	if err != nil {
		// Release the claim so the user can retry with the draft intact.
		_ = c.sessions.Update(owner, func(s *wizard_models.Session) error {
			s.State = wizard_models.StateCapacityChosen
			return nil
		})
		return PublishResult{}, err
	}

	var handle string
	if p, ok := c.prompts.Get(owner); ok {
		handle = p.Handle
	}
	if err := c.sessions.Remove(owner); err != nil {
		log.Printf("[WIZARD] no session to retire for %s: %v", owner, err)
	}
	if err := c.prompts.Remove(owner); err != nil {
		log.Printf("[WIZARD] no prompt to retire for %s: %v", owner, err)
	}

	return PublishResult{
		Roster:       published,
		Message:      message,
		PromptHandle: handle,
	}, nil
}

// PromptHandle exposes the owner's live prompt handle, if any.
func (c *Coordinator) PromptHandle(owner string) (string, bool) {
	p, ok := c.prompts.Get(owner)
	if !ok {
		return "", false
	}
	return p.Handle, true
}

// expectedStep maps a draft's progression to the question it should be
// answering next.
func expectedStep(s *wizard_models.Session) wizard_models.Step {
	switch s.State {
	case wizard_models.StateIdle:
		return wizard_models.StepServer
	case wizard_models.StateServerChosen:
		return wizard_models.StepMode
	case wizard_models.StateModeChosen:
		if s.Mode == recruit.ModeCompetitive {
			return wizard_models.StepRank
		}
		return wizard_models.StepCapacity
	case wizard_models.StateRankChosen:
		return wizard_models.StepCapacity
	case wizard_models.StateCapacityChosen:
		return wizard_models.StepMessage
	default:
		return ""
	}
}

func serverPrompt() StepPrompt {
	opts := make([]string, len(recruit.Servers))
	for i, v := range recruit.Servers {
		opts[i] = string(v)
	}
	return StepPrompt{Step: wizard_models.StepServer, Options: opts}
}

func modePrompt() StepPrompt {
	opts := make([]string, len(recruit.Modes))
	for i, v := range recruit.Modes {
		opts[i] = string(v)
	}
	return StepPrompt{Step: wizard_models.StepMode, Options: opts}
}

func rankPrompt() StepPrompt {
	opts := make([]string, len(recruit.Ranks))
	for i, v := range recruit.Ranks {
		opts[i] = string(v)
	}
	return StepPrompt{Step: wizard_models.StepRank, Options: opts}
}

func capacityPrompt(mode recruit.Mode) StepPrompt {
	capacities := recruit.CapacityOptions(mode)
	opts := make([]string, len(capacities))
	for i, v := range capacities {
		opts[i] = string(v)
	}
	return StepPrompt{Step: wizard_models.StepCapacity, Options: opts}
}

func messagePrompt() StepPrompt {
	return StepPrompt{Step: wizard_models.StepMessage}
}
