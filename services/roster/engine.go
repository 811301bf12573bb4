package roster

import (
	"context"
	"errors"
	"fmt"

	redis_models "Recluta/models/redis"
	"Recluta/services/platform"
	"Recluta/services/store"
	"Recluta/services/worker"

	"github.com/google/uuid"
)

// ErrPanelExpired means the panel key is gone, whether deleted or aged out.
// It is an expected terminal state: the caller tears down the rendered post
// instead of reporting a failure.
var ErrPanelExpired = errors.New("recruitment panel expired")

// JoinStatus is the closed set of join outcomes.
type JoinStatus string

const (
	JoinStatusJoined        JoinStatus = "joined"
	JoinStatusAlreadyJoined JoinStatus = "already_joined"
	JoinStatusFull          JoinStatus = "full"
)

// JoinResult carries the outcome plus the flag callers use to lock the
// panel UI. IsFull is computed inside the same atomic mutation that admitted
// the user, so it is exact on the call that fills the last slot.
type JoinResult struct {
	Status JoinStatus
	IsFull bool
	Roster *redis_models.Roster
}

// LeaveStatus is the closed set of leave outcomes.
type LeaveStatus string

const (
	LeaveStatusLeft         LeaveStatus = "left"
	LeaveStatusCreatorLeave LeaveStatus = "creator_leave"
	LeaveStatusNotJoined    LeaveStatus = "not_joined"
)

// DeleteStatus is the closed set of delete outcomes.
type DeleteStatus string

const (
	DeleteStatusDeleted    DeleteStatus = "deleted"
	DeleteStatusNotCreator DeleteStatus = "not_creator"
	DeleteStatusNotJoined  DeleteStatus = "not_joined"
)

// Sentinel errors used to carry outcome decisions out of the atomic
// mutate callback without writing.
var (
	errAlreadyJoined = errors.New("already joined")
	errPanelFull     = errors.New("panel full")
	errCreatorLeave  = errors.New("creator cannot leave")
	errNotJoined     = errors.New("not joined")
)

// Archiver receives lifecycle events for durable record keeping. Calls are
// dispatched on the background worker; failures never reach panel callers.
type Archiver interface {
	ArchivePublish(ctx context.Context, roster *redis_models.Roster) error
	ArchiveDelete(ctx context.Context, panelID string) error
}

// Engine is the capacity-aware roster for published panels. All membership
// mutation goes through the store's atomic UpdateJoined; the engine itself
// holds no panel state.
type Engine struct {
	store     store.PanelStore
	worker    *worker.Worker
	messenger platform.Messenger
	archiver  Archiver // optional
}

// NewEngine wires the engine. archiver may be nil when no durable archive is
// configured.
func NewEngine(s store.PanelStore, w *worker.Worker, m platform.Messenger, a Archiver) *Engine {
	return &Engine{
		store:     s,
		worker:    w,
		messenger: m,
		archiver:  a,
	}
}

// Publish persists a completed draft as a live panel. A blank PanelID gets a
// fresh opaque one. The creator is guaranteed onto the roster.
func (e *Engine) Publish(ctx context.Context, roster *redis_models.Roster) (*redis_models.Roster, error) {
	published := roster.Clone()
	if published.PanelID == "" {
		published.PanelID = uuid.NewString()
	}
	if !published.HasJoined(published.Creator) {
		published.Joined = append([]string{published.Creator}, published.Joined...)
	}
	if err := e.store.SaveRoster(ctx, published); err != nil {
		return nil, err
	}
	if e.archiver != nil {
		snapshot := published.Clone()
		e.worker.Submit("archive-publish", func(ctx context.Context) error {
			return e.archiver.ArchivePublish(ctx, snapshot)
		})
	}
	return published, nil
}

// Join adds a user to a panel. The membership check, the capacity check and
// the write happen in one atomic step against the store; two users racing
// for the last slot cannot both get in.
func (e *Engine) Join(ctx context.Context, panelID string, user string) (JoinResult, error) {
	var after *redis_models.Roster

	err := e.store.UpdateJoined(ctx, panelID, func(r *redis_models.Roster) ([]string, error) {
		after = r
		if r.HasJoined(user) {
			return nil, errAlreadyJoined
		}
		if r.IsFull() {
			return nil, errPanelFull
		}
		joined := append(append([]string{}, r.Joined...), user)
		r.Joined = joined
		return joined, nil
	})

	switch {
	case err == nil:
		result := JoinResult{Status: JoinStatusJoined, IsFull: after.IsFull(), Roster: after}
		if result.IsFull {
			e.notifyFull(after)
		}
		return result, nil
	case errors.Is(err, errAlreadyJoined):
		return JoinResult{Status: JoinStatusAlreadyJoined, IsFull: after.IsFull(), Roster: after}, nil
	case errors.Is(err, errPanelFull):
		return JoinResult{Status: JoinStatusFull, IsFull: true, Roster: after}, nil
	case errors.Is(err, store.ErrRosterNotFound):
		return JoinResult{}, ErrPanelExpired
	default:
		return JoinResult{}, err
	}
}

// Leave removes a user from a panel. The creator is refused: the panel can
// only be closed outright via Delete.
func (e *Engine) Leave(ctx context.Context, panelID string, user string) (LeaveStatus, error) {
	err := e.store.UpdateJoined(ctx, panelID, func(r *redis_models.Roster) ([]string, error) {
		if r.Creator == user {
			return nil, errCreatorLeave
		}
		if !r.HasJoined(user) {
			return nil, errNotJoined
		}
		joined := make([]string, 0, len(r.Joined))
		for _, u := range r.Joined {
			if u != user {
				joined = append(joined, u)
			}
		}
		return joined, nil
	})

	switch {
	case err == nil:
		return LeaveStatusLeft, nil
	case errors.Is(err, errCreatorLeave):
		return LeaveStatusCreatorLeave, nil
	case errors.Is(err, errNotJoined):
		return LeaveStatusNotJoined, nil
	case errors.Is(err, store.ErrRosterNotFound):
		return "", ErrPanelExpired
	default:
		return "", err
	}
}

// Delete closes a panel for good. Only the creator may delete, and only
// while still on the roster (stale records where the creator is gone are
// refused rather than trusted).
func (e *Engine) Delete(ctx context.Context, panelID string, requestedBy string) (DeleteStatus, error) {
	roster, err := e.store.GetRoster(ctx, panelID)
	if errors.Is(err, store.ErrRosterNotFound) {
		return "", ErrPanelExpired
	}
	if err != nil {
		return "", err
	}
	if roster.Creator != requestedBy {
		return DeleteStatusNotCreator, nil
	}
	if !roster.HasJoined(requestedBy) {
		return DeleteStatusNotJoined, nil
	}

	if err := e.store.DeleteRoster(ctx, panelID); err != nil {
		if errors.Is(err, store.ErrRosterNotFound) {
			return "", ErrPanelExpired
		}
		return "", err
	}
	if e.archiver != nil {
		e.worker.Submit("archive-delete", func(ctx context.Context) error {
			return e.archiver.ArchiveDelete(ctx, panelID)
		})
	}
	return DeleteStatusDeleted, nil
}

// Get returns a read-only snapshot of a panel.
func (e *Engine) Get(ctx context.Context, panelID string) (*redis_models.Roster, error) {
	roster, err := e.store.GetRoster(ctx, panelID)
	if errors.Is(err, store.ErrRosterNotFound) {
		return nil, ErrPanelExpired
	}
	return roster, err
}

// notifyFull fans a "panel is full" notice out to every joined user on the
// background worker. Best effort only.
func (e *Engine) notifyFull(roster *redis_models.Roster) {
	snapshot := roster.Clone()
	e.worker.Submit("notify-full", func(ctx context.Context) error {
		for _, user := range snapshot.Joined {
			display, err := e.messenger.ResolveUserDisplay(ctx, user)
			if err != nil {
				display = user
			}
			content := fmt.Sprintf("Recruitment %s is full (%d/%d). See you in game, %s!",
				snapshot.PanelID, len(snapshot.Joined), snapshot.Capacity.Size(), display)
			if _, err := e.messenger.SendInteractivePrompt(ctx, user, content); err != nil {
				return err
			}
		}
		return nil
	})
}
