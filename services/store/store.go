package store

import (
	"context"
	"errors"

	redis_models "Recluta/models/redis"
)

// ErrRosterNotFound is returned whenever a panel key is absent, whether it
// was deleted or aged out. Callers treat it as an ordinary terminal state,
// not a failure.
var ErrRosterNotFound = errors.New("roster not found")

// ErrEntryPanelNotFound is returned when no entry panel pointer is set.
var ErrEntryPanelNotFound = errors.New("entry panel pointer not set")

// MutateJoined inspects a fresh roster snapshot and returns the replacement
// joined list. Returning an error aborts the update without writing; the
// error is handed back to the caller unchanged so it can carry outcome
// decisions (already joined, full, creator leave) out of the critical
// section.
type MutateJoined func(roster *redis_models.Roster) ([]string, error)

// PanelStore is the persistence contract the roster engine runs on. The
// production implementation lives in services/redis; the in-memory one in
// this package backs tests.
//
// UpdateJoined is the only mutation path for membership and must apply the
// read-mutate-write as a single atomic step per panel key. Separate
// Get+Save calls are not an acceptable substitute.
type PanelStore interface {
	SaveRoster(ctx context.Context, roster *redis_models.Roster) error
	GetRoster(ctx context.Context, panelID string) (*redis_models.Roster, error)
	DeleteRoster(ctx context.Context, panelID string) error
	UpdateJoined(ctx context.Context, panelID string, mutate MutateJoined) error

	// Latest "create a recruitment" panel post, so posting a new one can
	// retire its predecessor.
	SetEntryPanel(ctx context.Context, messageID string) error
	GetEntryPanel(ctx context.Context) (string, error)
	DeleteEntryPanel(ctx context.Context) error
}
