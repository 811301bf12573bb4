package platform

import (
	"context"
	"log"
)

// Messenger is the narrow slice of the chat platform the core depends on.
// Every call is an opaque effectful operation; the core only inspects
// success or failure, never the rendered content.
type Messenger interface {
	// SendInteractivePrompt posts a prompt to a user and returns its opaque
	// handle, used later to edit or tear the prompt down.
	SendInteractivePrompt(ctx context.Context, userID string, content string) (handle string, err error)
	EditInteractivePrompt(ctx context.Context, handle string, content string) error
	CreateEphemeralReply(ctx context.Context, handle string, content string) error
	// DeleteMessage removes a rendered post by its platform message ID.
	// Panel posts are registered with the gateway under their panel ID, so
	// the same identifier addresses both the stored roster and its post;
	// entry panel posts are addressed by the raw message ID the rotation
	// endpoint was given.
	DeleteMessage(ctx context.Context, messageID string) error
	ResolveUserDisplay(ctx context.Context, userID string) (string, error)
}

// LogMessenger is a Messenger that only logs. It stands in for the real
// gateway client in tests and when running the backend headless.
type LogMessenger struct{}

func (LogMessenger) SendInteractivePrompt(ctx context.Context, userID string, content string) (string, error) {
	log.Printf("[PLATFORM] prompt to %s: %s", userID, content)
	return "prompt:" + userID, nil
}

func (LogMessenger) EditInteractivePrompt(ctx context.Context, handle string, content string) error {
	log.Printf("[PLATFORM] edit %s: %s", handle, content)
	return nil
}

func (LogMessenger) CreateEphemeralReply(ctx context.Context, handle string, content string) error {
	log.Printf("[PLATFORM] ephemeral reply on %s: %s", handle, content)
	return nil
}

func (LogMessenger) DeleteMessage(ctx context.Context, messageID string) error {
	log.Printf("[PLATFORM] delete message %s", messageID)
	return nil
}

func (LogMessenger) ResolveUserDisplay(ctx context.Context, userID string) (string, error) {
	return userID, nil
}
