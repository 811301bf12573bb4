package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatPanelKey(panelID string) string {
	return fmt.Sprintf("panel:%s", panelID)
}

// EntryPanelKey holds the message ID of the latest "create a recruitment"
// panel post. Single pointer, no per-entity suffix.
const EntryPanelKey = "entry_panel"
