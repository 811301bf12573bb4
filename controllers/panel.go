package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"Recluta/middleware"
	"Recluta/services/platform"
	"Recluta/services/roster"
	"Recluta/services/store"
	"Recluta/services/worker"

	"github.com/gin-gonic/gin"
)

// PanelController serves the join/leave/delete buttons of published panels.
type PanelController struct {
	Engine    *roster.Engine
	Store     store.PanelStore
	Worker    *worker.Worker
	Messenger platform.Messenger
}

// JoinPanel handles the join button. "Already joined" and "full" are
// successful responses with a descriptive status, not errors.
func (pc *PanelController) JoinPanel(c *gin.Context) {
	user, err := middleware.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	panelID := c.Param("panel_id")

	result, err := pc.Engine.Join(c.Request.Context(), panelID, user)
	if errors.Is(err, roster.ErrPanelExpired) {
		pc.retireStalePanel(panelID)
		c.JSON(http.StatusGone, gin.H{
			"status":  "expired",
			"message": "This recruitment has expired, removing it.",
		})
		return
	}
	if err != nil {
		log.Printf("Error joining panel %s: %v", panelID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error joining recruitment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       string(result.Status),
		"is_full":      result.IsFull,
		"joined_count": len(result.Roster.Joined),
		"capacity":     result.Roster.Capacity.Size(),
	})
}

// LeavePanel handles the leave button. The creator is always refused.
func (pc *PanelController) LeavePanel(c *gin.Context) {
	user, err := middleware.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	panelID := c.Param("panel_id")

	status, err := pc.Engine.Leave(c.Request.Context(), panelID, user)
	if errors.Is(err, roster.ErrPanelExpired) {
		pc.retireStalePanel(panelID)
		c.JSON(http.StatusGone, gin.H{
			"status":  "expired",
			"message": "This recruitment has expired, removing it.",
		})
		return
	}
	if err != nil {
		log.Printf("Error leaving panel %s: %v", panelID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error leaving recruitment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(status)})
}

// DeletePanel handles the creator's delete button.
func (pc *PanelController) DeletePanel(c *gin.Context) {
	user, err := middleware.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	panelID := c.Param("panel_id")

	status, err := pc.Engine.Delete(c.Request.Context(), panelID, user)
	if errors.Is(err, roster.ErrPanelExpired) {
		c.JSON(http.StatusGone, gin.H{"status": "expired"})
		return
	}
	if err != nil {
		log.Printf("Error deleting panel %s: %v", panelID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting recruitment"})
		return
	}
	if status == roster.DeleteStatusNotCreator {
		c.JSON(http.StatusForbidden, gin.H{"status": string(status)})
		return
	}

	if status == roster.DeleteStatusDeleted {
		pc.retireStalePanel(panelID)
	}
	c.JSON(http.StatusOK, gin.H{"status": string(status)})
}

// GetPanel returns a read-only snapshot for re-rendering a panel post.
func (pc *PanelController) GetPanel(c *gin.Context) {
	panelID := c.Param("panel_id")

	snapshot, err := pc.Engine.Get(c.Request.Context(), panelID)
	if errors.Is(err, roster.ErrPanelExpired) {
		c.JSON(http.StatusGone, gin.H{"status": "expired"})
		return
	}
	if err != nil {
		log.Printf("Error fetching panel %s: %v", panelID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching recruitment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"panel_id": snapshot.PanelID,
		"creator":  snapshot.Creator,
		"server":   string(snapshot.Server),
		"mode":     string(snapshot.Mode),
		"rank":     string(snapshot.Rank),
		"capacity": snapshot.Capacity.Size(),
		"joined":   snapshot.Joined,
		"is_full":  snapshot.IsFull(),
	})
}

// RotateEntryPanel points the "latest entry panel" key at a new message and
// retires the previous post in the background.
func (pc *PanelController) RotateEntryPanel(c *gin.Context) {
	var body struct {
		MessageID string `json:"message_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message_id is required"})
		return
	}

	previous, err := pc.Store.GetEntryPanel(c.Request.Context())
	if err != nil && !errors.Is(err, store.ErrEntryPanelNotFound) {
		log.Printf("Error reading entry panel pointer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error rotating entry panel"})
		return
	}

	if err := pc.Store.SetEntryPanel(c.Request.Context(), body.MessageID); err != nil {
		log.Printf("Error saving entry panel pointer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error rotating entry panel"})
		return
	}

	if previous != "" && previous != body.MessageID {
		pc.Worker.Submit("retire-entry-panel", func(ctx context.Context) error {
			return pc.Messenger.DeleteMessage(ctx, previous)
		})
	}
	c.JSON(http.StatusOK, gin.H{"entry_panel": body.MessageID, "previous": previous})
}

// retireStalePanel deletes the rendered post of a vanished panel, best
// effort, off the request path. The gateway registers panel posts under
// their panel ID (see platform.Messenger.DeleteMessage), so the ID is the
// post's handle here.
func (pc *PanelController) retireStalePanel(panelID string) {
	pc.Worker.Submit("retire-stale-panel", func(ctx context.Context) error {
		return pc.Messenger.DeleteMessage(ctx, panelID)
	})
}
