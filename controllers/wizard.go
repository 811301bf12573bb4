package controllers

import (
	"errors"
	"log"
	"net/http"

	"Recluta/middleware"
	wizard_models "Recluta/models/wizard"
	"Recluta/services/wizard"

	"github.com/gin-gonic/gin"
)

// WizardController serves the guided recruitment dialog.
type WizardController struct {
	Coordinator *wizard.Coordinator
}

// StartWizard opens (or restarts) the wizard for the authenticated user.
func (wc *WizardController) StartWizard(c *gin.Context) {
	user, err := middleware.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var body struct {
		PromptHandle string `json:"prompt_handle" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt_handle is required"})
		return
	}

	prompt := wc.Coordinator.Start(user, body.PromptHandle)
	c.JSON(http.StatusOK, gin.H{"step": string(prompt.Step), "options": prompt.Options})
}

// AnswerStep feeds one wizard answer in and returns the next prompt.
func (wc *WizardController) AnswerStep(c *gin.Context) {
	user, err := middleware.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var body struct {
		Step   string `json:"step" binding:"required"`
		Answer string `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "step and answer are required"})
		return
	}

	prompt, err := wc.Coordinator.Advance(user, wizard_models.Step(body.Step), body.Answer)
	switch {
	case errors.Is(err, wizard.ErrSessionExpired):
		c.JSON(http.StatusGone, gin.H{
			"status":  "expired",
			"message": "Your recruitment wizard expired, please start again.",
		})
	case errors.Is(err, wizard.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "answer does not match the current step"})
	case errors.Is(err, wizard.ErrInvalidAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer not among the offered options"})
	case err != nil:
		log.Printf("Error advancing wizard for %s: %v", user, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error advancing wizard"})
	default:
		c.JSON(http.StatusOK, gin.H{"step": string(prompt.Step), "options": prompt.Options})
	}
}

// FinalizeWizard publishes the draft with its free-text message.
func (wc *WizardController) FinalizeWizard(c *gin.Context) {
	user, err := middleware.UserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}

	result, err := wc.Coordinator.Finalize(c.Request.Context(), user, body.Message)
	switch {
	case errors.Is(err, wizard.ErrSessionExpired):
		c.JSON(http.StatusGone, gin.H{
			"status":  "expired",
			"message": "Your recruitment wizard expired, please start again.",
		})
		return
	case errors.Is(err, wizard.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "wizard is not ready to publish"})
		return
	case errors.Is(err, wizard.ErrInvalidAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "recruitment message too long"})
		return
	case err != nil:
		log.Printf("Error publishing recruitment for %s: %v", user, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error publishing recruitment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"panel_id":      result.Roster.PanelID,
		"creator":       result.Roster.Creator,
		"server":        string(result.Roster.Server),
		"mode":          string(result.Roster.Mode),
		"rank":          string(result.Roster.Rank),
		"capacity":      result.Roster.Capacity.Size(),
		"joined":        result.Roster.Joined,
		"message":       result.Message,
		"prompt_handle": result.PromptHandle,
	})
}
