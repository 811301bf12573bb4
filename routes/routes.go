package routes

import (
	"Recluta/controllers"
	"Recluta/middleware"
	"Recluta/services/platform"
	"Recluta/services/roster"
	"Recluta/services/store"
	"Recluta/services/wizard"
	"Recluta/services/worker"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, panelStore store.PanelStore, engine *roster.Engine,
	coordinator *wizard.Coordinator, w *worker.Worker, messenger platform.Messenger) {

	panelController := &controllers.PanelController{
		Engine:    engine,
		Store:     panelStore,
		Worker:    w,
		Messenger: messenger,
	}
	wizardController := &controllers.WizardController{Coordinator: coordinator}

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	// Everything below is called by the gateway on behalf of a user and
	// carries a signed token identifying them.
	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthRequired)
	{
		wizardGroup := authenticated.Group("/wizard")
		{
			wizardGroup.POST("/start", wizardController.StartWizard)
			wizardGroup.POST("/answer", wizardController.AnswerStep)
			wizardGroup.POST("/finalize", wizardController.FinalizeWizard)
		}

		panels := authenticated.Group("/panels")
		{
			panels.GET("/:panel_id", panelController.GetPanel)
			panels.POST("/:panel_id/join", panelController.JoinPanel)
			panels.POST("/:panel_id/leave", panelController.LeavePanel)
			panels.DELETE("/:panel_id", panelController.DeletePanel)
		}

		authenticated.POST("/entry-panel", panelController.RotateEntryPanel)
	}
}
