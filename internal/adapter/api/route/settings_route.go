package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/controller"
)

// RegisterSettingsRoutes registra as rotas de preferências
func RegisterSettingsRoutes(r *gin.RouterGroup, settingsController *controller.SettingsController) {
	r.GET("/settings", settingsController.Get)
	r.PUT("/settings", settingsController.Update)
}
