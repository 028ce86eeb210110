package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/controller"
)

// RegisterDataRoutes registra as rotas de backup e manutenção dos dados
func RegisterDataRoutes(r *gin.RouterGroup, dataController *controller.DataController) {
	data := r.Group("/data")
	{
		data.GET("/export", dataController.Export)
		data.POST("/import", dataController.Import)
		data.POST("/reset", dataController.Reset)
		data.PUT("/save-lock", dataController.SaveLock)
		data.GET("/info", dataController.Info)
	}
}
