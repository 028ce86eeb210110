package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/controller"
)

// RegisterSyncRoutes registra as rotas de sincronização com a nuvem
func RegisterSyncRoutes(r *gin.RouterGroup, syncController *controller.SyncController) {
	sync := r.Group("/sync")
	{
		sync.GET("/status", syncController.Status)
		sync.POST("/session", syncController.CreateSession)
		sync.PUT("/id", syncController.SetID)
		sync.POST("/push", syncController.Push)
		sync.POST("/pull", syncController.Pull)
	}
}
