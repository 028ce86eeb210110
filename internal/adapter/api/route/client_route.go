package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/controller"
)

// RegisterClientRoutes registra as rotas do módulo de clientes
func RegisterClientRoutes(r *gin.RouterGroup, clientController *controller.ClientController) {
	clients := r.Group("/clients")
	{
		clients.POST("", clientController.Create)
		clients.GET("", clientController.List)
		clients.GET("/:id", clientController.Get)
		clients.PUT("/:id", clientController.Update)
		clients.DELETE("/:id", clientController.Delete)
		clients.GET("/:id/sales", clientController.Sales)
	}
}
