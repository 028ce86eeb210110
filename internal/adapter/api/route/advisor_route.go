package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/controller"
)

// RegisterAdvisorRoutes registra as rotas do assessor de IA
func RegisterAdvisorRoutes(r *gin.RouterGroup, advisorController *controller.AdvisorController) {
	r.POST("/advisor/ask", advisorController.Ask)
}
