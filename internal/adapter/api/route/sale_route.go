package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/controller"
)

// RegisterSaleRoutes registra as rotas do caixa
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController) {
	sales := r.Group("/sales")
	{
		sales.POST("", saleController.Checkout)
		sales.GET("", saleController.List)
		sales.GET("/:id", saleController.Get)
		sales.DELETE("/:id", saleController.Delete)
		sales.POST("/:id/revert", saleController.Revert)
		sales.POST("/:id/payments", saleController.AddPayment)
	}
}
