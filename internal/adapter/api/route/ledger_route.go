package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/controller"
)

// RegisterLedgerRoutes registra as rotas de compras e consumos internos
func RegisterLedgerRoutes(r *gin.RouterGroup, ledgerController *controller.LedgerController) {
	r.GET("/purchases", ledgerController.ListPurchases)
	r.POST("/purchases", ledgerController.CreatePurchase)
	r.GET("/consumptions", ledgerController.ListConsumptions)
	r.POST("/consumptions", ledgerController.CreateConsumption)
}
