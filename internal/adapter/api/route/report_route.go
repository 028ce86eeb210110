package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/controller"
)

// RegisterReportRoutes registra o painel e os relatórios
func RegisterReportRoutes(r *gin.RouterGroup, reportController *controller.ReportController) {
	r.GET("/dashboard", reportController.Dashboard)

	reports := r.Group("/reports")
	{
		reports.GET("/current-month", reportController.CurrentMonth)
		reports.GET("/income-statement", reportController.IncomeStatement)
		reports.GET("/products/:id/history", reportController.ProductHistory)
		reports.GET("/fifo/:productId", reportController.FIFO)
		reports.GET("/inventory", reportController.Inventory)
	}
}
