package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

// SettingsController gerencia as preferências do estabelecimento
type SettingsController struct {
	store  *store.Store
	logger logger.Logger
}

// NewSettingsController cria uma nova instância de SettingsController
func NewSettingsController(st *store.Store, logger logger.Logger) *SettingsController {
	return &SettingsController{
		store:  st,
		logger: logger,
	}
}

// Get retorna as preferências
// @Summary Obter configurações
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Router /settings [get]
func (c *SettingsController) Get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(c.store.Settings(ctx)))
}

// Update altera as preferências informadas
// @Summary Atualizar configurações
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.SettingsRequest true "Preferências"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /settings [put]
func (c *SettingsController) Update(ctx *gin.Context) {
	var req dto.SettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	settings := c.store.Settings(ctx)
	if req.StockThreshold != nil {
		settings.StockThreshold = *req.StockThreshold
	}
	if req.MonthlyGoal != nil {
		settings.MonthlyGoal = *req.MonthlyGoal
	}

	saved, err := c.store.SaveSettings(ctx, settings)
	if err != nil {
		respondError(ctx, c.logger, "erro ao salvar configurações", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettingsResponse(saved))
}
