package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/infrastructure/monitoring"
	"github.com/hugohenrick/la-tostadora/internal/metrics"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/advisor"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

// Asker responde perguntas a partir do resumo do negócio
type Asker interface {
	Ask(ctx context.Context, summary advisor.Summary, question string) (string, error)
}

// AdvisorController encaminha perguntas ao assessor de IA
type AdvisorController struct {
	store   *store.Store
	advisor Asker
	logger  logger.Logger
}

// NewAdvisorController cria uma nova instância de AdvisorController
func NewAdvisorController(st *store.Store, advisor Asker, logger logger.Logger) *AdvisorController {
	return &AdvisorController{
		store:   st,
		advisor: advisor,
		logger:  logger,
	}
}

// Ask envia a pergunta com o resumo das vendas
// @Summary Perguntar ao assessor
// @Description Em qualquer falha responde com a mensagem padrão e fallback=true
// @Tags advisor
// @Accept json
// @Produce json
// @Param question body dto.AdvisorRequest true "Pergunta"
// @Success 200 {object} dto.AdvisorResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /advisor/ask [post]
func (c *AdvisorController) Ask(ctx *gin.Context) {
	var req dto.AdvisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	summary := metrics.Summarize(c.store.Snapshot())
	answer, err := c.advisor.Ask(ctx, summary, req.Question)
	if err != nil {
		c.logger.Warn("assessor indisponível", "error", err)
		monitoring.RecordAdvisor("fallback")
		ctx.JSON(http.StatusOK, dto.AdvisorResponse{Answer: advisor.FallbackMessage, Fallback: true})
		return
	}

	monitoring.RecordAdvisor("success")
	ctx.JSON(http.StatusOK, dto.AdvisorResponse{Answer: answer})
}
