package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

// SyncController gerencia a sincronização com a nuvem
type SyncController struct {
	store  *store.Store
	logger logger.Logger
}

// NewSyncController cria uma nova instância de SyncController
func NewSyncController(st *store.Store, logger logger.Logger) *SyncController {
	return &SyncController{
		store:  st,
		logger: logger,
	}
}

// Status retorna a situação da sincronização
// @Summary Situação da sincronização
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncStatusResponse
// @Router /sync/status [get]
func (c *SyncController) Status(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToSyncStatusResponse(c.store.SyncInfo()))
}

// CreateSession gera um novo código e envia o documento atual
// @Summary Criar sessão de sincronização
// @Tags sync
// @Produce json
// @Success 201 {object} dto.SyncStatusResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /sync/session [post]
func (c *SyncController) CreateSession(ctx *gin.Context) {
	id, err := c.store.CreateSession(ctx)
	if err != nil && id == "" {
		respondError(ctx, c.logger, "erro ao criar sessão", err)
		return
	}
	if err != nil {
		// o código já está vinculado; o envio falhou e fica registrado no status
		c.logger.Warn("sessão criada sem envio inicial", "sync_id", id, "error", err)
	}

	ctx.JSON(http.StatusCreated, dto.ToSyncStatusResponse(c.store.SyncInfo()))
}

// SetID vincula um código existente. Não envia nem baixa dados.
// @Summary Vincular código de sincronização
// @Description Código vazio desvincula a sincronização
// @Tags sync
// @Accept json
// @Produce json
// @Param sync body dto.SyncIDRequest true "Código"
// @Success 200 {object} dto.SyncStatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sync/id [put]
func (c *SyncController) SetID(ctx *gin.Context) {
	var req dto.SyncIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if _, err := c.store.SetSyncID(ctx, req.SyncID); err != nil {
		respondError(ctx, c.logger, "erro ao vincular código", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSyncStatusResponse(c.store.SyncInfo()))
}

// Push envia o documento atual para a nuvem
// @Summary Enviar dados
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncStatusResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /sync/push [post]
func (c *SyncController) Push(ctx *gin.Context) {
	if err := c.store.Push(ctx); err != nil {
		respondError(ctx, c.logger, "erro ao enviar dados", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSyncStatusResponse(c.store.SyncInfo()))
}

// Pull substitui o estado local pelo documento da nuvem
// @Summary Baixar dados
// @Tags sync
// @Produce json
// @Success 200 {object} dto.DataInfoResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /sync/pull [post]
func (c *SyncController) Pull(ctx *gin.Context) {
	st, err := c.store.Pull(ctx)
	if err != nil {
		respondError(ctx, c.logger, "erro ao baixar dados", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDataInfoResponse(st, c.store.SaveLocked()))
}
