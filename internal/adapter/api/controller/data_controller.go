package controller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

// maxImportSize limita o corpo aceito na importação de backup
const maxImportSize = 32 << 20

// DataController gerencia backup, restauração e limpeza do documento de dados
type DataController struct {
	store  *store.Store
	logger logger.Logger
	now    func() time.Time
}

// NewDataController cria uma nova instância de DataController
func NewDataController(st *store.Store, logger logger.Logger) *DataController {
	return &DataController{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// Export baixa o backup completo
// @Summary Exportar backup
// @Description Baixa o estado completo como backup_latostadora_YYYY-MM-DD.json
// @Tags data
// @Produce json
// @Success 200 {file} file
// @Router /data/export [get]
func (c *DataController) Export(ctx *gin.Context) {
	data, err := c.store.ExportData()
	if err != nil {
		respondError(ctx, c.logger, "erro ao exportar dados", err)
		return
	}

	filename := fmt.Sprintf("backup_latostadora_%s.json", c.now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "application/json", data)
}

// Import restaura um backup
// @Summary Importar backup
// @Description Substitui todo o estado pelo documento enviado. Um documento inválido não altera nada.
// @Tags data
// @Accept json
// @Produce json
// @Success 200 {object} dto.DataInfoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /data/import [post]
func (c *DataController) Import(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxImportSize))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao ler arquivo", err.Error()))
		return
	}

	st, err := c.store.ImportData(ctx, body)
	if err != nil {
		respondError(ctx, c.logger, "archivo inválido", err)
		return
	}

	c.logger.Info("backup importado", "products", len(st.Products), "sales", len(st.Sales))
	ctx.JSON(http.StatusOK, dto.ToDataInfoResponse(st, c.store.SaveLocked()))
}

// Reset apaga todos os dados
// @Summary Apagar dados
// @Description Esvazia todas as coleções e desvincula a sincronização. Exige confirm=true.
// @Tags data
// @Produce json
// @Param confirm query bool true "Confirmação"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /data/reset [post]
func (c *DataController) Reset(ctx *gin.Context) {
	if confirm, _ := strconv.ParseBool(ctx.Query("confirm")); !confirm {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest,
			"confirmação requerida", "envie confirm=true para apagar todos os dados"))
		return
	}

	if _, err := c.store.ResetData(ctx); err != nil {
		respondError(ctx, c.logger, "erro ao apagar dados", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("dados apagados", nil))
}

// SaveLock trava ou destrava a gravação local
// @Summary Trava de gravação
// @Description Com a trava ativa as mutações ficam só em memória
// @Tags data
// @Accept json
// @Produce json
// @Param lock body dto.SaveLockRequest true "Estado da trava"
// @Success 200 {object} dto.DataInfoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /data/save-lock [put]
func (c *DataController) SaveLock(ctx *gin.Context) {
	var req dto.SaveLockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	c.store.SetSaveLock(*req.Locked)
	ctx.JSON(http.StatusOK, dto.ToDataInfoResponse(c.store.Snapshot(), c.store.SaveLocked()))
}

// Info resume o documento guardado
// @Summary Informações dos dados
// @Tags data
// @Produce json
// @Success 200 {object} dto.DataInfoResponse
// @Router /data/info [get]
func (c *DataController) Info(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToDataInfoResponse(c.store.Snapshot(), c.store.SaveLocked()))
}
