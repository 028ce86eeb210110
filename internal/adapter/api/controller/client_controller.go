package controller

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/domain/client"
	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
	"github.com/shopspring/decimal"
)

// ClientController gerencia as requisições relacionadas a clientes
type ClientController struct {
	store  *store.Store
	logger logger.Logger
	now    func() time.Time
}

// NewClientController cria uma nova instância de ClientController
func NewClientController(st *store.Store, logger logger.Logger) *ClientController {
	return &ClientController{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// List lista os clientes
// @Summary Listar clientes
// @Tags clients
// @Produce json
// @Param search query string false "Busca por nome, email ou telefone"
// @Success 200 {array} client.Client
// @Router /clients [get]
func (c *ClientController) List(ctx *gin.Context) {
	search := strings.ToLower(strings.TrimSpace(ctx.Query("search")))
	clients := c.store.Snapshot().Clients

	out := make([]client.Client, 0, len(clients))
	for _, cl := range clients {
		if search != "" &&
			!strings.Contains(strings.ToLower(cl.Name), search) &&
			!strings.Contains(strings.ToLower(cl.Email), search) &&
			!strings.Contains(cl.Phone, search) {
			continue
		}
		out = append(out, cl)
	}

	ctx.JSON(http.StatusOK, out)
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Tags clients
// @Accept json
// @Produce json
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 201 {object} client.Client
// @Failure 400 {object} dto.ErrorResponse
// @Router /clients [post]
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	cl, err := client.NewClient(req.Name, req.Email, req.Phone, req.Notes, c.now())
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar cliente", err)
		return
	}

	if _, err := c.store.AddClient(ctx, *cl); err != nil {
		respondError(ctx, c.logger, "erro ao salvar cliente", err)
		return
	}

	ctx.JSON(http.StatusCreated, cl)
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Tags clients
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} client.Client
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [get]
func (c *ClientController) Get(ctx *gin.Context) {
	cl, ok := c.store.Client(ctx.Param("id"))
	if !ok {
		respondError(ctx, c.logger, "cliente não encontrado", client.ErrClientNotFound)
		return
	}
	ctx.JSON(http.StatusOK, cl)
}

// Update atualiza os dados cadastrais de um cliente
// @Summary Atualizar cliente
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "ID do cliente"
// @Param client body dto.ClientRequest true "Dados do cliente"
// @Success 200 {object} client.Client
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [put]
func (c *ClientController) Update(ctx *gin.Context) {
	cl, ok := c.store.Client(ctx.Param("id"))
	if !ok {
		respondError(ctx, c.logger, "cliente não encontrado", client.ErrClientNotFound)
		return
	}

	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if err := cl.Update(req.Name, req.Email, req.Phone, req.Notes); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar cliente", err)
		return
	}

	if _, err := c.store.UpdateClient(ctx, cl); err != nil {
		respondError(ctx, c.logger, "erro ao salvar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, cl)
}

// Delete remove um cliente
// @Summary Remover cliente
// @Description Remove o cliente; as vendas dele mantêm o nome gravado
// @Tags clients
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id} [delete]
func (c *ClientController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, ok := c.store.Client(id); !ok {
		respondError(ctx, c.logger, "cliente não encontrado", client.ErrClientNotFound)
		return
	}

	if _, err := c.store.DeleteClient(ctx, id); err != nil {
		respondError(ctx, c.logger, "erro ao remover cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("cliente removido com sucesso", nil))
}

// Sales lista as vendas de um cliente com o saldo devedor
// @Summary Vendas do cliente
// @Description Lista as vendas do cliente, da mais nova para a mais antiga, e soma o saldo pendente
// @Tags clients
// @Produce json
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.ClientSalesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /clients/{id}/sales [get]
func (c *ClientController) Sales(ctx *gin.Context) {
	st := c.store.Snapshot()
	cl, ok := st.FindClient(ctx.Param("id"))
	if !ok {
		respondError(ctx, c.logger, "cliente não encontrado", client.ErrClientNotFound)
		return
	}

	sales := make([]sale.Sale, 0)
	outstanding := decimal.Zero
	for _, s := range st.Sales {
		if s.ClientID != nil && *s.ClientID == cl.ID {
			sales = append(sales, s)
			if s.Balance.Float() > 0 {
				outstanding = outstanding.Add(decimal.NewFromFloat(s.Balance.Float()))
			}
		}
	}
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Date > sales[j].Date })

	ctx.JSON(http.StatusOK, dto.ClientSalesResponse{
		Client:      cl,
		Sales:       sales,
		Outstanding: outstanding.InexactFloat64(),
	})
}
