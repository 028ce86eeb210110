package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/metrics"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/domain"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

// ProductController gerencia as requisições relacionadas ao inventário de produtos
type ProductController struct {
	store  *store.Store
	logger logger.Logger
	now    func() time.Time
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(st *store.Store, logger logger.Logger) *ProductController {
	return &ProductController{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// List lista os produtos
// @Summary Listar produtos
// @Description Lista os produtos com busca por nome ou categoria, filtro de estoque baixo e ordenação
// @Tags products
// @Produce json
// @Param search query string false "Busca por nome ou categoria"
// @Param category query string false "Categoria"
// @Param sort query string false "name, stock_asc ou stock_desc"
// @Param low_stock query bool false "Somente estoque baixo"
// @Success 200 {object} dto.ProductListResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	threshold := c.store.Settings(ctx).StockThreshold
	lowStock, _ := strconv.ParseBool(ctx.Query("low_stock"))

	items := metrics.QueryProducts(c.store.Snapshot().Products, metrics.ProductQuery{
		Search:    ctx.Query("search"),
		Category:  ctx.Query("category"),
		Sort:      ctx.Query("sort"),
		LowStock:  lowStock,
		Threshold: threshold,
	})

	ctx.JSON(http.StatusOK, dto.ProductListResponse{
		Items:          items,
		TotalCount:     len(items),
		StockThreshold: threshold,
		Categories:     product.Categories(),
	})
}

// Create cria um novo produto
// @Summary Criar produto
// @Description Cria um produto; o preço de venda é calculado pelo custo e pela margem
// @Tags products
// @Accept json
// @Produce json
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} product.Product
// @Failure 400 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	p, err := product.NewProduct(req.Name, req.Description, product.Category(req.Category), req.CostPrice, req.Margin(), req.Stock)
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar produto", err)
		return
	}
	p.ImageURL = strings.TrimSpace(req.ImageURL)
	if req.SellingPrice != nil {
		if err := p.SetSellingPrice(*req.SellingPrice); err != nil {
			respondError(ctx, c.logger, "erro ao criar produto", err)
			return
		}
	}

	if _, err := c.store.AddProduct(ctx, *p); err != nil {
		respondError(ctx, c.logger, "erro ao salvar produto", err)
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

// Get retorna um produto pelo ID
// @Summary Buscar produto
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} product.Product
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, ok := c.store.Product(ctx.Param("id"))
	if !ok {
		respondError(ctx, c.logger, "produto não encontrado", product.ErrProductNotFound)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// Update atualiza um produto
// @Summary Atualizar produto
// @Description Substitui os dados do produto; mudanças de custo ficam no histórico
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 200 {object} product.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	p, ok := c.store.Product(ctx.Param("id"))
	if !ok {
		respondError(ctx, c.logger, "produto não encontrado", product.ErrProductNotFound)
		return
	}

	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(ctx, c.logger, "erro ao atualizar produto", product.ErrEmptyName)
		return
	}

	margin := p.MarginPercentage.Float()
	if req.MarginPercentage != nil {
		margin = *req.MarginPercentage
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.ImageURL = strings.TrimSpace(req.ImageURL)
	p.Category = product.ParseCategory(req.Category)
	p.Stock = domain.Int(req.Stock)
	if err := p.ApplyCostOrMargin(req.CostPrice, margin, c.now()); err != nil {
		respondError(ctx, c.logger, "erro ao atualizar produto", err)
		return
	}
	if req.SellingPrice != nil {
		if err := p.SetSellingPrice(*req.SellingPrice); err != nil {
			respondError(ctx, c.logger, "erro ao atualizar produto", err)
			return
		}
	}

	if _, err := c.store.UpdateProduct(ctx, p); err != nil {
		respondError(ctx, c.logger, "erro ao salvar produto", err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

// UpdatePricing altera custo, margem ou preço de venda
// @Summary Atualizar preço
// @Description Altera custo e margem (recalculando o preço) ou define o preço de venda direto, zerando a margem
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param pricing body dto.PricingRequest true "Novos valores"
// @Success 200 {object} product.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id}/pricing [patch]
func (c *ProductController) UpdatePricing(ctx *gin.Context) {
	p, ok := c.store.Product(ctx.Param("id"))
	if !ok {
		respondError(ctx, c.logger, "produto não encontrado", product.ErrProductNotFound)
		return
	}

	var req dto.PricingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}
	if req.CostPrice == nil && req.MarginPercentage == nil && req.SellingPrice == nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos",
			"informe costPrice, marginPercentage ou sellingPrice"))
		return
	}

	if req.CostPrice != nil || req.MarginPercentage != nil {
		cost, margin := p.CostPrice.Float(), p.MarginPercentage.Float()
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		if req.MarginPercentage != nil {
			margin = *req.MarginPercentage
		}
		if err := p.ApplyCostOrMargin(cost, margin, c.now()); err != nil {
			respondError(ctx, c.logger, "erro ao atualizar preço", err)
			return
		}
	}
	if req.SellingPrice != nil {
		if err := p.SetSellingPrice(*req.SellingPrice); err != nil {
			respondError(ctx, c.logger, "erro ao atualizar preço", err)
			return
		}
	}

	if _, err := c.store.UpdateProduct(ctx, p); err != nil {
		respondError(ctx, c.logger, "erro ao salvar produto", err)
		return
	}

	ctx.JSON(http.StatusOK, p)
}

// Delete remove um produto
// @Summary Remover produto
// @Description Remove o produto; vendas antigas mantêm sua cópia
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	if _, ok := c.store.Product(id); !ok {
		respondError(ctx, c.logger, "produto não encontrado", product.ErrProductNotFound)
		return
	}

	if _, err := c.store.DeleteProduct(ctx, id); err != nil {
		respondError(ctx, c.logger, "erro ao remover produto", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("produto removido com sucesso", nil))
}
