package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/internal/domain/client"
	"github.com/hugohenrick/la-tostadora/internal/domain/consumption"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/domain/purchase"
	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/hugohenrick/la-tostadora/internal/store"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

var notFoundErrors = []error{
	product.ErrProductNotFound,
	client.ErrClientNotFound,
	sale.ErrSaleNotFound,
	state.ErrSyncDocumentNotFound,
}

var conflictErrors = []error{
	product.ErrInsufficientStock,
	consumption.ErrExceedsStock,
	sale.ErrNoOutstandingBalance,
	store.ErrNoSyncID,
}

var badRequestErrors = []error{
	product.ErrEmptyName,
	product.ErrNegativeCost,
	product.ErrNegativePrice,
	client.ErrEmptyName,
	client.ErrInvalidEmail,
	sale.ErrEmptyCart,
	sale.ErrInvalidQuantity,
	sale.ErrNegativePrice,
	sale.ErrNegativeDiscount,
	sale.ErrDiscountOverSubtotal,
	sale.ErrNegativeAmountPaid,
	sale.ErrDebtRequiresClient,
	sale.ErrInvalidPaymentMethod,
	sale.ErrInvalidPaymentAmount,
	purchase.ErrInvalidQuantity,
	purchase.ErrNegativeCost,
	consumption.ErrInvalidQuantity,
	state.ErrInvalidDocument,
	store.ErrInvalidSettings,
}

// statusFor traduz os erros de domínio para o status HTTP
func statusFor(err error) int {
	switch {
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrSyncDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// respondError responde com dto.ErrorResponse e registra no log os erros internos
func respondError(ctx *gin.Context, log logger.Logger, message string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error(message, "error", err, "path", ctx.FullPath())
	}
	ctx.JSON(code, dto.NewErrorResponse(code, message, err.Error()))
}
