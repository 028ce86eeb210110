package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/la-tostadora/internal/adapter/api/dto"
	"github.com/hugohenrick/la-tostadora/pkg/auth"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
)

// AuthController gerencia o login do operador
type AuthController struct {
	jwtService *auth.JWTService
	pins       *auth.PINVerifier
	logger     logger.Logger
	now        func() time.Time
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(jwtService *auth.JWTService, pins *auth.PINVerifier, logger logger.Logger) *AuthController {
	return &AuthController{
		jwtService: jwtService,
		pins:       pins,
		logger:     logger,
		now:        time.Now,
	}
}

// Login valida o PIN do operador e retorna um token JWT
// @Summary Autentica o operador
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "PIN do operador"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	if err := c.pins.Verify(request.PIN); err != nil {
		c.logger.Warn("tentativa de login com PIN inválido", "ip", ctx.ClientIP())
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Credenciais inválidas", "PIN incorreto"))
		return
	}

	token, err := c.jwtService.GenerateToken(auth.DefaultOperator)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar token", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, c.loginResponse(token))
}

// RefreshToken renova um token JWT, inclusive expirado
// @Summary Renova um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token a ser renovado"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	newToken, err := c.jwtService.RefreshToken(request.AccessToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrInvalidClaims) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token inválido", err.Error()))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao renovar token", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, c.loginResponse(newToken))
}

func (c *AuthController) loginResponse(token string) dto.LoginResponse {
	return dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   c.now().Add(c.jwtService.Expiration()),
	}
}
