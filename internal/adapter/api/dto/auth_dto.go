package dto

import (
	"time"
)

// LoginRequest representa os dados para login do operador
type LoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// LoginResponse representa a resposta de login bem-sucedido
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// RefreshTokenRequest representa os dados para renovação de token
type RefreshTokenRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}
