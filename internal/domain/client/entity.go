package client

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/la-tostadora/pkg/domain"
)

var (
	ErrEmptyName      = errors.New("nome do cliente não pode ser vazio")
	ErrInvalidEmail   = errors.New("email inválido")
	ErrClientNotFound = errors.New("cliente não encontrado")
)

// Client representa um cliente com conta corrente na loja
type Client struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email,omitempty"`
	Phone      string        `json:"phone,omitempty"`
	Notes      string        `json:"notes"`
	TotalSpent domain.Number `json:"totalSpent"`
	CreatedAt  string        `json:"createdAt"`
}

// NewClient cria um novo cliente
func NewClient(name, email, phone, notes string, now time.Time) (*Client, error) {
	c := &Client{
		ID:        uuid.New().String(),
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
	if err := c.Update(name, email, phone, notes); err != nil {
		return nil, err
	}
	return c, nil
}

// Update atualiza os dados cadastrais do cliente sem tocar no total gasto
func (c *Client) Update(name, email, phone, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	email = strings.TrimSpace(email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return ErrInvalidEmail
		}
	}

	c.Name = name
	c.Email = email
	c.Phone = strings.TrimSpace(phone)
	c.Notes = notes
	return nil
}
