package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hugohenrick/la-tostadora/internal/domain/client"
	"github.com/hugohenrick/la-tostadora/internal/domain/consumption"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/domain/purchase"
	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
)

// ErrInvalidDocument indica um documento de estado que não pôde ser interpretado
var ErrInvalidDocument = errors.New("documento de dados inválido")

// AppState é o documento completo da aplicação, persistido inteiro local e remotamente
type AppState struct {
	Products     []product.Product         `json:"products"`
	Clients      []client.Client           `json:"clients"`
	Sales        []sale.Sale               `json:"sales"`
	Purchases    []purchase.Purchase       `json:"purchases"`
	Consumptions []consumption.Consumption `json:"consumptions"`
	SyncID       string                    `json:"syncId,omitempty"`
	LastSync     string                    `json:"lastSync,omitempty"`
}

// Empty retorna um estado com as cinco coleções vazias
func Empty() *AppState {
	s := &AppState{}
	s.normalize()
	return s
}

// Parse interpreta um documento JSON como estado completo
func Parse(data []byte) (*AppState, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrInvalidDocument
	}

	var s AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	s.normalize()
	return &s, nil
}

// Marshal serializa o documento de forma compacta
func (s *AppState) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// MarshalIndent serializa o documento com indentação de dois espaços
func (s *AppState) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// SizeKB retorna o tamanho do documento serializado em KB, formatado com duas casas
func (s *AppState) SizeKB() string {
	data, err := s.Marshal()
	if err != nil {
		return "0.00 KB"
	}
	return fmt.Sprintf("%.2f KB", float64(len(data))/1024)
}

// FindProduct retorna o produto com o id informado
func (s *AppState) FindProduct(id string) (product.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return product.Product{}, false
}

// FindClient retorna o cliente com o id informado
func (s *AppState) FindClient(id string) (client.Client, bool) {
	for _, c := range s.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return client.Client{}, false
}

// FindSale retorna a venda com o id informado
func (s *AppState) FindSale(id string) (sale.Sale, bool) {
	for _, sl := range s.Sales {
		if sl.ID == id {
			return sl, true
		}
	}
	return sale.Sale{}, false
}

// Clone retorna uma cópia profunda do estado
func (s *AppState) Clone() *AppState {
	out := &AppState{
		Products:     make([]product.Product, len(s.Products)),
		Clients:      append([]client.Client{}, s.Clients...),
		Sales:        make([]sale.Sale, len(s.Sales)),
		Purchases:    append([]purchase.Purchase{}, s.Purchases...),
		Consumptions: append([]consumption.Consumption{}, s.Consumptions...),
		SyncID:       s.SyncID,
		LastSync:     s.LastSync,
	}
	for i, p := range s.Products {
		out.Products[i] = p.Clone()
	}
	for i, sl := range s.Sales {
		out.Sales[i] = sl.Clone()
	}
	return out
}

func (s *AppState) normalize() {
	if s.Products == nil {
		s.Products = []product.Product{}
	}
	if s.Clients == nil {
		s.Clients = []client.Client{}
	}
	if s.Sales == nil {
		s.Sales = []sale.Sale{}
	}
	if s.Purchases == nil {
		s.Purchases = []purchase.Purchase{}
	}
	if s.Consumptions == nil {
		s.Consumptions = []consumption.Consumption{}
	}
}
