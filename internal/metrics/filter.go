package metrics

import (
	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
)

// Filter seleciona vendas por período (YYYY-MM-DD, inclusivo) e por variedades de produto.
// Limite vazio não restringe aquele lado. Sem ProductIDs todas as variedades entram.
type Filter struct {
	Start      string
	End        string
	ProductIDs []string
}

// InRange informa se o prefixo de data da venda está dentro do período
func (f Filter) InRange(s sale.Sale) bool {
	day := s.DayPrefix()
	if f.Start != "" && day < f.Start {
		return false
	}
	if f.End != "" && day > f.End {
		return false
	}
	return true
}

func (f Filter) selection() map[string]bool {
	if len(f.ProductIDs) == 0 {
		return nil
	}
	set := make(map[string]bool, len(f.ProductIDs))
	for _, id := range f.ProductIDs {
		set[id] = true
	}
	return set
}

// Apply retorna as vendas do período que contêm ao menos um item das variedades escolhidas
func (f Filter) Apply(sales []sale.Sale) []sale.Sale {
	selected := f.selection()
	out := make([]sale.Sale, 0, len(sales))
	for _, s := range sales {
		if !f.InRange(s) {
			continue
		}
		if selected != nil && !hasAny(s.Items, selected) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// items retorna os itens da venda que contam para o filtro
func (f Filter) items(s sale.Sale, selected map[string]bool) []sale.CartItem {
	if selected == nil {
		return s.Items
	}
	out := make([]sale.CartItem, 0, len(s.Items))
	for _, it := range s.Items {
		if selected[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

func hasAny(items []sale.CartItem, selected map[string]bool) bool {
	for _, it := range items {
		if selected[it.ID] {
			return true
		}
	}
	return false
}
