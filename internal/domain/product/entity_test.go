package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		p, err := NewProduct("Colombia Supremo", "tostado medio", "", 10, 50, 20)
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, CategoryGrano, p.Category)
		assert.Equal(t, 15.0, p.SellingPrice.Float())
		assert.EqualValues(t, 20, p.Stock)
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, err := NewProduct("  ", "", CategoryMolido, 10, 30, 0)
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("NegativeCost", func(t *testing.T) {
		_, err := NewProduct("Taza", "", CategoryAccesorios, -1, 30, 0)
		assert.ErrorIs(t, err, ErrNegativeCost)
	})
}

func TestCalculatePrice(t *testing.T) {
	cases := []struct {
		cost, margin, want float64
	}{
		{10, 50, 15},
		{1000, 30, 1300},
		{333, 33, 443},
		{5, 10, 6}, // 5.5 arredonda para cima
		{0, 100, 0},
		{120, 0, 120},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CalculatePrice(tc.cost, tc.margin), "cost=%v margin=%v", tc.cost, tc.margin)
	}
}

func TestApplyCostOrMargin(t *testing.T) {
	p, err := NewProduct("Etiopía", "", CategoryGrano, 100, 30, 5)
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, p.ApplyCostOrMargin(200, 25, now))

	assert.Equal(t, 250.0, p.SellingPrice.Float())
	assert.Equal(t, 25.0, p.MarginPercentage.Float())
	require.Len(t, p.History, 1)
	assert.Equal(t, 100.0, p.History[0].OldCost.Float())
	assert.Equal(t, 200.0, p.History[0].NewCost.Float())

	// só a margem muda, sem novo registro de custo
	require.NoError(t, p.ApplyCostOrMargin(200, 50, now))
	assert.Equal(t, 300.0, p.SellingPrice.Float())
	assert.Len(t, p.History, 1)
}

func TestSetSellingPriceResetsMargin(t *testing.T) {
	p, err := NewProduct("Brasil", "", CategoryGrano, 100, 30, 5)
	require.NoError(t, err)

	require.NoError(t, p.SetSellingPrice(175))
	assert.Equal(t, 175.0, p.SellingPrice.Float())
	assert.Zero(t, p.MarginPercentage.Float())
	assert.ErrorIs(t, p.SetSellingPrice(-1), ErrNegativePrice)
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, CategoryGrano, ParseCategory(""))
	assert.Equal(t, CategoryMolido, ParseCategory("molido"))
	assert.Equal(t, CategoryOtros, ParseCategory("Bebidas"))
}
