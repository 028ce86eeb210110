package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/la-tostadora/internal/domain/client"
	"github.com/hugohenrick/la-tostadora/internal/domain/consumption"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/domain/purchase"
	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLocal struct {
	mu      sync.Mutex
	data    map[string][]byte
	saveErr error
	saves   int
}

func newMemLocal() *memLocal {
	return &memLocal{data: make(map[string][]byte)}
}

func (m *memLocal) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	if !ok {
		return nil, state.ErrKeyNotFound
	}
	return append([]byte(nil), d...), nil
}

func (m *memLocal) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memLocal) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memLocal) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

var fixedNow = time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Store, *memLocal) {
	t.Helper()
	local := newMemLocal()
	s := New(context.Background(), local, nil, logger.NewNop(), Config{Now: func() time.Time { return fixedNow }})
	return s, local
}

func seedProduct(t *testing.T, s *Store, name string, cost, margin float64, stock int) product.Product {
	t.Helper()
	p, err := product.NewProduct(name, "", product.CategoryGrano, cost, margin, stock)
	require.NoError(t, err)
	_, err = s.AddProduct(context.Background(), *p)
	require.NoError(t, err)
	return *p
}

func seedClient(t *testing.T, s *Store, name string) client.Client {
	t.Helper()
	c, err := client.NewClient(name, "", "", "", fixedNow)
	require.NoError(t, err)
	_, err = s.AddClient(context.Background(), *c)
	require.NoError(t, err)
	return *c
}

func checkout(t *testing.T, p product.Product, qty int, c *client.Client, paid *float64) sale.Sale {
	t.Helper()
	sl, err := sale.NewSale(sale.Checkout{
		Lines:      []sale.CartLine{{Product: p, Quantity: qty}},
		Client:     c,
		AmountPaid: paid,
		Date:       fixedNow,
	})
	require.NoError(t, err)
	return *sl
}

func TestNewStartsEmptyOnCorruptData(t *testing.T) {
	local := newMemLocal()
	local.data[state.KeyData] = []byte("{corrupto")

	s := New(context.Background(), local, nil, logger.NewNop(), Config{})
	snap := s.Snapshot()
	assert.Empty(t, snap.Products)
	assert.NotNil(t, snap.Sales)
}

func TestNewLoadsSavedState(t *testing.T) {
	s, local := setup(t)
	seedProduct(t, s, "Colombia", 10, 50, 20)

	reloaded := New(context.Background(), local, nil, logger.NewNop(), Config{})
	require.Len(t, reloaded.Snapshot().Products, 1)
}

func TestProductMutations(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	p := seedProduct(t, s, "Colombia", 10, 50, 20)

	t.Run("Update", func(t *testing.T) {
		p.Name = "Colombia Huila"
		snap, err := s.UpdateProduct(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, "Colombia Huila", snap.Products[0].Name)
	})

	t.Run("UpdateUnknownIsNoop", func(t *testing.T) {
		ghost := p
		ghost.ID = "ghost"
		snap, err := s.UpdateProduct(ctx, ghost)
		require.NoError(t, err)
		require.Len(t, snap.Products, 1)
		assert.Equal(t, p.ID, snap.Products[0].ID)
	})

	t.Run("AdjustStock", func(t *testing.T) {
		snap, err := s.AdjustStock(ctx, p.ID, 5)
		require.NoError(t, err)
		assert.EqualValues(t, 25, snap.Products[0].Stock)
		_, err = s.AdjustStock(ctx, p.ID, -5)
		require.NoError(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		snap, err := s.DeleteProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, snap.Products)
	})
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := setup(t)
	seedProduct(t, s, "Colombia", 10, 50, 20)

	snap := s.Snapshot()
	snap.Products[0].Stock = 0

	assert.EqualValues(t, 20, s.Snapshot().Products[0].Stock)
}

func TestAddSaleScenario(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()

	p := seedProduct(t, s, "Colombia", 10, 50, 20)
	require.Equal(t, 15.0, p.SellingPrice.Float())

	paid := 75.0
	sl := checkout(t, p, 5, nil, &paid)
	snap, err := s.AddSale(ctx, sl)
	require.NoError(t, err)

	got, ok := snap.FindProduct(p.ID)
	require.True(t, ok)
	assert.EqualValues(t, 15, got.Stock)
	require.Len(t, snap.Sales, 1)
	assert.Equal(t, 75.0, snap.Sales[0].Total.Float())
	assert.Zero(t, snap.Sales[0].Balance.Float())

	t.Run("DeleteSaleKeepsStock", func(t *testing.T) {
		snap, err := s.DeleteSale(ctx, sl.ID)
		require.NoError(t, err)
		assert.Empty(t, snap.Sales)

		got, _ := snap.FindProduct(p.ID)
		assert.EqualValues(t, 15, got.Stock, "deleteSale não devolve o estoque")
	})
}

func TestAddSaleEffects(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()

	p1 := seedProduct(t, s, "Colombia", 10, 50, 20)
	p2 := seedProduct(t, s, "Etiopía", 20, 50, 8)
	c := seedClient(t, s, "Ana")

	sl, err := sale.NewSale(sale.Checkout{
		Lines: []sale.CartLine{
			{Product: p1, Quantity: 3},
			{Product: p2, Quantity: 2},
		},
		Client: &c,
		Date:   fixedNow,
	})
	require.NoError(t, err)

	// item de produto já apagado é ignorado
	orphan := sl.Items[0]
	orphan.ID = "apagado"
	sl.Items = append(sl.Items, orphan)

	snap, err := s.AddSale(ctx, *sl)
	require.NoError(t, err)

	got1, _ := snap.FindProduct(p1.ID)
	got2, _ := snap.FindProduct(p2.ID)
	assert.EqualValues(t, 17, got1.Stock)
	assert.EqualValues(t, 6, got2.Stock)

	gotClient, _ := snap.FindClient(c.ID)
	assert.Equal(t, sl.Total.Float(), gotClient.TotalSpent.Float())
	assert.Equal(t, 105.0, gotClient.TotalSpent.Float())

	t.Run("UnknownClientSkipsIncrement", func(t *testing.T) {
		ghost := client.Client{ID: "ghost", Name: "Fantasma"}
		other, err := sale.NewSale(sale.Checkout{
			Lines:  []sale.CartLine{{Product: p1, Quantity: 1}},
			Client: &ghost,
			Date:   fixedNow,
		})
		require.NoError(t, err)

		snap, err := s.AddSale(ctx, *other)
		require.NoError(t, err)
		gotClient, _ := snap.FindClient(c.ID)
		assert.Equal(t, 105.0, gotClient.TotalSpent.Float())
	})
}

func TestRevertSale(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()

	p := seedProduct(t, s, "Colombia", 10, 50, 20)
	c := seedClient(t, s, "Ana")
	sl := checkout(t, p, 4, &c, nil)
	_, err := s.AddSale(ctx, sl)
	require.NoError(t, err)

	snap, err := s.RevertSale(ctx, sl.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Sales)

	got, _ := snap.FindProduct(p.ID)
	assert.EqualValues(t, 20, got.Stock)
	gotClient, _ := snap.FindClient(c.ID)
	assert.Zero(t, gotClient.TotalSpent.Float())

	_, err = s.RevertSale(ctx, sl.ID)
	assert.ErrorIs(t, err, sale.ErrSaleNotFound)
}

func TestAddPaymentToSale(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()

	p := seedProduct(t, s, "Colombia", 10, 50, 20)
	c := seedClient(t, s, "Ana")
	paid := 20.0
	sl := checkout(t, p, 4, &c, &paid)
	_, err := s.AddSale(ctx, sl)
	require.NoError(t, err)

	before, _ := s.Sale(sl.ID)

	pay, err := sale.NewPayment(25, sale.PaymentTransfer, fixedNow)
	require.NoError(t, err)
	snap, err := s.AddPaymentToSale(ctx, sl.ID, *pay)
	require.NoError(t, err)

	after, ok := snap.FindSale(sl.ID)
	require.True(t, ok)
	assert.Equal(t, before.AmountPaid.Float()+25, after.AmountPaid.Float())
	assert.Equal(t, before.Balance.Float()-25, after.Balance.Float())
	assert.Len(t, after.Payments, len(before.Payments)+1)

	t.Run("OverpaymentIsNotClamped", func(t *testing.T) {
		big, err := sale.NewPayment(100, sale.PaymentCash, fixedNow)
		require.NoError(t, err)
		snap, err := s.AddPaymentToSale(ctx, sl.ID, *big)
		require.NoError(t, err)
		after, _ := snap.FindSale(sl.ID)
		assert.Equal(t, -85.0, after.Balance.Float())
	})
}

func TestLedgerIsAppendOnly(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	p := seedProduct(t, s, "Colombia", 10, 50, 20)

	pu, err := purchase.NewPurchase(p, 10, 9, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 90.0, pu.TotalCost.Float())

	co, err := consumption.NewConsumption(p, 2, "", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, consumption.DefaultReason, co.Reason)

	_, err = s.AddPurchase(ctx, *pu)
	require.NoError(t, err)
	snap, err := s.AddConsumption(ctx, *co)
	require.NoError(t, err)

	assert.Len(t, snap.Purchases, 1)
	assert.Len(t, snap.Consumptions, 1)
	got, _ := snap.FindProduct(p.ID)
	assert.EqualValues(t, 20, got.Stock)
}

func TestRecordPurchaseAndConsumption(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	p := seedProduct(t, s, "Colombia", 10, 50, 20)

	pu, err := purchase.NewPurchase(p, 10, 9, fixedNow)
	require.NoError(t, err)
	snap, err := s.RecordPurchase(ctx, *pu)
	require.NoError(t, err)
	got, _ := snap.FindProduct(p.ID)
	assert.EqualValues(t, 30, got.Stock)
	assert.Len(t, snap.Purchases, 1)

	co, err := consumption.NewConsumption(p, 5, "degustação", fixedNow)
	require.NoError(t, err)
	snap, err = s.RecordConsumption(ctx, *co)
	require.NoError(t, err)
	got, _ = snap.FindProduct(p.ID)
	assert.EqualValues(t, 25, got.Stock)
	assert.Len(t, snap.Consumptions, 1)

	t.Run("ExceedsLiveStock", func(t *testing.T) {
		// validado contra o produto lido antes da última baixa
		big, err := consumption.NewConsumption(p, 20, "", fixedNow)
		require.NoError(t, err)
		_, err = s.RecordConsumption(ctx, *big)
		require.NoError(t, err)

		again, err := consumption.NewConsumption(p, 20, "", fixedNow)
		require.NoError(t, err)
		_, err = s.RecordConsumption(ctx, *again)
		assert.ErrorIs(t, err, consumption.ErrExceedsStock)

		got, _ := s.Product(p.ID)
		assert.EqualValues(t, 5, got.Stock)
		assert.Len(t, s.Snapshot().Consumptions, 2)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		ghost := p
		ghost.ID = "nada"
		pu, err := purchase.NewPurchase(ghost, 1, 1, fixedNow)
		require.NoError(t, err)
		_, err = s.RecordPurchase(ctx, *pu)
		assert.ErrorIs(t, err, product.ErrProductNotFound)

		co, err := consumption.NewConsumption(ghost, 1, "", fixedNow)
		require.NoError(t, err)
		_, err = s.RecordConsumption(ctx, *co)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
		assert.Len(t, s.Snapshot().Purchases, 1)
	})
}

func TestConcurrentConsumptionsNeverOverdraw(t *testing.T) {
	s, _ := setup(t)
	p := seedProduct(t, s, "Colombia", 10, 50, 20)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted, rejected := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			co, err := consumption.NewConsumption(p, 3, "", fixedNow)
			if err != nil {
				return
			}
			_, err = s.RecordConsumption(context.Background(), *co)
			mu.Lock()
			defer mu.Unlock()
			if errors.Is(err, consumption.ErrExceedsStock) {
				rejected++
			} else if err == nil {
				accepted++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 6, accepted)
	assert.Equal(t, 4, rejected)
	got, _ := s.Product(p.ID)
	assert.EqualValues(t, 2, got.Stock)
	assert.Len(t, s.Snapshot().Consumptions, 6)
}

func TestRegisterPayment(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()

	p := seedProduct(t, s, "Colombia", 10, 50, 20)
	c := seedClient(t, s, "Ana")
	paid := 20.0
	sl := checkout(t, p, 4, &c, &paid)
	_, err := s.AddSale(ctx, sl)
	require.NoError(t, err)
	before, _ := s.Sale(sl.ID)

	snap, applied, err := s.RegisterPayment(ctx, sl.ID, 1000, sale.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, before.Balance.Float(), applied)
	after, _ := snap.FindSale(sl.ID)
	assert.Zero(t, after.Balance.Float())
	require.Len(t, after.Payments, len(before.Payments)+1)
	assert.Equal(t, fixedNow.Format(time.RFC3339), after.Payments[len(after.Payments)-1].Date)

	_, _, err = s.RegisterPayment(ctx, sl.ID, 5, sale.PaymentCash)
	assert.ErrorIs(t, err, sale.ErrNoOutstandingBalance)

	_, _, err = s.RegisterPayment(ctx, "nada", 5, sale.PaymentCash)
	assert.ErrorIs(t, err, sale.ErrSaleNotFound)
}

func TestConcurrentPaymentsNeverOverpay(t *testing.T) {
	s, _ := setup(t)
	p := seedProduct(t, s, "Colombia", 10, 50, 20)
	c := seedClient(t, s, "Ana")
	paid := 0.0
	sl := checkout(t, p, 4, &c, &paid)
	_, err := s.AddSale(context.Background(), sl)
	require.NoError(t, err)
	before, _ := s.Sale(sl.ID)
	require.Positive(t, before.Balance.Float())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = s.RegisterPayment(context.Background(), sl.ID, 7, sale.PaymentTransfer)
		}()
	}
	wg.Wait()

	after, _ := s.Sale(sl.ID)
	assert.Zero(t, after.Balance.Float())
	assert.InDelta(t, before.Balance.Float(), after.AmountPaid.Float(), 0.001)
}

func TestResetData(t *testing.T) {
	s, local := setup(t)
	ctx := context.Background()
	p := seedProduct(t, s, "Colombia", 10, 50, 20)
	seedClient(t, s, "Ana")
	_, err := s.AddSale(ctx, checkout(t, p, 1, nil, nil))
	require.NoError(t, err)
	require.True(t, local.has(state.KeyData))

	snap, err := s.ResetData(ctx)
	require.NoError(t, err)

	assert.Empty(t, snap.Products)
	assert.Empty(t, snap.Clients)
	assert.Empty(t, snap.Sales)
	assert.Empty(t, snap.Purchases)
	assert.Empty(t, snap.Consumptions)
	assert.False(t, local.has(state.KeyData))
}

func TestExportImport(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()
	p := seedProduct(t, s, "Colombia", 10, 50, 20)
	c := seedClient(t, s, "Ana")
	_, err := s.AddSale(ctx, checkout(t, p, 2, &c, nil))
	require.NoError(t, err)

	exported, err := s.ExportData()
	require.NoError(t, err)
	before := s.Snapshot()

	t.Run("RoundTrip", func(t *testing.T) {
		_, err := s.ImportData(ctx, exported)
		require.NoError(t, err)
		assert.Equal(t, before, s.Snapshot())

		again, err := s.ExportData()
		require.NoError(t, err)
		assert.Equal(t, string(exported), string(again))
	})

	t.Run("InvalidKeepsState", func(t *testing.T) {
		_, err := s.ImportData(ctx, []byte("isto não é json"))
		assert.ErrorIs(t, err, state.ErrInvalidDocument)
		assert.Equal(t, before, s.Snapshot())
	})

	t.Run("ReplacesWholesale", func(t *testing.T) {
		snap, err := s.ImportData(ctx, []byte(`{"products":[{"id":"x","name":"Nuevo","stock":3}]}`))
		require.NoError(t, err)
		require.Len(t, snap.Products, 1)
		assert.Equal(t, "x", snap.Products[0].ID)
		assert.Empty(t, snap.Clients)
		assert.Empty(t, snap.Sales)
	})
}

func TestSaveLock(t *testing.T) {
	s, local := setup(t)
	ctx := context.Background()
	seedProduct(t, s, "Colombia", 10, 50, 20)
	saves := local.saves

	s.SetSaveLock(true)
	assert.True(t, s.SaveLocked())
	seedProduct(t, s, "Etiopía", 10, 50, 20)
	assert.Equal(t, saves, local.saves)
	assert.Len(t, s.Snapshot().Products, 2)

	s.SetSaveLock(false)
	assert.Equal(t, saves+1, local.saves, "destravar grava o estado mantido em memória")
	_, err := s.AdjustStock(ctx, "nada", 1)
	require.NoError(t, err)
	assert.Equal(t, saves+2, local.saves)
}

func TestSaveUnlockPersistsLockedMutations(t *testing.T) {
	s, local := setup(t)
	ctx := context.Background()

	s.SetSaveLock(true)
	seedProduct(t, s, "Colombia", 10, 50, 20)
	assert.False(t, local.has(state.KeyData))

	s.SetSaveLock(false)
	require.True(t, local.has(state.KeyData))

	reloaded := New(ctx, local, nil, logger.NewNop(), Config{})
	products := reloaded.Snapshot().Products
	require.Len(t, products, 1)
	assert.Equal(t, "Colombia", products[0].Name)

	// destravar sem trava ativa não grava de novo
	saves := local.saves
	s.SetSaveLock(false)
	assert.Equal(t, saves, local.saves)
}

func TestLocalFailureDoesNotUndoMutation(t *testing.T) {
	s, local := setup(t)
	local.saveErr = errors.New("cota excedida")

	seedProduct(t, s, "Colombia", 10, 50, 20)
	assert.Len(t, s.Snapshot().Products, 1)
}

func TestSettings(t *testing.T) {
	s, local := setup(t)
	ctx := context.Background()

	assert.Equal(t, Settings{StockThreshold: DefaultStockThreshold}, s.Settings(ctx))

	saved, err := s.SaveSettings(ctx, Settings{StockThreshold: 5, MonthlyGoal: 250000})
	require.NoError(t, err)
	assert.Equal(t, 5, saved.StockThreshold)
	assert.Equal(t, saved, s.Settings(ctx))
	assert.Equal(t, "5", string(local.data[state.KeyStockThreshold]))

	_, err = s.SaveSettings(ctx, Settings{StockThreshold: -1})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}
