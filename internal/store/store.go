package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/la-tostadora/internal/domain/client"
	"github.com/hugohenrick/la-tostadora/internal/domain/consumption"
	"github.com/hugohenrick/la-tostadora/internal/domain/product"
	"github.com/hugohenrick/la-tostadora/internal/domain/purchase"
	"github.com/hugohenrick/la-tostadora/internal/domain/sale"
	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/hugohenrick/la-tostadora/internal/infrastructure/monitoring"
	"github.com/hugohenrick/la-tostadora/pkg/domain"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
	"github.com/shopspring/decimal"
)

// Config contém as opções do Store
type Config struct {
	// SaveLocked inicia com a gravação local suspensa
	SaveLocked bool
	// PushTimeout limita cada envio em segundo plano ao armazenamento remoto
	PushTimeout time.Duration
	// Now permite fixar o relógio em testes
	Now func() time.Time
}

// Store mantém o estado da aplicação e aplica as mutações mantendo os campos derivados
// (estoque, total gasto, saldo) consistentes. Cada mutação grava localmente, a menos que
// a gravação esteja travada, e envia o documento ao armazenamento remoto quando há
// código de sincronização.
type Store struct {
	mu         sync.RWMutex
	state      *state.AppState
	saveLocked bool

	local  state.LocalRepository
	remote state.SyncRepository
	logger logger.Logger

	pushTimeout time.Duration
	now         func() time.Time

	syncMu     sync.RWMutex
	syncStatus SyncStatus
	lastSync   time.Time
	lastError  string

	// pushSeq é protegido por mu
	pushSeq uint64

	pushMu      sync.Mutex
	pendingPush *pushJob
	pushing     bool
	pushedSeq   uint64
	background  sync.WaitGroup
}

// New cria o Store lendo o estado salvo localmente. Chave ausente ou documento
// corrompido iniciam um estado vazio. remote pode ser nil quando a sincronização
// está desativada.
func New(ctx context.Context, local state.LocalRepository, remote state.SyncRepository, log logger.Logger, cfg Config) *Store {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.PushTimeout <= 0 {
		cfg.PushTimeout = 15 * time.Second
	}

	s := &Store{
		state:       state.Empty(),
		saveLocked:  cfg.SaveLocked,
		local:       local,
		remote:      remote,
		logger:      log,
		pushTimeout: cfg.PushTimeout,
		now:         cfg.Now,
		syncStatus:  SyncStatusNone,
	}

	data, err := local.Load(ctx, state.KeyData)
	switch {
	case errors.Is(err, state.ErrKeyNotFound):
		log.Info("nenhum dado local encontrado, iniciando estado vazio")
	case err != nil:
		log.Error("erro ao ler dados locais, iniciando estado vazio", "error", err)
	default:
		loaded, err := state.Parse(data)
		if err != nil {
			log.Error("dados locais corrompidos, iniciando estado vazio", "error", err)
		} else {
			s.state = loaded
		}
	}

	if s.state.SyncID != "" && remote != nil {
		s.syncStatus = SyncStatusConnected
	}

	monitoring.SetCollectionSizes(len(s.state.Products), len(s.state.Clients), len(s.state.Sales))
	return s
}

// Snapshot retorna uma cópia do estado atual
func (s *Store) Snapshot() *state.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Product retorna um produto pelo id
func (s *Store) Product(id string) (product.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.FindProduct(id)
	return p.Clone(), ok
}

// Client retorna um cliente pelo id
func (s *Store) Client(id string) (client.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FindClient(id)
}

// Sale retorna uma venda pelo id
func (s *Store) Sale(id string) (sale.Sale, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.state.FindSale(id)
	return sl.Clone(), ok
}

// AddProduct adiciona um produto. Não há verificação de id duplicado.
func (s *Store) AddProduct(ctx context.Context, p product.Product) (*state.AppState, error) {
	return s.mutate(ctx, "add_product", func(st *state.AppState) error {
		st.Products = append(st.Products, p.Clone())
		return nil
	})
}

// UpdateProduct substitui o produto de mesmo id. Id inexistente não altera nada.
func (s *Store) UpdateProduct(ctx context.Context, p product.Product) (*state.AppState, error) {
	return s.mutate(ctx, "update_product", func(st *state.AppState) error {
		for i := range st.Products {
			if st.Products[i].ID == p.ID {
				st.Products[i] = p.Clone()
			}
		}
		return nil
	})
}

// DeleteProduct remove o produto. Vendas antigas mantêm sua cópia.
func (s *Store) DeleteProduct(ctx context.Context, id string) (*state.AppState, error) {
	return s.mutate(ctx, "delete_product", func(st *state.AppState) error {
		kept := st.Products[:0]
		for _, p := range st.Products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		st.Products = kept
		return nil
	})
}

// AdjustStock soma delta ao estoque do produto. Produto inexistente é ignorado.
func (s *Store) AdjustStock(ctx context.Context, productID string, delta int) (*state.AppState, error) {
	return s.mutate(ctx, "adjust_stock", func(st *state.AppState) error {
		for i := range st.Products {
			if st.Products[i].ID == productID {
				st.Products[i].Stock += domain.Int(delta)
			}
		}
		return nil
	})
}

// AddClient adiciona um cliente
func (s *Store) AddClient(ctx context.Context, c client.Client) (*state.AppState, error) {
	return s.mutate(ctx, "add_client", func(st *state.AppState) error {
		st.Clients = append(st.Clients, c)
		return nil
	})
}

// UpdateClient substitui o cliente de mesmo id. Id inexistente não altera nada.
func (s *Store) UpdateClient(ctx context.Context, c client.Client) (*state.AppState, error) {
	return s.mutate(ctx, "update_client", func(st *state.AppState) error {
		for i := range st.Clients {
			if st.Clients[i].ID == c.ID {
				st.Clients[i] = c
			}
		}
		return nil
	})
}

// DeleteClient remove o cliente. As vendas dele continuam com o nome gravado.
func (s *Store) DeleteClient(ctx context.Context, id string) (*state.AppState, error) {
	return s.mutate(ctx, "delete_client", func(st *state.AppState) error {
		kept := st.Clients[:0]
		for _, c := range st.Clients {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		st.Clients = kept
		return nil
	})
}

// AddSale registra a venda, baixa o estoque de cada item e soma o total ao cliente.
// Itens de produtos inexistentes e clientes inexistentes são ignorados.
func (s *Store) AddSale(ctx context.Context, sl sale.Sale) (*state.AppState, error) {
	return s.mutate(ctx, "add_sale", func(st *state.AppState) error {
		st.Sales = append(st.Sales, sl.Clone())
		applySaleEffects(st, sl, 1)
		return nil
	})
}

// DeleteSale remove apenas o registro da venda. Estoque e total gasto do cliente
// não são revertidos; use RevertSale para isso.
func (s *Store) DeleteSale(ctx context.Context, id string) (*state.AppState, error) {
	return s.mutate(ctx, "delete_sale", func(st *state.AppState) error {
		removeSale(st, id)
		return nil
	})
}

// RevertSale remove a venda devolvendo o estoque dos itens e descontando o total do cliente
func (s *Store) RevertSale(ctx context.Context, id string) (*state.AppState, error) {
	return s.mutate(ctx, "revert_sale", func(st *state.AppState) error {
		sl, ok := st.FindSale(id)
		if !ok {
			return sale.ErrSaleNotFound
		}
		applySaleEffects(st, sl, -1)
		removeSale(st, id)
		return nil
	})
}

// AddPaymentToSale registra um pagamento na venda: amountPaid aumenta, balance diminui
// e o registro é anexado. O valor não é limitado ao saldo.
func (s *Store) AddPaymentToSale(ctx context.Context, saleID string, p sale.PaymentRecord) (*state.AppState, error) {
	return s.mutate(ctx, "add_payment", func(st *state.AppState) error {
		for i := range st.Sales {
			if st.Sales[i].ID == saleID {
				st.Sales[i].ApplyPayment(p)
			}
		}
		return nil
	})
}

// AddPurchase anexa a compra ao histórico. Não altera o estoque.
func (s *Store) AddPurchase(ctx context.Context, p purchase.Purchase) (*state.AppState, error) {
	return s.mutate(ctx, "add_purchase", func(st *state.AppState) error {
		st.Purchases = append(st.Purchases, p)
		return nil
	})
}

// AddConsumption anexa o consumo ao histórico. Não altera o estoque.
func (s *Store) AddConsumption(ctx context.Context, c consumption.Consumption) (*state.AppState, error) {
	return s.mutate(ctx, "add_consumption", func(st *state.AppState) error {
		st.Consumptions = append(st.Consumptions, c)
		return nil
	})
}

// RecordPurchase anexa a compra e soma a quantidade ao estoque do produto na mesma mutação
func (s *Store) RecordPurchase(ctx context.Context, p purchase.Purchase) (*state.AppState, error) {
	return s.mutate(ctx, "record_purchase", func(st *state.AppState) error {
		i := productIndex(st, p.ProductID)
		if i < 0 {
			return product.ErrProductNotFound
		}
		st.Purchases = append(st.Purchases, p)
		st.Products[i].Stock += p.Quantity
		return nil
	})
}

// RecordConsumption anexa o consumo e baixa o estoque na mesma mutação. A quantidade é
// conferida contra o estoque vigente no momento da gravação.
func (s *Store) RecordConsumption(ctx context.Context, c consumption.Consumption) (*state.AppState, error) {
	return s.mutate(ctx, "record_consumption", func(st *state.AppState) error {
		i := productIndex(st, c.ProductID)
		if i < 0 {
			return product.ErrProductNotFound
		}
		if c.Quantity > st.Products[i].Stock {
			return consumption.ErrExceedsStock
		}
		st.Consumptions = append(st.Consumptions, c)
		st.Products[i].Stock -= c.Quantity
		return nil
	})
}

// RegisterPayment limita o valor ao saldo vigente da venda e aplica o pagamento.
// Retorna o valor efetivamente aplicado.
func (s *Store) RegisterPayment(ctx context.Context, saleID string, amount float64, method sale.PaymentMethod) (*state.AppState, float64, error) {
	var applied float64
	st, err := s.mutate(ctx, "add_payment", func(st *state.AppState) error {
		for i := range st.Sales {
			if st.Sales[i].ID != saleID {
				continue
			}
			clamped, err := st.Sales[i].ClampPayment(amount)
			if err != nil {
				return err
			}
			payment, err := sale.NewPayment(clamped, method, s.now())
			if err != nil {
				return err
			}
			st.Sales[i].ApplyPayment(*payment)
			applied = clamped
			return nil
		}
		return sale.ErrSaleNotFound
	})
	if err != nil {
		return nil, 0, err
	}
	return st, applied, nil
}

func productIndex(st *state.AppState, id string) int {
	for i := range st.Products {
		if st.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// ResetData esvazia as cinco coleções, desvincula a sincronização e apaga os dados locais.
// Nada é enviado ao armazenamento remoto.
func (s *Store) ResetData(ctx context.Context) (*state.AppState, error) {
	s.mu.Lock()
	s.state = state.Empty()
	snap := s.state.Clone()
	err := s.local.Remove(ctx, state.KeyData)
	s.mu.Unlock()

	s.setSyncStatus(SyncStatusNone, "")
	monitoring.RecordMutation("reset_data")
	monitoring.SetCollectionSizes(0, 0, 0)

	if err != nil {
		s.logger.Error("erro ao apagar dados locais", "error", err)
		return snap, fmt.Errorf("erro ao apagar dados locais: %w", err)
	}
	s.logger.Warn("todos os dados foram apagados")
	return snap, nil
}

// ExportData serializa o estado completo com indentação de dois espaços
func (s *Store) ExportData() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.MarshalIndent()
}

// ImportData substitui o estado inteiro pelo documento informado. Em caso de erro de
// leitura o estado anterior é mantido.
func (s *Store) ImportData(ctx context.Context, data []byte) (*state.AppState, error) {
	imported, err := state.Parse(data)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, "import_data", func(st *state.AppState) error {
		*st = *imported
		return nil
	})
}

// SetSaveLock trava ou destrava a gravação local. Ao destravar, o estado mantido em
// memória durante a trava é gravado imediatamente.
func (s *Store) SetSaveLock(locked bool) {
	s.mu.Lock()
	flush := s.saveLocked && !locked
	s.saveLocked = locked
	if flush {
		if data, err := s.state.Marshal(); err != nil {
			s.logger.Error("erro ao serializar estado", "op", "save_unlock", "error", err)
		} else {
			s.persistLocked(context.Background(), "save_unlock", data)
		}
	}
	s.mu.Unlock()
	s.logger.Info("trava de gravação local alterada", "locked", locked)
}

// SaveLocked informa se a gravação local está travada
func (s *Store) SaveLocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked
}

// Wait aguarda os envios remotos em andamento
func (s *Store) Wait() {
	s.background.Wait()
}

// mutate aplica fn sobre o estado, grava localmente e agenda o envio remoto.
// fn deve validar antes de alterar o estado: um erro retornado descarta a mutação.
func (s *Store) mutate(ctx context.Context, op string, fn func(st *state.AppState) error) (*state.AppState, error) {
	s.mu.Lock()
	work := s.state.Clone()
	if err := fn(work); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state = work

	snap := s.state.Clone()
	data, err := snap.Marshal()
	if err != nil {
		s.mu.Unlock()
		s.logger.Error("erro ao serializar estado", "op", op, "error", err)
		return snap, nil
	}
	s.persistLocked(ctx, op, data)
	syncID := s.state.SyncID
	s.pushSeq++
	seq := s.pushSeq
	s.mu.Unlock()

	monitoring.RecordMutation(op)
	monitoring.SetCollectionSizes(len(snap.Products), len(snap.Clients), len(snap.Sales))

	s.schedulePush(seq, syncID, data)
	return snap, nil
}

// persistLocked grava o documento localmente. Requer s.mu travado.
func (s *Store) persistLocked(ctx context.Context, op string, data []byte) {
	if s.saveLocked {
		s.logger.Debug("gravação local travada, mutação mantida apenas em memória", "op", op)
		return
	}
	if err := s.local.Save(ctx, state.KeyData, data); err != nil {
		s.logger.Error("erro ao gravar dados locais", "op", op, "error", err)
	}
}

func applySaleEffects(st *state.AppState, sl sale.Sale, sign int) {
	for _, item := range sl.Items {
		for i := range st.Products {
			if st.Products[i].ID == item.ID {
				st.Products[i].Stock -= domain.Int(sign * int(item.Quantity))
			}
		}
	}

	if !sl.HasClient() {
		return
	}
	for i := range st.Clients {
		if st.Clients[i].ID == *sl.ClientID {
			st.Clients[i].TotalSpent = addMoney(st.Clients[i].TotalSpent, float64(sign)*sl.Total.Float())
		}
	}
}

func removeSale(st *state.AppState, id string) {
	kept := st.Sales[:0]
	for _, sl := range st.Sales {
		if sl.ID != id {
			kept = append(kept, sl)
		}
	}
	st.Sales = kept
}

func addMoney(a domain.Number, delta float64) domain.Number {
	return domain.Number(decimal.NewFromFloat(a.Float()).Add(decimal.NewFromFloat(delta)).InexactFloat64())
}
