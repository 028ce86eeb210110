package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/hugohenrick/la-tostadora/internal/infrastructure/monitoring"
)

var (
	ErrSyncDisabled = errors.New("sincronização remota não configurada")
	ErrNoSyncID     = errors.New("nenhum código de sincronização vinculado")
)

// SyncStatus representa o estado da sincronização remota
type SyncStatus string

const (
	SyncStatusNone      SyncStatus = "none"
	SyncStatusConnected SyncStatus = "connected"
	SyncStatusSyncing   SyncStatus = "syncing"
	SyncStatusError     SyncStatus = "error"
)

// SyncInfo resume a situação da sincronização
type SyncInfo struct {
	Enabled   bool
	SyncID    string
	Status    SyncStatus
	LastSync  time.Time
	LastError string
}

const sessionAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// sessionIDLength é o tamanho do código gerado por CreateSession
const sessionIDLength = 6

// SyncInfo retorna a situação atual da sincronização
func (s *Store) SyncInfo() SyncInfo {
	s.mu.RLock()
	syncID := s.state.SyncID
	s.mu.RUnlock()

	s.syncMu.RLock()
	defer s.syncMu.RUnlock()
	return SyncInfo{
		Enabled:   s.remote != nil,
		SyncID:    syncID,
		Status:    s.syncStatus,
		LastSync:  s.lastSync,
		LastError: s.lastError,
	}
}

// NormalizeSyncID aplica trim e caixa baixa a um código informado pelo usuário
func NormalizeSyncID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// CreateSession gera um novo código de sincronização, vincula ao estado e envia o documento
func (s *Store) CreateSession(ctx context.Context) (string, error) {
	if s.remote == nil {
		return "", ErrSyncDisabled
	}

	id := newSessionID()
	if _, err := s.setSyncID(ctx, id); err != nil {
		return "", err
	}
	s.logger.Info("sessão de sincronização criada", "sync_id", id)

	if err := s.Push(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// SetSyncID vincula o estado a um código existente. Código vazio desvincula.
// Vincular não envia o documento; use Pull para trazer os dados do código.
func (s *Store) SetSyncID(ctx context.Context, id string) (*state.AppState, error) {
	id = NormalizeSyncID(id)
	if id != "" && s.remote == nil {
		return nil, ErrSyncDisabled
	}
	return s.setSyncID(ctx, id)
}

func (s *Store) setSyncID(ctx context.Context, id string) (*state.AppState, error) {
	s.mu.Lock()
	s.state.SyncID = id
	snap := s.state.Clone()
	if data, err := snap.Marshal(); err == nil {
		s.persistLocked(ctx, "set_sync_id", data)
	}
	s.mu.Unlock()

	if id == "" {
		s.setSyncStatus(SyncStatusNone, "")
	} else {
		s.setSyncStatus(SyncStatusConnected, "")
	}
	monitoring.RecordMutation("set_sync_id")
	return snap, nil
}

// Push envia o documento atual ao armazenamento remoto e aguarda o resultado
func (s *Store) Push(ctx context.Context) error {
	if s.remote == nil {
		return ErrSyncDisabled
	}

	s.mu.Lock()
	syncID := s.state.SyncID
	data, err := s.state.Marshal()
	s.pushSeq++
	seq := s.pushSeq
	s.mu.Unlock()
	if syncID == "" {
		return ErrNoSyncID
	}
	if err != nil {
		return fmt.Errorf("erro ao serializar estado: %w", err)
	}

	done := make(chan error, 1)
	s.enqueuePush(&pushJob{seq: seq, syncID: syncID, data: data, waiters: []chan error{done}})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pull busca o documento do código vinculado e substitui o estado local inteiro
func (s *Store) Pull(ctx context.Context) (*state.AppState, error) {
	if s.remote == nil {
		return nil, ErrSyncDisabled
	}

	s.mu.RLock()
	syncID := s.state.SyncID
	s.mu.RUnlock()
	if syncID == "" {
		return nil, ErrNoSyncID
	}

	s.setSyncStatus(SyncStatusSyncing, "")
	data, err := s.remote.Pull(ctx, syncID)
	if err != nil {
		s.failSync("pull", err)
		return nil, err
	}

	pulled, err := state.Parse(data)
	if err != nil {
		s.failSync("pull", err)
		return nil, err
	}
	pulled.SyncID = syncID

	s.mu.Lock()
	s.state = pulled
	snap := s.state.Clone()
	if raw, err := snap.Marshal(); err == nil {
		s.persistLocked(ctx, "pull", raw)
	}
	s.mu.Unlock()

	s.syncMu.Lock()
	s.syncStatus = SyncStatusConnected
	s.lastSync = s.now()
	s.lastError = ""
	s.syncMu.Unlock()

	monitoring.RecordSync("pull", "success")
	monitoring.SetCollectionSizes(len(snap.Products), len(snap.Clients), len(snap.Sales))
	s.logger.Info("dados baixados da nuvem", "sync_id", syncID)
	return snap, nil
}

// pushJob é um documento aguardando envio. waiters recebem o resultado do envio que
// o cobriu, que pode ser o de um documento mais novo.
type pushJob struct {
	seq     uint64
	syncID  string
	data    []byte
	waiters []chan error
}

// schedulePush envia o documento em segundo plano. Falhas são registradas e não
// desfazem a mutação local.
func (s *Store) schedulePush(seq uint64, syncID string, data []byte) {
	if s.remote == nil || syncID == "" {
		return
	}
	s.enqueuePush(&pushJob{seq: seq, syncID: syncID, data: data})
}

// enqueuePush guarda apenas o documento mais novo pendente e inicia o envio se
// nenhum estiver em andamento. pushMu nunca é mantido durante a chamada remota.
func (s *Store) enqueuePush(job *pushJob) {
	s.pushMu.Lock()
	defer s.pushMu.Unlock()

	if job.seq <= s.pushedSeq {
		s.skipPush(job.seq)
		notifyPush(job.waiters, nil)
		return
	}

	switch {
	case s.pendingPush == nil:
		s.pendingPush = job
	case job.seq > s.pendingPush.seq:
		s.skipPush(s.pendingPush.seq)
		job.waiters = append(job.waiters, s.pendingPush.waiters...)
		s.pendingPush = job
	default:
		s.skipPush(job.seq)
		s.pendingPush.waiters = append(s.pendingPush.waiters, job.waiters...)
	}

	if !s.pushing {
		s.pushing = true
		s.background.Add(1)
		go s.drainPushes()
	}
}

// drainPushes envia os documentos pendentes um por vez, em ordem de sequência
func (s *Store) drainPushes() {
	defer s.background.Done()

	for {
		s.pushMu.Lock()
		job := s.pendingPush
		s.pendingPush = nil
		if job == nil {
			s.pushing = false
			s.pushMu.Unlock()
			return
		}
		s.pushMu.Unlock()

		err := s.push(job.syncID, job.data)

		s.pushMu.Lock()
		if err == nil && job.seq > s.pushedSeq {
			s.pushedSeq = job.seq
		}
		s.pushMu.Unlock()

		notifyPush(job.waiters, err)
	}
}

func (s *Store) push(syncID string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.pushTimeout)
	defer cancel()

	s.setSyncStatus(SyncStatusSyncing, "")
	if err := s.remote.Push(ctx, syncID, data, s.now()); err != nil {
		s.failSync("push", err)
		return err
	}

	s.syncMu.Lock()
	s.syncStatus = SyncStatusConnected
	s.lastSync = s.now()
	s.lastError = ""
	s.syncMu.Unlock()

	monitoring.RecordSync("push", "success")
	return nil
}

func (s *Store) skipPush(seq uint64) {
	s.logger.Debug("envio descartado, já existe versão mais nova", "seq", seq)
	monitoring.RecordSync("push", "skipped")
}

func notifyPush(waiters []chan error, err error) {
	for _, w := range waiters {
		w <- err
	}
}

func (s *Store) failSync(op string, err error) {
	s.logger.Error("erro na sincronização remota", "op", op, "error", err)
	s.setSyncStatus(SyncStatusError, err.Error())
	monitoring.RecordSync(op, "error")
}

func (s *Store) setSyncStatus(status SyncStatus, lastError string) {
	s.syncMu.Lock()
	s.syncStatus = status
	s.lastError = lastError
	s.syncMu.Unlock()
}

// newSessionID gera um código curto em base 36 a partir dos bytes aleatórios de um UUID v4
func newSessionID() string {
	u := uuid.New()
	out := make([]byte, sessionIDLength)
	for i := range out {
		out[i] = sessionAlphabet[int(u[i])%len(sessionAlphabet)]
	}
	return string(out)
}
