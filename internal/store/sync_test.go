package store

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/la-tostadora/internal/domain/state"
	"github.com/hugohenrick/la-tostadora/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	mu      sync.Mutex
	docs    map[string][]byte
	pushErr error
	pushes  int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{docs: make(map[string][]byte)}
}

func (f *fakeRemote) Push(_ context.Context, syncID string, data []byte, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushes++
	f.docs[syncID] = append([]byte(nil), data...)
	return nil
}

func (f *fakeRemote) Pull(_ context.Context, syncID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[syncID]
	if !ok {
		return nil, state.ErrSyncDocumentNotFound
	}
	return d, nil
}

func (f *fakeRemote) doc(t *testing.T, syncID string) *state.AppState {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[syncID]
	require.True(t, ok, "documento remoto ausente")
	s, err := state.Parse(d)
	require.NoError(t, err)
	return s
}

func setupSync(t *testing.T) (*Store, *memLocal, *fakeRemote) {
	t.Helper()
	local := newMemLocal()
	remote := newFakeRemote()
	s := New(context.Background(), local, remote, logger.NewNop(), Config{Now: func() time.Time { return fixedNow }})
	return s, local, remote
}

func TestSyncDisabled(t *testing.T) {
	s, _ := setup(t)
	ctx := context.Background()

	_, err := s.CreateSession(ctx)
	assert.ErrorIs(t, err, ErrSyncDisabled)
	assert.ErrorIs(t, s.Push(ctx), ErrSyncDisabled)
	_, err = s.Pull(ctx)
	assert.ErrorIs(t, err, ErrSyncDisabled)
	assert.False(t, s.SyncInfo().Enabled)

	// mutações seguem funcionando sem armazenamento remoto
	seedProduct(t, s, "Colombia", 10, 50, 20)
}

func TestCreateSession(t *testing.T) {
	s, _, remote := setupSync(t)
	seedProduct(t, s, "Colombia", 10, 50, 20)

	id, err := s.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-z]{6}$`), id)

	info := s.SyncInfo()
	assert.Equal(t, id, info.SyncID)
	assert.Equal(t, SyncStatusConnected, info.Status)
	assert.Equal(t, fixedNow, info.LastSync)

	doc := remote.doc(t, id)
	assert.Equal(t, id, doc.SyncID)
	assert.Len(t, doc.Products, 1)
}

func TestMutationPushesInBackground(t *testing.T) {
	s, _, remote := setupSync(t)
	id, err := s.CreateSession(context.Background())
	require.NoError(t, err)

	seedProduct(t, s, "Colombia", 10, 50, 20)
	seedProduct(t, s, "Etiopía", 10, 50, 20)
	s.Wait()

	assert.Len(t, remote.doc(t, id).Products, 2)
}

func TestPushFailureKeepsLocalMutation(t *testing.T) {
	s, _, remote := setupSync(t)
	_, err := s.CreateSession(context.Background())
	require.NoError(t, err)

	remote.pushErr = errors.New("sin conexión")
	seedProduct(t, s, "Colombia", 10, 50, 20)
	s.Wait()

	assert.Len(t, s.Snapshot().Products, 1)
	info := s.SyncInfo()
	assert.Equal(t, SyncStatusError, info.Status)
	assert.Contains(t, info.LastError, "sin conexión")
}

func TestSetSyncIDAndPull(t *testing.T) {
	s, _, remote := setupSync(t)
	ctx := context.Background()
	remote.docs["abc123"] = []byte(`{"products":[{"id":"p1","name":"Remoto","stock":4}],"syncId":"abc123"}`)

	seedProduct(t, s, "Local", 10, 50, 20)

	_, err := s.SetSyncID(ctx, "  ABC123 ")
	require.NoError(t, err)
	assert.Equal(t, "abc123", s.SyncInfo().SyncID)
	assert.Zero(t, remote.pushes, "vincular não envia o documento")

	snap, err := s.Pull(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Products, 1)
	assert.Equal(t, "Remoto", snap.Products[0].Name)
	assert.Equal(t, "abc123", snap.SyncID)
	assert.Equal(t, SyncStatusConnected, s.SyncInfo().Status)

	t.Run("Unlink", func(t *testing.T) {
		_, err := s.SetSyncID(ctx, "")
		require.NoError(t, err)
		info := s.SyncInfo()
		assert.Empty(t, info.SyncID)
		assert.Equal(t, SyncStatusNone, info.Status)
		assert.ErrorIs(t, s.Push(ctx), ErrNoSyncID)
	})
}

func TestPullMissingDocument(t *testing.T) {
	s, _, _ := setupSync(t)
	ctx := context.Background()
	seedProduct(t, s, "Local", 10, 50, 20)

	_, err := s.SetSyncID(ctx, "nada00")
	require.NoError(t, err)

	_, err = s.Pull(ctx)
	assert.ErrorIs(t, err, state.ErrSyncDocumentNotFound)
	assert.Len(t, s.Snapshot().Products, 1)
	assert.Equal(t, SyncStatusError, s.SyncInfo().Status)
}

func TestStalePushIsSkipped(t *testing.T) {
	s, _, remote := setupSync(t)
	_, err := s.SetSyncID(context.Background(), "seq001")
	require.NoError(t, err)

	s.enqueuePush(&pushJob{seq: 5, syncID: "seq001", data: []byte(`{"products":[{"id":"novo"}]}`)})
	s.Wait()
	s.enqueuePush(&pushJob{seq: 3, syncID: "seq001", data: []byte(`{"products":[{"id":"velho"}]}`)})
	s.Wait()

	doc := remote.doc(t, "seq001")
	require.Len(t, doc.Products, 1)
	assert.Equal(t, "novo", doc.Products[0].ID)
	assert.Equal(t, 1, remote.pushes)
}

// blockingRemote segura cada envio até release ser fechado
type blockingRemote struct {
	*fakeRemote
	started chan struct{}
	release chan struct{}
}

func (b *blockingRemote) Push(ctx context.Context, syncID string, data []byte, at time.Time) error {
	select {
	case b.started <- struct{}{}:
	default:
	}
	<-b.release
	return b.fakeRemote.Push(ctx, syncID, data, at)
}

func TestSlowRemoteDoesNotBlockMutations(t *testing.T) {
	remote := &blockingRemote{
		fakeRemote: newFakeRemote(),
		started:    make(chan struct{}, 1),
		release:    make(chan struct{}),
	}
	s := New(context.Background(), newMemLocal(), remote, logger.NewNop(), Config{Now: func() time.Time { return fixedNow }})
	_, err := s.SetSyncID(context.Background(), "lento1")
	require.NoError(t, err)

	seedProduct(t, s, "Colombia", 10, 50, 20)
	select {
	case <-remote.started:
	case <-time.After(time.Second):
		t.Fatal("envio remoto não iniciou")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		seedProduct(t, s, "Etiopía", 10, 50, 20)
		seedProduct(t, s, "Brasil", 10, 50, 20)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		close(remote.release)
		t.Fatal("mutação aguardou o envio remoto")
	}

	close(remote.release)
	s.Wait()

	assert.Len(t, remote.doc(t, "lento1").Products, 3)
	assert.Equal(t, 2, remote.pushes, "documentos intermediários pendentes são substituídos pelo mais novo")
	assert.Equal(t, SyncStatusConnected, s.SyncInfo().Status)
}

func TestExplicitPushWaitsForCoveringPush(t *testing.T) {
	remote := &blockingRemote{
		fakeRemote: newFakeRemote(),
		started:    make(chan struct{}, 1),
		release:    make(chan struct{}),
	}
	s := New(context.Background(), newMemLocal(), remote, logger.NewNop(), Config{Now: func() time.Time { return fixedNow }})
	_, err := s.SetSyncID(context.Background(), "lento2")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Push(ctx), context.DeadlineExceeded)

	close(remote.release)
	require.NoError(t, s.Push(context.Background()))
	s.Wait()
	assert.Equal(t, SyncStatusConnected, s.SyncInfo().Status)
}

func TestNormalizeSyncID(t *testing.T) {
	assert.Equal(t, "x9k2ab", NormalizeSyncID(" X9K2ab\n"))
}
