package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hugohenrick/la-tostadora/internal/domain/state"
)

// ErrInvalidKey indica uma chave que não pode virar nome de arquivo
var ErrInvalidKey = errors.New("chave inválida para o armazenamento local")

// FileRepository implementa state.LocalRepository com um arquivo .json por chave
type FileRepository struct {
	dir string
	mu  sync.Mutex
}

// NewFileRepository cria o repositório local no diretório informado, criando-o se preciso
func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de dados: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

var _ state.LocalRepository = (*FileRepository)(nil)

func (r *FileRepository) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return "", ErrInvalidKey
	}
	return filepath.Join(r.dir, key+".json"), nil
}

// Load implementa state.LocalRepository.Load
func (r *FileRepository) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := r.path(key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, state.ErrKeyNotFound
		}
		return nil, fmt.Errorf("erro ao ler chave %s: %w", key, err)
	}
	return data, nil
}

// Save implementa state.LocalRepository.Save. A escrita vai para um arquivo temporário
// que substitui o anterior, então um leitor nunca vê um documento pela metade.
func (r *FileRepository) Save(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.path(key)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("erro ao gravar chave %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("erro ao gravar chave %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("erro ao substituir chave %s: %w", key, err)
	}
	return nil
}

// Remove implementa state.LocalRepository.Remove
func (r *FileRepository) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := r.path(key)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("erro ao remover chave %s: %w", key, err)
	}
	return nil
}
