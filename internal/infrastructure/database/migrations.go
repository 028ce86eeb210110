package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// DefaultMigrationsPath é o diretório das migrações da tabela de sincronização
const DefaultMigrationsPath = "migrations"

// RunMigrations aplica as migrações pendentes de path no banco dbURL
func RunMigrations(dbURL, path string) error {
	if path == "" {
		path = DefaultMigrationsPath
	}
	sourceURL := fmt.Sprintf("file://%s", path)

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("erro ao ler versão das migrações: %w", err)
	}
	log.Printf("Migrações aplicadas (versão %d, dirty=%v)", version, dirty)
	return nil
}

// RollbackMigrations desfaz todas as migrações aplicadas
func RollbackMigrations(dbURL, path string) error {
	if path == "" {
		path = DefaultMigrationsPath
	}

	m, err := migrate.New(fmt.Sprintf("file://%s", path), dbURL)
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao desfazer migrações: %w", err)
	}
	return nil
}
