package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/la-tostadora/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	down := flag.Bool("down", false, "desfaz todas as migrações")
	path := flag.String("path", database.DefaultMigrationsPath, "diretório das migrações")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	dbURL := database.DatabaseURL()

	if *down {
		if err := database.RollbackMigrations(dbURL, *path); err != nil {
			log.Fatalf("Erro ao desfazer migrações: %v", err)
		}
		log.Println("Migrações desfeitas com sucesso!")
		return
	}

	if err := database.RunMigrations(dbURL, *path); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}
