package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env é opcional, fora do desenvolvimento as variáveis vêm do ambiente
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("la-tostadora: .env ignorado: %v", err)
	}

	app, err := NewApp(context.Background())
	if err != nil {
		log.Fatalf("la-tostadora: %v", err)
	}

	err = app.Start()
	// aguarda os envios remotos pendentes antes de sair
	app.Close()
	if err != nil {
		log.Printf("la-tostadora: %v", err)
		os.Exit(1)
	}
}
