package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	config "Ductwork/internal/config"
	server "Ductwork/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := server.Run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}
