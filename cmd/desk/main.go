package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oficina-desk/internal/api"
	"oficina-desk/internal/cache"
	"oficina-desk/internal/config"
	"oficina-desk/internal/httpclient"
	"oficina-desk/internal/queries"
	"oficina-desk/internal/session"
	"oficina-desk/internal/ui"
)

func main() {
	cfg := config.Load()

	// Session first: the HTTP adapter stamps its headers on every request.
	sess := session.NewManager(cfg.Session.File, cfg.Session.Secret)
	sess.Restore()

	client := httpclient.New(cfg.API.BaseURL, cfg.API.Key, cfg.APITimeout(), sess)
	// Any 401/403 from the backend tears the session down; the next
	// render redirects to the login page.
	client.OnAuthFailure(func() {
		log.Printf("[Session] Backend rejected the session, logging out")
		sess.ClearIdentity()
	})

	clientes := api.NewClientes(client)
	chamados := api.NewChamados(client)
	itens := api.NewItens(client)
	caixa := api.NewCaixa(client)
	usuarios := api.NewUsuarios(client)
	stats := api.NewStatistics(chamados, clientes)
	auth := api.NewAuth(client)

	store := cache.New(cfg.FreshFor(), cfg.GCIdle())
	defer store.Stop()

	q := queries.New(store, clientes, chamados, itens, caixa, usuarios, stats)

	server, err := ui.NewServer(cfg, q, sess, auth, client)
	if err != nil {
		log.Fatalf("failed to build ui server: %v", err)
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("%v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("[Desk] Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Desk] Shutdown error: %v", err)
	}
}
