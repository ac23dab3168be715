package main

import (
	"context"

	"syscatalog/internal/config"
	"syscatalog/internal/handlers"
	"syscatalog/internal/services"
	"syscatalog/internal/store"
)

// appServices holds the initialized services and handlers the router
// needs.
type appServices struct {
	catalog       *services.CatalogService
	chat          *services.ChatService
	systemHandler *handlers.SystemHandler
	chatHandler   *handlers.ChatHandler
	healthHandler *handlers.HealthHandler
}

// bootstrap wires the catalog store, the catalog service and the chat
// pipeline. Chat pipeline failures degrade the chat endpoint but never
// prevent startup.
func bootstrap(cfg *config.Config) *appServices {
	catalogStore := store.New(cfg.Storage.Path)
	catalog := services.NewCatalogService(catalogStore)

	chat := services.NewChatService(cfg)
	chat.InitPipeline(context.Background())

	return &appServices{
		catalog:       catalog,
		chat:          chat,
		systemHandler: handlers.NewSystemHandler(catalog),
		chatHandler:   handlers.NewChatHandler(chat),
		healthHandler: handlers.NewHealthHandler(catalog, chat),
	}
}
