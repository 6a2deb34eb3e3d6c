package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/llamabot/llamabot/internal/catalog"
	"github.com/llamabot/llamabot/internal/chat"
	"github.com/llamabot/llamabot/internal/config"
	"github.com/llamabot/llamabot/internal/db"
	"github.com/llamabot/llamabot/internal/httpapi"
	"github.com/llamabot/llamabot/internal/provider"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	repo := chat.NewRepo(gdb)
	session := chat.NewSession(repo)
	if err := session.Init(context.Background()); err != nil {
		log.Fatalf("load chat history: %v", err)
	}

	groq := provider.NewClient(cfg.GroqBaseURL, cfg.APIKey, provider.RetryPolicy{
		MaxAttempts: cfg.RetryMaxAttempts,
		Backoff:     cfg.RetryBackoff,
	})

	info, err := catalog.ParseModelsInfo(cfg.ModelsInfoPath)
	if err != nil {
		log.Printf("models info %s: %v (descriptions unavailable)", cfg.ModelsInfoPath, err)
		info = map[string]string{}
	}
	cat := catalog.New(groq, cfg.CatalogTTL, info)

	r := httpapi.NewRouter(cfg, session, repo, cat, groq)

	log.Printf("listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
