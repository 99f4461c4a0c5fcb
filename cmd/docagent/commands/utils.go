// ABOUTME: Shared pipeline assembly and helpers for CLI commands
// ABOUTME: Builds the retrieval stack and the full answering agent from config
package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"docagent/internal/agent"
	"docagent/internal/cache"
	"docagent/internal/config"
	"docagent/internal/embedding"
	"docagent/internal/expander"
	"docagent/internal/knowledge"
	"docagent/internal/llm"
	"docagent/internal/retriever"
	"docagent/internal/storage/sqlite"
)

// pipeline is the fully wired answering stack for one document.
type pipeline struct {
	cfg       *config.Config
	retriever *retriever.Retriever
	agent     *agent.Agent
	db        *sqlite.DB
}

// Close releases the cache database if one was opened.
func (p *pipeline) Close() {
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			log.Printf("Warning: closing cache database: %v", err)
		}
	}
}

// buildRetriever loads config, ingests the document and returns the
// retrieval stack. Used directly by commands that never generate answers.
func buildRetriever(ctx context.Context) (*config.Config, *knowledge.Base, embedding.Encoder, *retriever.Retriever, error) {
	// Load .env file if it exists (for access tokens)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	kb := knowledge.NewDefault()
	if cfg.KnowledgeBasePath != "" {
		kb, err = knowledge.Load(cfg.KnowledgeBasePath)
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}

	enc, err := embedding.NewOpenAIEncoder(embedding.OpenAIConfig{
		BaseURL:    cfg.ServiceURL,
		APIKey:     cfg.AccessToken,
		Model:      cfg.EmbeddingModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		return nil, nil, nil, nil, err
	}

	ret := retriever.New(enc, kb)
	if err := ret.IngestFile(ctx, cfg.DocumentPath); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("ingesting %s: %w", cfg.DocumentPath, err)
	}
	if !quiet {
		log.Printf("Ingested %s: %d segments", cfg.DocumentPath, len(ret.Segments()))
	}
	return cfg, kb, enc, ret, nil
}

// buildPipeline assembles the complete answering agent on top of the
// retrieval stack. A broken cache database degrades to a memory-only cache.
func buildPipeline(ctx context.Context) (*pipeline, error) {
	cfg, kb, enc, ret, err := buildRetriever(ctx)
	if err != nil {
		return nil, err
	}

	matcher := cache.NewMatcher(enc)

	dbPath := cfg.CacheDBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	var (
		db    *sqlite.DB
		store *sqlite.QuestionStore
	)
	if db, err = sqlite.Open(dbPath); err != nil {
		log.Printf("Warning: question cache persistence disabled: %v", err)
		db = nil
	} else {
		store = sqlite.NewQuestionStore(db)
		if entries, err := store.LoadAll(); err != nil {
			log.Printf("Warning: loading cached questions: %v", err)
		} else if len(entries) > 0 {
			matcher.Seed(entries)
			if verbose {
				log.Printf("Restored %d cached questions", len(entries))
			}
		}
	}

	client, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.ServiceURL,
		AccessToken: cfg.AccessToken,
		Model:       cfg.ChatModel,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	deps := agent.Deps{
		Retriever: ret,
		Expander:  expander.New(ret),
		Cache:     matcher,
		LLM:       llm.NewConversation(client, llm.NewSession()),
		Knowledge: kb,
	}
	if store != nil {
		deps.Store = store
	}
	a := agent.New(deps, agent.Options{TopK: cfg.TopK, MaxIterations: cfg.MaxIterations})

	return &pipeline{cfg: cfg, retriever: ret, agent: a, db: db}, nil
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
