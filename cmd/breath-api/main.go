package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/PabloGalante/farum-breath/internal/adapters/http"
	"github.com/PabloGalante/farum-breath/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/farum-breath/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/farum-breath/internal/adapters/storage/memory"
	sqlitestore "github.com/PabloGalante/farum-breath/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/farum-breath/internal/app/journal"
	"github.com/PabloGalante/farum-breath/internal/app/practice"
	"github.com/PabloGalante/farum-breath/internal/app/recommendation"
	"github.com/PabloGalante/farum-breath/internal/app/reflection"
	"github.com/PabloGalante/farum-breath/internal/config"
	"github.com/PabloGalante/farum-breath/internal/domain"
	"github.com/PabloGalante/farum-breath/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := observability.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llmClient, err := newLLMClient(ctx, cfg)
	if err != nil {
		logger.Error("llm init failed", "error", err)
		os.Exit(1)
	}

	sessions, entries, closeStore, err := openStores(ctx, cfg)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	handler := httpadapter.NewServer(httpadapter.Services{
		Engine:    recommendation.NewEngine(sessions, llmClient, recommendation.WithLocation(cfg.Location)),
		Practice:  practice.NewService(sessions, cfg.Location),
		Journal:   journal.NewService(entries, cfg.Location),
		Reflector: reflection.NewPrompter(llmClient),
		Location:  cfg.Location,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("breath api listening",
		"port", cfg.Port,
		"storage", cfg.StorageBackend,
		"llm", cfg.LLMProvider,
		"timezone", cfg.Location.String(),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// newLLMClient returns nil for the "none" provider; the engine then always
// uses its fallback rules.
func newLLMClient(ctx context.Context, cfg *config.Config) (domain.LLMClient, error) {
	switch cfg.LLMProvider {
	case config.LLMAnthropic:
		return llm.NewAnthropicClient(llm.AnthropicConfig{
			APIKey:  cfg.AnthropicAPIKey,
			Model:   cfg.AnthropicModel,
			Timeout: cfg.AITimeout,
		}), nil
	case config.LLMVertex:
		return llm.NewVertexClient(ctx, llm.VertexConfig{
			ProjectID: cfg.GCPProjectID,
			Location:  cfg.GCPLocation,
			ModelName: cfg.ModelName,
		})
	case config.LLMMock:
		return llm.NewMockLLM(), nil
	default:
		return nil, nil
	}
}

func openStores(ctx context.Context, cfg *config.Config) (domain.SessionStore, domain.JournalStore, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageFirestore:
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, nil, nil, err
		}
		// 1 store, implements 2 interfaces
		return fsStore, fsStore, func() { _ = fsStore.Close() }, nil
	case config.StorageSQLite:
		sqlStore, err := sqlitestore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return sqlStore, sqlStore, func() { _ = sqlStore.Close() }, nil
	default:
		return memstore.NewSessionStore(), memstore.NewJournalStore(), func() {}, nil
	}
}
