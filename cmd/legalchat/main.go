package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/legalchat/legalchat/internal/cache"
	"github.com/legalchat/legalchat/internal/config"
	"github.com/legalchat/legalchat/internal/corpus"
	"github.com/legalchat/legalchat/internal/embedding"
	"github.com/legalchat/legalchat/internal/llm"
	"github.com/legalchat/legalchat/internal/pipeline"
	"github.com/legalchat/legalchat/internal/rerank"
	"github.com/legalchat/legalchat/internal/retrieval"
	"github.com/legalchat/legalchat/internal/router"
	"github.com/legalchat/legalchat/internal/server"
	"github.com/legalchat/legalchat/internal/session"
	"github.com/legalchat/legalchat/internal/tokenizer"
	"github.com/legalchat/legalchat/internal/tools"
	"github.com/legalchat/legalchat/internal/vectordb"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(*configPath, logger); err != nil {
		logger.Fatal("legalchat exited", zap.Error(err))
	}
}

func run(configPath string, logger *zap.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	counter, err := tokenizer.New(cfg.Retrieval.TokenizerEncoding)
	if err != nil {
		return err
	}

	legalCorpus, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return err
	}
	logger.Info("corpus loaded", zap.String("path", cfg.Corpus.Path), zap.Int("chunks", legalCorpus.Size()))

	index, err := buildIndex(ctx, cfg, logger)
	if err != nil {
		return err
	}

	embedder := embedding.NewOpenAIProvider(cfg.Embedding, counter)
	ensemble := rerank.NewEnsemble(cfg.Rerank, cfg.RerankTimeout())
	timeouts := retrieval.Timeouts{Embed: cfg.EmbedTimeout(), Search: cfg.IndexTimeout()}
	retriever := retrieval.New(embedder, index, legalCorpus, ensemble, counter, cfg.Retrieval.TopK, timeouts, logger)

	snapshots, err := retrieval.NewSnapshotStore(cfg.Retrieval.SnapshotDir)
	if err != nil {
		return err
	}

	store, queryCache := buildStores(ctx, cfg, logger)

	generator := llm.NewOpenAIProvider(cfg.LLM)

	var rt *router.Router
	if cfg.Router.Enable {
		rt = router.New(generator, tools.NewRegistry(), cfg.Router, logger)
	}

	p := pipeline.New(cfg, rt, retriever, snapshots, queryCache, generator, store, logger)
	srv := server.New(p, store, logger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func buildIndex(ctx context.Context, cfg *config.Config, logger *zap.Logger) (vectordb.Index, error) {
	switch cfg.Index.Provider {
	case "milvus":
		connectCtx, cancel := context.WithTimeout(ctx, cfg.IndexTimeout())
		defer cancel()
		index, err := vectordb.NewMilvusIndex(connectCtx, cfg.Index)
		if err != nil {
			return nil, err
		}
		logger.Info("milvus index ready", zap.String("collection", cfg.Index.Collection))
		return index, nil
	default:
		index, err := vectordb.LoadFlatIndex(cfg.Index.ArtifactPath)
		if err != nil {
			return nil, err
		}
		logger.Info("flat index loaded",
			zap.String("path", cfg.Index.ArtifactPath), zap.Int("vectors", index.Size()))
		return index, nil
	}
}

// buildStores connects Redis for sessions and the shared query cache.
// Without a reachable Redis the service still comes up on in-process
// stores, which lose state on restart.
func buildStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, cache.QueryCache) {
	cacheTTL := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Session.Addr,
		Password: cfg.Session.Password,
		DB:       cfg.Session.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, using in-memory stores",
			zap.String("addr", cfg.Session.Addr), zap.Error(err))
		var queryCache cache.QueryCache
		if cfg.Cache.Enable {
			queryCache = cache.NewLRU(cfg.Cache.MaxEntries, cacheTTL)
		}
		return session.NewMemStore(), queryCache
	}

	var queryCache cache.QueryCache
	if cfg.Cache.Enable {
		queryCache = cache.NewRedis(client, cacheTTL)
	}
	return session.NewRedisStore(client, cfg.Session), queryCache
}
