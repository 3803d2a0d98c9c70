package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the legalchat service.
type Config struct {
	Server    ServerConfig    `json:"server" yaml:"server"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Index     IndexConfig     `json:"index" yaml:"index"`
	Corpus    CorpusConfig    `json:"corpus" yaml:"corpus"`
	Rerank    RerankConfig    `json:"rerank" yaml:"rerank"`
	Retrieval RetrievalConfig `json:"retrieval" yaml:"retrieval"`
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
	Router    RouterConfig    `json:"router" yaml:"router"`
	Session   SessionConfig   `json:"session" yaml:"session"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// EmbeddingConfig defines the query embedding model endpoint.
type EmbeddingConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // Available options: openai
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model      string `json:"model" yaml:"model"`
	Dimensions int    `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	// MaxTokens bounds the tokenized query length before embedding.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	TimeoutMs int `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
}

// IndexConfig defines the vector index backend.
type IndexConfig struct {
	Provider string `json:"provider" yaml:"provider"` // Available options: flat, milvus
	// ArtifactPath is the persisted embeddings artifact for the flat index.
	ArtifactPath string `json:"artifact_path,omitempty" yaml:"artifact_path,omitempty"`
	// Milvus connection settings.
	Address    string `json:"address,omitempty" yaml:"address,omitempty"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
	Password   string `json:"password,omitempty" yaml:"password,omitempty"`
	Database   string `json:"database,omitempty" yaml:"database,omitempty"`
	Collection string `json:"collection,omitempty" yaml:"collection,omitempty"`
	MetricType string `json:"metric_type,omitempty" yaml:"metric_type,omitempty"`
	TimeoutMs  int    `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
}

// CorpusConfig locates the passage corpus.
type CorpusConfig struct {
	Path string `json:"path" yaml:"path"`
}

// RerankMember is one cross-encoder in the ensemble.
type RerankMember struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// RerankConfig defines the reranking ensemble.
type RerankConfig struct {
	Members   []RerankMember `json:"members" yaml:"members"`
	TimeoutMs int            `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
}

// RetrievalConfig controls the retrieval orchestrator.
type RetrievalConfig struct {
	TopK int `json:"top_k,omitempty" yaml:"top_k,omitempty"`
	// MinTokens is the context token gate: below it the grounded prompt is skipped.
	MinTokens int `json:"min_tokens,omitempty" yaml:"min_tokens,omitempty"`
	// SnapshotDir receives per-session retrieval snapshots.
	SnapshotDir string `json:"snapshot_dir,omitempty" yaml:"snapshot_dir,omitempty"`
	// TokenizerEncoding names the tiktoken encoding used for token budgets.
	TokenizerEncoding string `json:"tokenizer_encoding,omitempty" yaml:"tokenizer_encoding,omitempty"`
}

// LLMConfig defines the text-generation model used for final answers.
type LLMConfig struct {
	Provider         string   `json:"provider" yaml:"provider"` // Available options: openai
	APIKey           string   `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL          string   `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model            string   `json:"model" yaml:"model"`
	Temperature      float64  `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP             float64  `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	FrequencyPenalty float64  `json:"frequency_penalty,omitempty" yaml:"frequency_penalty,omitempty"`
	MaxTokens        int      `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Stop             []string `json:"stop,omitempty" yaml:"stop,omitempty"`
	TimeoutMs        int      `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
}

// RouterConfig controls the function-calling router.
type RouterConfig struct {
	Enable bool `json:"enable" yaml:"enable"`
	// Model overrides LLM.Model for routing decisions; empty means same model.
	Model       string  `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	// Stop replaces the generation stop list for routing calls.
	Stop      []string `json:"stop,omitempty" yaml:"stop,omitempty"`
	TimeoutMs int      `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
}

// SessionConfig defines the Redis-backed session/history store.
type SessionConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
	// HistoryTTLSeconds is the chat history expiry, refreshed on append.
	HistoryTTLSeconds int `json:"history_ttl_seconds,omitempty" yaml:"history_ttl_seconds,omitempty"`
	// SessionTTLSeconds is the session metadata expiry.
	SessionTTLSeconds int `json:"session_ttl_seconds,omitempty" yaml:"session_ttl_seconds,omitempty"`
}

// CacheConfig controls the retrieval result cache.
type CacheConfig struct {
	Enable     bool `json:"enable" yaml:"enable"`
	TTLSeconds int  `json:"ttl_seconds,omitempty" yaml:"ttl_seconds,omitempty"`
	MaxEntries int  `json:"max_entries,omitempty" yaml:"max_entries,omitempty"`
}

// Default returns the baseline configuration before file and env overrides.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8000"},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "vn-law-embedding",
			MaxTokens: 512,
			TimeoutMs: 10000,
		},
		Index: IndexConfig{
			Provider:     "flat",
			ArtifactPath: "data/embeddings.json",
			MetricType:   "IP",
			TimeoutMs:    5000,
		},
		Corpus: CorpusConfig{Path: "data/Chunk.json"},
		Rerank: RerankConfig{TimeoutMs: 15000},
		Retrieval: RetrievalConfig{
			TopK:              10,
			MinTokens:         150,
			SnapshotDir:       "data/retrieval",
			TokenizerEncoding: "cl100k_base",
		},
		LLM: LLMConfig{
			Provider:         "openai",
			Model:            "mistral:7b",
			Temperature:      0.7,
			TopP:             0.9,
			FrequencyPenalty: 1.1,
			MaxTokens:        2048,
			Stop:             []string{"Question:", "Câu hỏi:", "Human:", "Assistant:"},
			TimeoutMs:        120000,
		},
		Router: RouterConfig{
			Enable:      true,
			Model:       "llama3.1:8b",
			Temperature: 0.1,
			Stop:        []string{"Question:", "Câu hỏi:", "Human:", "Assistant:", "```"},
			TimeoutMs:   60000,
		},
		Session: SessionConfig{
			Addr:              "localhost:6379",
			HistoryTTLSeconds: 3600,
			SessionTTLSeconds: 1800,
		},
		Cache: CacheConfig{TTLSeconds: 3600, MaxEntries: 500},
	}
}

// Load reads the YAML config file at path (if non-empty) over the defaults,
// then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides secrets and addresses from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("LEGALCHAT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		if c.LLM.APIKey == "" {
			c.LLM.APIKey = v
		}
		if c.Embedding.APIKey == "" {
			c.Embedding.APIKey = v
		}
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("EMBEDDING_BASE_URL"); v != "" {
		c.Embedding.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Session.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Session.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Session.DB = n
		}
	}
	if v := os.Getenv("MILVUS_ADDRESS"); v != "" {
		c.Index.Address = v
	}
}

// EmbedTimeout returns the embedding call timeout.
func (c *Config) EmbedTimeout() time.Duration { return msOrDefault(c.Embedding.TimeoutMs, 10*time.Second) }

// IndexTimeout returns the vector search timeout.
func (c *Config) IndexTimeout() time.Duration { return msOrDefault(c.Index.TimeoutMs, 5*time.Second) }

// RerankTimeout returns the cross-encoder call timeout.
func (c *Config) RerankTimeout() time.Duration { return msOrDefault(c.Rerank.TimeoutMs, 15*time.Second) }

// GenerateTimeout returns the text-generation timeout.
func (c *Config) GenerateTimeout() time.Duration {
	return msOrDefault(c.LLM.TimeoutMs, 2*time.Minute)
}

// RouteTimeout returns the router decision timeout.
func (c *Config) RouteTimeout() time.Duration { return msOrDefault(c.Router.TimeoutMs, time.Minute) }

func msOrDefault(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
