package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9000"
retrieval:
  top_k: 5
  min_tokens: 200
llm:
  model: "llama3.1:70b"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Retrieval.TopK != 5 || cfg.Retrieval.MinTokens != 200 {
		t.Fatalf("retrieval overrides lost: %+v", cfg.Retrieval)
	}
	if cfg.LLM.Model != "llama3.1:70b" {
		t.Fatalf("llm model = %q", cfg.LLM.Model)
	}
	// Untouched defaults survive.
	if cfg.Router.Model != "llama3.1:8b" {
		t.Fatalf("router default lost: %q", cfg.Router.Model)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LEGALCHAT_ADDR", ":7777")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Fatalf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Session.Addr != "redis:6379" || cfg.Session.DB != 3 {
		t.Fatalf("session overrides lost: %+v", cfg.Session)
	}
}

func TestValidate_CollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Embedding.Model = ""
	cfg.Index.Provider = "flat"
	cfg.Index.ArtifactPath = ""
	cfg.Retrieval.TopK = 0
	cfg.LLM.Temperature = 3

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, field := range []string{"embedding.model", "index.artifact_path", "retrieval.top_k", "llm.temperature"} {
		if !strings.Contains(msg, field) {
			t.Fatalf("missing %s in: %s", field, msg)
		}
	}
}

func TestValidate_MilvusRequirements(t *testing.T) {
	cfg := Default()
	cfg.Index.Provider = "milvus"
	cfg.Index.Address = ""
	cfg.Index.Collection = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if !strings.Contains(err.Error(), "index.address") || !strings.Contains(err.Error(), "index.collection") {
		t.Fatalf("milvus requirements not enforced: %s", err)
	}
}

func TestTimeouts(t *testing.T) {
	cfg := Default()
	if cfg.RerankTimeout() != 15*time.Second {
		t.Fatalf("rerank timeout = %v", cfg.RerankTimeout())
	}

	cfg.Rerank.TimeoutMs = 0
	if cfg.RerankTimeout() != 15*time.Second {
		t.Fatalf("zero should fall to default, got %v", cfg.RerankTimeout())
	}

	cfg.LLM.TimeoutMs = 500
	if cfg.GenerateTimeout() != 500*time.Millisecond {
		t.Fatalf("generate timeout = %v", cfg.GenerateTimeout())
	}
}
