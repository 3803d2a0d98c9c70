package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error [%s]: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("found %d configuration error(s):\n", len(errs)))
	for i, err := range errs {
		b.WriteString(fmt.Sprintf("  %d. [%s] %s\n", i+1, err.Field, err.Message))
	}
	return b.String()
}

// Validate validates the complete configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateEmbedding()...)
	errs = append(errs, c.validateIndex()...)
	errs = append(errs, c.validateCorpus()...)
	errs = append(errs, c.validateRetrieval()...)
	errs = append(errs, c.validateLLM()...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateEmbedding() ValidationErrors {
	var errs ValidationErrors
	if c.Embedding.Provider == "" {
		errs = append(errs, ValidationError{Field: "embedding.provider", Message: "embedding provider is required"})
	}
	if c.Embedding.Model == "" {
		errs = append(errs, ValidationError{Field: "embedding.model", Message: "embedding model is required"})
	}
	if c.Embedding.MaxTokens < 0 {
		errs = append(errs, ValidationError{Field: "embedding.max_tokens", Message: "max_tokens must not be negative"})
	}
	return errs
}

func (c *Config) validateIndex() ValidationErrors {
	var errs ValidationErrors
	switch c.Index.Provider {
	case "flat":
		if c.Index.ArtifactPath == "" {
			errs = append(errs, ValidationError{Field: "index.artifact_path", Message: "flat index requires artifact_path"})
		}
	case "milvus":
		if c.Index.Address == "" {
			errs = append(errs, ValidationError{Field: "index.address", Message: "milvus index requires address"})
		}
		if c.Index.Collection == "" {
			errs = append(errs, ValidationError{Field: "index.collection", Message: "milvus index requires collection"})
		}
	case "":
		errs = append(errs, ValidationError{Field: "index.provider", Message: "index provider is required"})
	default:
		errs = append(errs, ValidationError{Field: "index.provider", Message: fmt.Sprintf("unknown index provider %q", c.Index.Provider)})
	}
	return errs
}

func (c *Config) validateCorpus() ValidationErrors {
	var errs ValidationErrors
	if c.Corpus.Path == "" {
		errs = append(errs, ValidationError{Field: "corpus.path", Message: "corpus path is required"})
	}
	return errs
}

func (c *Config) validateRetrieval() ValidationErrors {
	var errs ValidationErrors
	if c.Retrieval.TopK <= 0 {
		errs = append(errs, ValidationError{Field: "retrieval.top_k", Message: "top_k must be positive"})
	}
	if c.Retrieval.MinTokens < 0 {
		errs = append(errs, ValidationError{Field: "retrieval.min_tokens", Message: "min_tokens must not be negative"})
	}
	return errs
}

func (c *Config) validateLLM() ValidationErrors {
	var errs ValidationErrors
	if c.LLM.Provider == "" {
		errs = append(errs, ValidationError{Field: "llm.provider", Message: "llm provider is required"})
	}
	if c.LLM.Model == "" {
		errs = append(errs, ValidationError{Field: "llm.model", Message: "llm model is required"})
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, ValidationError{Field: "llm.temperature", Message: "temperature must be within [0, 2]"})
	}
	return errs
}
