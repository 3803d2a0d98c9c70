// Package llm wraps text-generation endpoints behind a small Provider
// interface.
package llm

import (
	"context"
	"errors"
)

// ErrGeneration indicates the model call failed.
var ErrGeneration = errors.New("text generation failed")

// Provider generates a completion for a prompt. Options override the
// provider's configured sampling defaults for a single call.
type Provider interface {
	Generate(ctx context.Context, prompt string, opts ...Option) (string, error)
}

// Options holds per-call sampling overrides.
type Options struct {
	Model       string
	Temperature *float64
	Stop        []string
}

// Option mutates Options.
type Option func(*Options)

// WithModel selects a different model for this call.
func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

// WithTemperature overrides the sampling temperature for this call.
func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = &t }
}

// WithStop replaces the configured stop sequences for this call.
func WithStop(stop []string) Option {
	return func(o *Options) { o.Stop = stop }
}

// Apply folds the option list into an Options value.
func Apply(opts []Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
