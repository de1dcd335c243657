package sqlkit

import (
	"fmt"
	"io"
	"os"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

type renderConfig struct {
	table     render.Table
	listeners []render.Listener
}

// RenderOption configures NewRenderer.
type RenderOption func(*renderConfig)

// WithCapabilities replaces the built-in capability table.
func WithCapabilities(table CapabilityTable) RenderOption {
	return func(c *renderConfig) {
		c.table = table
	}
}

// WithListener reports clause boundaries to l.
func WithListener(l Listener) RenderOption {
	return func(c *renderConfig) {
		c.listeners = append(c.listeners, l)
	}
}

// NewRenderer creates a renderer for dialect d.
func NewRenderer(d types.Dialect, opts ...RenderOption) (Renderer, error) {
	cfg := renderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.table == nil {
		cfg.table = render.DefaultCapabilities()
	}

	var ropts []render.Option
	switch len(cfg.listeners) {
	case 0:
	case 1:
		ropts = append(ropts, render.WithListener(cfg.listeners[0]))
	default:
		ropts = append(ropts, render.WithListener(listeners(cfg.listeners)))
	}

	r, err := render.New(d, cfg.table, ropts...)
	if err != nil {
		return nil, fmt.Errorf("renderer for %s: %w", d, err)
	}
	return r, nil
}

// MustRenderer creates a renderer for dialect d or panics.
func MustRenderer(d types.Dialect, opts ...RenderOption) Renderer {
	r, err := NewRenderer(d, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultCapabilities returns a fresh copy of the built-in capability table.
func DefaultCapabilities() CapabilityTable {
	return render.DefaultCapabilities()
}

// LoadCapabilities applies YAML overrides keyed by dialect name to base.
//
//	firebird:
//	  if_not_exists: true
//	postgres:
//	  omit_no_cache: false
func LoadCapabilities(r io.Reader, base CapabilityTable) (CapabilityTable, error) {
	return render.LoadCapabilities(r, base)
}

// LoadCapabilitiesFile applies the overrides in the named YAML file to the
// built-in table.
func LoadCapabilitiesFile(path string) (CapabilityTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capabilities: %w", err)
	}
	defer f.Close()
	return render.LoadCapabilities(f, render.DefaultCapabilities())
}

// listeners fans clause boundaries out in registration order.
type listeners []render.Listener

func (ls listeners) ClauseStart(c types.Clause) {
	for _, l := range ls {
		l.ClauseStart(c)
	}
}

func (ls listeners) ClauseEnd(c types.Clause) {
	for _, l := range ls {
		l.ClauseEnd(c)
	}
}
