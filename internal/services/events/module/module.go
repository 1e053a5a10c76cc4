// Package module wires the events service and exposes its ports
package module

import (
	"veracity/internal/modkit"
	"veracity/internal/modkit/httpkit"
	"veracity/internal/services/events/domain"
	"veracity/internal/services/events/repo"
	"veracity/internal/services/events/service"
)

// Ports exposed by the events module
type Ports struct {
	Recorder domain.RecorderPort
	Flusher  domain.FlusherPort
	Reader   domain.ReaderPort
}

// Module implements the events service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new events module.
// With no clickhouse in deps the recorder drops and the reader serves empty
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var r *repo.CH
	if deps.CH != nil {
		r = repo.NewCH(deps.CH)
	}

	rec := service.NewRecorder(r, service.Config{
		BufferSize: opts.BufferSize,
		FlushEvery: opts.FlushEvery,
		FlushBatch: opts.FlushBatch,
	})
	rd := service.NewReader(r, service.ReaderConfig{HardLimit: opts.HardLimit})

	m := &Module{deps: deps}
	m.ports = Ports{Recorder: rec, Flusher: rec, Reader: rd}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "events" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
