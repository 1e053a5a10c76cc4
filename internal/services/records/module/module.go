// Package module implements the records service module
package module

import (
	"veracity/internal/modkit"
	"veracity/internal/modkit/httpkit"
	"veracity/internal/services/records/domain"
	"veracity/internal/services/records/repo"
	"veracity/internal/services/records/service"
)

// Ports exposed by the records module
type Ports struct {
	Gateway domain.GatewayPort
}

// Module implements the records service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new records module
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	svc := service.New(deps.PG, repo.NewPG(), deps.RD, service.Config{
		CacheTTL: opts.CacheTTL,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Gateway: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "records" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
