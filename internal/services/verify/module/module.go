// Package module implements the verify module
package module

import (
	"veracity/internal/adapters/providers"
	"veracity/internal/modkit"
	"veracity/internal/modkit/httpkit"
	"veracity/internal/services/verify/domain"
	"veracity/internal/services/verify/service"

	// adapter factories register themselves on import
	_ "veracity/internal/adapters/providers/all"
)

// Ports exposed by the verify module
type Ports struct {
	Verifier domain.VerifierPort
	Info     domain.InfoPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new verify module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("verify"),
	}, opts...)...)

	// Basic guardrails against incorrect wiring
	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("verify module: expected WithPorts(verify/domain.Ports)")
	}
	if ports.Records == nil {
		panic("verify module: Ports missing Records")
	}

	cfg := FromConfig(deps.Cfg)

	adapters, err := providers.BuildEnabled(providers.FromConf(deps.Cfg.Prefix("PROVIDER_")))
	if err != nil {
		panic(err)
	}

	svc, err := service.New(adapters, ports.Records, ports.Events, service.Config{
		AdapterTimeout:  cfg.AdapterTimeout,
		RequestDeadline: cfg.RequestDeadline,
		BatchMax:        cfg.BatchMax,
		BatchWorkers:    cfg.BatchWorkers,
		Thresholds:      cfg.Thresholds,
	})
	if err != nil {
		panic(err)
	}

	m := &Module{deps: deps}
	m.ports = Ports{Verifier: svc, Info: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "verify" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
