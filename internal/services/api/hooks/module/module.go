// Package module wires hooks into the API using modkit
package module

import (
	"net/http"

	modkit "veracity/internal/modkit"
	"veracity/internal/modkit/httpkit"
	"veracity/internal/platform/logger"
	str "veracity/internal/platform/strings"
	hkhttp "veracity/internal/services/api/hooks/http"
	hksvc "veracity/internal/services/api/hooks/service"
	verifydom "veracity/internal/services/verify/domain"
)

// InjectedPorts declares the dependencies this module expects via WithPorts
type InjectedPorts struct {
	Verifier verifydom.VerifierPort
}

// Module implements the hooks module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc hksvc.Service
}

// New constructs the hooks module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("hooks"), modkit.WithPrefix("/hooks")}, opts...)...)

	var injected InjectedPorts
	if p, ok := b.Ports.(InjectedPorts); ok {
		injected = p
	}
	if injected.Verifier == nil {
		panic("hooks module requires a VerifierPort")
	}

	opt := FromConfig(deps.Cfg)
	log := logger.Named("hooks")
	if opt.WhatsAppVerifyToken == "" {
		log.Warn().Msg("HOOKS_WHATSAPP_VERIFY_TOKEN unset, subscription handshakes will be refused")
	}
	if opt.BearerToken == "" {
		log.Warn().Msg("HOOKS_BEARER_TOKEN unset, message delivery will be refused")
	}

	svc := hksvc.New(injected.Verifier)
	port := httpkit.NewStaticPort("whatsapp-hook", opt.BearerToken)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		hkhttp.Register(r, m.svc, opt.WhatsAppVerifyToken, port)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return nil }
