// Package module wires verify into the API using modkit
package module

import (
	"net/http"

	modkit "veracity/internal/modkit"
	"veracity/internal/modkit/httpkit"
	str "veracity/internal/platform/strings"
	vhttp "veracity/internal/services/api/verify/http"
	vsvc "veracity/internal/services/api/verify/service"
	evdom "veracity/internal/services/events/domain"
	recdom "veracity/internal/services/records/domain"
	verifydom "veracity/internal/services/verify/domain"
)

// Ports declares the required injected ports for this API module
type Ports struct {
	Verifier verifydom.VerifierPort
	Records  recdom.GatewayPort
	Reader   evdom.ReaderPort
}

// Module implements the verify API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc vsvc.Service
}

// New constructs the verify API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("verify"),
		modkit.WithPrefix("/verify"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Verifier == nil || injected.Records == nil || injected.Reader == nil {
		panic("verify API module requires Verifier, Records and Reader ports")
	}

	svc := vsvc.New(injected.Verifier, injected.Records, injected.Reader)

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
		vhttp.Register(r, m.svc)
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
