// Package api provides the HTTP API for the application
package api

import (
	"veracity/internal/platform/config"
	"veracity/internal/platform/logger"
	phttp "veracity/internal/platform/net/http"
	"veracity/internal/platform/store"

	"veracity/internal/modkit"
	"veracity/internal/modkit/httpkit"
	"veracity/internal/modkit/module"
	"veracity/internal/modkit/swaggerkit"

	hooksmod "veracity/internal/services/api/hooks/module"
	metamod "veracity/internal/services/api/meta/module"
	statsmod "veracity/internal/services/api/stats/module"
	verifyapimod "veracity/internal/services/api/verify/module"

	// Pipeline modules (own the verifier, gateway and analytics ports)
	eventsmod "veracity/internal/services/events/module"
	recordsmod "veracity/internal/services/records/module"
	verifydom "veracity/internal/services/verify/domain"
	verifymod "veracity/internal/services/verify/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
		RD:  opt.Store.RD,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// Construct the pipeline modules first and extract their ports
	records := recordsmod.New(deps)
	gateway := module.MustPortsOf[recordsmod.Ports](records).Gateway

	events := eventsmod.New(deps)
	evPorts := module.MustPortsOf[eventsmod.Ports](events)

	verifier := verifymod.New(deps, modkit.WithPorts(verifydom.Ports{
		Records: gateway,
		Events:  evPorts.Recorder,
	}))
	vPorts := module.MustPortsOf[verifymod.Ports](verifier)

	// Inject the pipeline ports into the API modules
	apiMeta := metamod.New(deps, modkit.WithPorts(metamod.InjectedPorts{
		Info: vPorts.Info,
	}))
	apiVerify := verifyapimod.New(deps, modkit.WithPorts(verifyapimod.Ports{
		Verifier: vPorts.Verifier,
		Records:  gateway,
		Reader:   evPorts.Reader,
	}))
	apiStats := statsmod.New(deps, modkit.WithPorts(statsmod.InjectedPorts{
		Reader: evPorts.Reader,
	}))
	apiHooks := hooksmod.New(deps, modkit.WithPorts(hooksmod.InjectedPorts{
		Verifier: vPorts.Verifier,
	}))

	mods := []module.Module{
		records, // include pipeline modules so their ports are registered
		events,
		verifier,
		apiMeta,
		apiVerify,
		apiStats,
		apiHooks,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
