// Package module wires meta endpoints into the API
package module

import (
	"time"

	"datax/internal/modkit"
	"datax/internal/modkit/httpkit"
	"datax/internal/platform/store"

	metahttp "datax/internal/services/api/meta/http"
)

// ServiceName is reported by health, version and service
const ServiceName = "datax-api"

// Module implements modkit.Module
type Module struct {
	b modkit.Built
}

var _ modkit.Module = (*Module)(nil)

// New constructs a meta module; readiness probes the configured SQL backends
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	d := metahttp.Deps{
		ServiceName:  ServiceName,
		StartedAt:    time.Now(),
		Checks:       checks(deps.Store),
		ReadyTimeout: deps.Cfg.Prefix("DATAX_API_").MayDuration("READY_TIMEOUT", 2*time.Second),
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
		modkit.WithRegister(func(r httpkit.Router) { metahttp.Register(r, d) }),
	}, opts...)...)
	return &Module{b: b}
}

func checks(s *store.Store) []metahttp.Check {
	out := []metahttp.Check{{Name: "pg"}, {Name: "ch"}}
	if s == nil {
		return out
	}
	if s.PG != nil {
		out[0].Pinger = s.PG
	}
	if s.CH != nil {
		out[1].Pinger = s.CH
	}
	return out
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r) }

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.b.Ports }
