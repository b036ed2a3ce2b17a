// Package module wires the coverage service into the API
package module

import (
	"datax/internal/modkit"
	"datax/internal/modkit/httpkit"

	covhttp "datax/internal/services/api/coverage/http"
	"datax/internal/services/coverage/domain"
	"datax/internal/services/coverage/service"
)

// Ports is what coverage exposes to other modules
type Ports struct {
	Service domain.ServicePort
}

// Module implements modkit.Module
type Module struct {
	b   modkit.Built
	svc *service.Svc
}

var _ modkit.Module = (*Module)(nil)

// New builds the coverage service from DATAX_* settings and mounts it under /coverage.
// Requests may only name DATAX_SOURCE or an entry of DATAX_API_ALLOWED_SOURCES.
func New(deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	st := service.SettingsFrom(deps.Cfg.Prefix("DATAX_"))
	st.Restrict = true
	st.Allowed = deps.Cfg.Prefix("DATAX_API_").MayCSV("ALLOWED_SOURCES", nil)
	if deps.Store != nil {
		st.Pool = deps.Store
	}
	so, err := st.Options(deps.Log)
	if err != nil {
		return nil, err
	}
	return NewWithService(service.New(so), opts...), nil
}

// NewWithService mounts an already constructed service
func NewWithService(svc *service.Svc, opts ...modkit.Option) *Module {
	m := &Module{svc: svc}
	m.b = modkit.Build(append([]modkit.Option{
		modkit.WithName("coverage"),
		modkit.WithPrefix("/coverage"),
		modkit.WithPorts(Ports{Service: svc}),
		modkit.WithRegister(func(r httpkit.Router) { covhttp.Register(r, svc) }),
	}, opts...)...)
	return m
}

// Service returns the underlying service
func (m *Module) Service() *service.Svc { return m.svc }

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) { m.b.Mount(r) }

// Name implements modkit.Module
func (m *Module) Name() string { return m.b.Name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.b.Ports }
