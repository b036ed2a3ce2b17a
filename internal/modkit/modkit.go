package modkit

import (
	phttp "datax/internal/platform/net/http"
)

// Module is the common surface for API modules that can mount routes and expose ports
type Module interface {
	// MountRoutes mounts HTTP routes under the provided router seam
	MountRoutes(r phttp.Router)
	// Ports returns a module specific port set for cross wiring
	Ports() any
	// Name returns the module name
	Name() string
}

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// PortsOf pulls T out of a module's Ports without a registry
func PortsOf[T any](m Module) (T, bool) {
	v, ok := m.Ports().(T)
	return v, ok
}
