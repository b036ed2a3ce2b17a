package modkit

import (
	"net/http"
	"slices"

	"datax/internal/modkit/httpkit"
	str "datax/internal/platform/strings"
)

// Built is the resolved module configuration
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	register []func(httpkit.Router)
}

// Build applies opts over defaults; defaults come first so callers can override them
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       slices.Clone(c.mw),
		Ports:    c.ports,
		register: slices.Clone(c.register),
	}
}

// Mount routes the module under its prefix, applies its middleware and runs every register hook
func (b Built) Mount(r httpkit.Router) {
	httpkit.MountUnder(r, str.MustPrefix(b.Prefix), b.Mw, func(sub httpkit.Router) {
		for _, fn := range b.register {
			fn(sub)
		}
	})
}
