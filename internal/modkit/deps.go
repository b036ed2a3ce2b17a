// Package modkit provides module wiring and core deps
package modkit

import (
	"datax/internal/platform/config"
	"datax/internal/platform/logger"
	"datax/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// Store carries optional SQL backends, nil when none are configured
	Store *store.Store
}
