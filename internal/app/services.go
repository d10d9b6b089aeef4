package app

import (
	"fmt"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/config"
	dsssvc "github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/service/dss"
	locationsvc "github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/service/location"
)

// NewCompareService builds the compare service with the defaults of the DSS profile
func NewCompareService(cfg *config.Config, b *Backend) (*dsssvc.Service, error) {
	profile, err := config.LoadProfile(cfg.DSS.ProfilePath)
	if err != nil {
		return nil, err
	}

	opts, err := dsssvc.OptionsFromProfile(profile, cfg.DSS.MaxCompare)
	if err != nil {
		return nil, err
	}

	return dsssvc.NewService(b.Houses, b.Environments, opts), nil
}

// NewRouter wires every HTTP handler on top of b
func NewRouter(cfg *config.Config, b *Backend, version string) (*api.Router, error) {
	compare, err := NewCompareService(cfg, b)
	if err != nil {
		return nil, fmt.Errorf("failed to build compare service: %w", err)
	}

	return api.NewRouter(cfg, api.Dependencies{
		Health:       b.Health,
		Cache:        b.Cache,
		Locations:    locationsvc.NewService(b.Locations, b.Cache, cfg.Redis.TTL),
		Houses:       b.Houses,
		Environments: b.Environments,
		Comparer:     compare,
	}, version), nil
}
