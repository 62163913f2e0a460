package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"registry-config/internal/types"
)

// Show loads the layered registries documents and returns the merged
// configuration. The local document overlays the global one, so a
// project-level setting wins over a user-level one per key.
func (s Service) Show(ctx context.Context, req ShowRequest) (ShowResult, error) {
	merged, err := s.loadMerged(ctx, req.GlobalPath, req.LocalPath)
	if err != nil {
		return ShowResult{}, err
	}
	return ShowResult{Configuration: merged}, nil
}

func (s Service) loadMerged(ctx context.Context, globalPath string, localPath string) (types.Configuration, error) {
	merged := types.NewConfiguration()
	for _, path := range []string{globalPath, localPath} {
		if path == "" {
			continue
		}
		cfg, err := s.Store.Load(path)
		if err != nil {
			return types.Configuration{}, err
		}
		merged.Merge(cfg)
		log.Ctx(ctx).Debug().
			Str("path", path).
			Int("scoped_registries", len(cfg.ScopedRegistries)).
			Bool("has_default", cfg.DefaultRegistry != nil).
			Msg("registries document loaded")
	}
	return merged, nil
}
