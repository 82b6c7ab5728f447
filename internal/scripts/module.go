package scripts

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/config"
)

// Module provides the script writer and the per-user script store.
var Module = fx.Module("scripts",
	fx.Provide(
		NewWriter,
		NewStoreProvider,
	),
)

// NewStoreProvider creates a Store with config-derived size.
func NewStoreProvider(cfg *config.Config, logger *zap.Logger) (*Store, error) {
	size := cfg.OpenAI.ScriptCacheSize
	if size <= 0 {
		logger.Warn("OpenAI ScriptCacheSize is not configured or is invalid, defaulting to 500",
			zap.Int("configuredSize", size))
		size = 500
	}
	logger.Info("Creating script store", zap.Int("size", size))

	return NewStore(size)
}
