package mastering

import (
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/config"
	"github.com/Raikerian/go-adstudio/internal/music"
)

// Module provides the music library and the mastering service. A
// *render.Player is picked up when some other module supplies one.
var Module = fx.Module("mastering",
	fx.Provide(
		fx.Annotate(
			NewMusicLoader,
			fx.As(fx.Self()),
			fx.As(new(MusicSource)),
		),
		NewCatalog,
		NewService,
	),
)

// NewMusicLoader builds the music loader from configuration.
func NewMusicLoader(cfg *config.Config, logger *zap.Logger) (*music.Loader, error) {
	m := cfg.Mastering

	return music.NewLoader(logger, music.LoaderOptions{
		Client:       &http.Client{},
		CacheSize:    m.MusicCacheSize,
		MaxBytes:     m.MaxAssetBytes,
		FetchTimeout: m.FetchTimeout,
	})
}

// NewCatalog indexes the configured vibes.
func NewCatalog(cfg *config.Config) *music.Catalog {
	return music.NewCatalog(cfg.Vibes)
}
