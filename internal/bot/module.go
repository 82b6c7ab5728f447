// Package bot provides bot service infrastructure and Fx modules.
package bot

import (
	"go.uber.org/fx"

	"github.com/Raikerian/go-adstudio/internal/server"
)

// Module provides bot service dependencies.
var Module = fx.Module("bot",
	fx.Provide(
		NewBot,
		fx.Annotate(
			func(b *Bot) server.HealthFunc { return b.Healthy },
			fx.ResultTags(`group:"health"`),
		),
	),
)
