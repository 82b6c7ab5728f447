package studio

import (
	"go.uber.org/fx"

	"github.com/Raikerian/go-adstudio/internal/mastering"
	"github.com/Raikerian/go-adstudio/internal/music"
	"github.com/Raikerian/go-adstudio/internal/scripts"
	"github.com/Raikerian/go-adstudio/internal/speech"
)

// Module provides the Studio on top of the scripts, speech and mastering
// modules.
var Module = fx.Module("studio",
	fx.Provide(
		func(w *scripts.Writer) ScriptWriter { return w },
		func(s *speech.Synthesizer) Narrator { return s },
		func(m *mastering.Service) Masterer { return m },
		func(l *music.Loader) Prefetcher { return l },
		New,
	),
)
