package speech

import "go.uber.org/fx"

// Module provides the narration synthesizer. It expects a Client.
var Module = fx.Module("speech",
	fx.Provide(NewSynthesizer),
)
