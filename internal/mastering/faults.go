package mastering

import (
	"errors"
	"fmt"

	"github.com/Raikerian/go-adstudio/internal/music"
)

// FaultKind classifies mastering failures.
type FaultKind int

const (
	// DecodeFault: the speech payload was not valid base64. Logged only.
	DecodeFault FaultKind = iota
	// NoVoiceFault: there is no usable narration to mix.
	NoVoiceFault
	// AssetFault: the music bed could not be fetched or decoded.
	AssetFault
	// RenderFault: anything else during mixing, rendering or serializing.
	RenderFault
)

func (k FaultKind) String() string {
	switch k {
	case DecodeFault:
		return "decode"
	case NoVoiceFault:
		return "no_voice"
	case AssetFault:
		return "asset"
	case RenderFault:
		return "render"
	default:
		return "unknown"
	}
}

var (
	// ErrDecode matches DecodeFault.
	ErrDecode = errors.New("speech payload is not valid base64")
	// ErrNoVoice matches NoVoiceFault.
	ErrNoVoice = errors.New("no usable voice audio")
	// ErrAsset matches AssetFault.
	ErrAsset = music.ErrAsset
	// ErrRender matches RenderFault.
	ErrRender = errors.New("mastering failed")
)

// Fault is a classified failure of one job at one stage.
type Fault struct {
	Kind  FaultKind
	Stage Stage
	Err   error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s fault during %s: %v", f.Kind, f.Stage, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }

// Is lets errors.Is match a Fault against its kind's sentinel.
func (f *Fault) Is(target error) bool {
	switch f.Kind {
	case DecodeFault:
		return target == ErrDecode
	case NoVoiceFault:
		return target == ErrNoVoice
	case AssetFault:
		return target == ErrAsset
	case RenderFault:
		return target == ErrRender
	}

	return false
}

// KindOf returns the fault kind of err, defaulting to RenderFault.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	if errors.Is(err, ErrAsset) {
		return AssetFault
	}

	return RenderFault
}

// UserMessage maps a mastering error to text suitable for end users.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch KindOf(err) {
	case NoVoiceFault:
		return "The narration came back empty, so there is nothing to mix. Please generate the audio again."
	case AssetFault:
		return "The background music could not be loaded. Try another vibe or try again later."
	case DecodeFault:
		return "The narration audio was malformed."
	default:
		return "Something went wrong while mastering the audio. Please try again."
	}
}
