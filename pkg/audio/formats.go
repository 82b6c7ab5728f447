package audio

import "time"

// Format constants shared by the decode, mix and encode layers.
const (
	// Speech provider payload: raw PCM16 LE mono.
	SpeechSampleRate = 24_000 // Hz
	SpeechChannels   = 1

	// Offline export.
	ExportSampleRate = 44_100 // Hz
	ExportChannels   = 1

	// Discord voice.
	DiscordSampleRate = 48_000 // Hz
	DiscordChannels   = 2      // interleaved stereo on the wire
	DiscordFrameSize  = 960    // samples per channel (20 ms)

	// WAV container.
	WAVHeaderSize    = 44
	WAVBitsPerSample = 16
	WAVFormatPCM     = 1
)

// FrameDuration is the pacing interval used by realtime outputs.
const FrameDuration = 20 * time.Millisecond

// FramesFor returns the number of sample frames covering d at rate.
// Integer arithmetic keeps fixed-window renders exact (35 s at 44.1 kHz is
// 1 543 500 frames, not 1 543 499).
func FramesFor(d time.Duration, rate int) int {
	if d <= 0 || rate <= 0 {
		return 0
	}

	return int(int64(d) * int64(rate) / int64(time.Second))
}

// DurationOf returns the playback duration of n frames at rate.
func DurationOf(n, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}

	return time.Duration(int64(n) * int64(time.Second) / int64(rate))
}
