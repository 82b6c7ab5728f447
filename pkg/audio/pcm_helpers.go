package audio

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// PCMDecoder turns speech-provider payloads into sample buffers.
//
// Payload contract: base64 of raw signed 16-bit little-endian mono PCM at a
// fixed sample rate (24 kHz). The rate is never inferred from the payload.
type PCMDecoder struct {
	logger     *zap.Logger
	sampleRate int
}

// NewPCMDecoder returns a decoder for the speech contract rate.
func NewPCMDecoder(logger *zap.Logger) *PCMDecoder {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PCMDecoder{logger: logger, sampleRate: SpeechSampleRate}
}

// Decode decodes payload and returns nil when there is nothing to play.
// A malformed payload is logged and treated as empty.
func (d *PCMDecoder) Decode(payload string) *SampleBuffer {
	return d.DecodePCM16(d.DecodeBase64(payload))
}

// DecodeBase64 strips whitespace and decodes standard base64. Padding is
// optional but must be exact when present.
// Malformed input is logged and yields an empty, non-nil slice.
func (d *PCMDecoder) DecodeBase64(payload string) []byte {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, payload)

	enc := base64.RawStdEncoding
	if strings.Contains(cleaned, "=") {
		enc = base64.StdEncoding
	}

	data, err := enc.DecodeString(cleaned)
	if err != nil {
		d.logger.Warn("Speech payload is not valid base64, treating as empty",
			zap.Int("payload_len", len(payload)),
			zap.Error(err))

		return []byte{}
	}

	return data
}

// DecodePCM16 converts PCM16 LE bytes to normalized floats (v / 32768).
// A trailing odd byte is ignored. Empty input returns nil.
func (d *PCMDecoder) DecodePCM16(data []byte) *SampleBuffer {
	n := len(data) / 2
	if n == 0 {
		return nil
	}

	samples := make([]float32, n)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(data[2*i:]))
		samples[i] = float32(v) / 32768.0
	}

	return NewSampleBuffer(samples, d.sampleRate)
}

// PCMInt16ToLE converts int16 samples to raw little-endian bytes.
func PCMInt16ToLE(samples []int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
	}

	return out
}

// FloatToPCM16 converts one float sample to int16 using the asymmetric
// scaling of the WAV encoder: clamp to [-1, 1], negatives ×32768,
// non-negatives ×32767, truncate toward zero.
func FloatToPCM16(s float32) int16 {
	v := float64(s)
	switch {
	case math.IsNaN(v):
		v = 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}

	if v < 0 {
		return int16(v * 32768)
	}

	return int16(v * 32767)
}
