package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// WAVHeader mirrors the canonical 44-byte RIFF/WAVE PCM header.
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // file length - 8
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 = linear PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * BlockAlign
	BlockAlign    uint16 // NumChannels * 2
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // data length in bytes
}

// ErrNotWAV is returned by ReadWAVHeader for non-canonical input.
var ErrNotWAV = errors.New("not a canonical PCM WAV header")

// NewWAVHeader builds the header for dataLen bytes of 16-bit PCM.
func NewWAVHeader(sampleRate, channels, dataLen int) WAVHeader {
	blockAlign := channels * WAVBitsPerSample / 8

	return WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(WAVHeaderSize - 8 + dataLen),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   WAVFormatPCM,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: WAVBitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(dataLen),
	}
}

// EncodeWAV serializes a rendered master to an in-memory WAV file.
func EncodeWAV(m *RenderedMaster) ([]byte, error) {
	if m == nil || len(m.Samples) == 0 {
		return nil, ErrEmptyMaster
	}

	var buf bytes.Buffer
	buf.Grow(WAVHeaderSize + len(m.Samples)*2)
	if err := WriteWAV(&buf, m); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteWAV streams the header followed by PCM16 LE samples.
// No dithering or noise shaping is applied.
func WriteWAV(w io.Writer, m *RenderedMaster) error {
	if m == nil || len(m.Samples) == 0 {
		return ErrEmptyMaster
	}
	if m.Channels <= 0 || m.SampleRate <= 0 {
		return fmt.Errorf("invalid master format: %d ch @ %d Hz", m.Channels, m.SampleRate)
	}

	header := NewWAVHeader(m.SampleRate, m.Channels, len(m.Samples)*2)
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	const chunk = 4096
	scratch := make([]byte, chunk*2)
	for off := 0; off < len(m.Samples); off += chunk {
		end := min(off+chunk, len(m.Samples))
		out := scratch[:(end-off)*2]
		for i, s := range m.Samples[off:end] {
			binary.LittleEndian.PutUint16(out[2*i:], uint16(FloatToPCM16(s)))
		}
		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
	}

	return nil
}

// ReadWAVHeader parses and validates a canonical 44-byte header.
func ReadWAVHeader(r io.Reader) (WAVHeader, error) {
	var h WAVHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return h, fmt.Errorf("read wav header: %w", err)
	}

	if string(h.ChunkID[:]) != "RIFF" || string(h.Format[:]) != "WAVE" ||
		string(h.Subchunk1ID[:]) != "fmt " || string(h.Subchunk2ID[:]) != "data" {
		return h, ErrNotWAV
	}

	return h, nil
}
