// Package music fetches and decodes the background beds used under a voice.
package music

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/pkg/audio"
)

// ErrAsset marks any failure to fetch or decode a music asset.
var ErrAsset = errors.New("music asset unavailable")

// ErrUnsupportedFormat is wrapped in ErrAsset for unknown containers.
var ErrUnsupportedFormat = errors.New("unsupported audio container")

const (
	resampleQuality = 4
	streamChunk     = 1024
)

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	Client       *http.Client
	CacheSize    int
	MaxBytes     int64
	FetchTimeout time.Duration
}

// Loader downloads music assets and decodes them to mono at a target rate.
type Loader struct {
	logger   *zap.Logger
	client   *http.Client
	cache    *lru.Cache[string, *audio.SampleBuffer]
	maxBytes int64
	timeout  time.Duration
}

// NewLoader creates a loader with an LRU of decoded buffers.
func NewLoader(logger *zap.Logger, opts LoaderOptions) (*Loader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 16
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 32 << 20
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	cache, err := lru.New[string, *audio.SampleBuffer](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create music cache: %w", err)
	}

	return &Loader{
		logger:   logger.Named("music"),
		client:   client,
		cache:    cache,
		maxBytes: opts.MaxBytes,
		timeout:  opts.FetchTimeout,
	}, nil
}

// Load returns the asset at url as a mono buffer at sampleRate.
// An empty url means no bed was selected and yields (nil, nil).
func (l *Loader) Load(ctx context.Context, url string, sampleRate int) (*audio.SampleBuffer, error) {
	if url == "" {
		return nil, nil
	}

	key := url + "@" + strconv.Itoa(sampleRate)
	if buf, ok := l.cache.Get(key); ok {
		l.logger.Debug("Music cache hit", zap.String("url", url), zap.Int("rate_hz", sampleRate))

		return buf, nil
	}

	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAsset, err)
	}

	buf, err := Decode(data, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAsset, url, err)
	}

	l.cache.Add(key, buf)
	l.logger.Info("Loaded music asset",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.Int("rate_hz", sampleRate),
		zap.Duration("duration", buf.Duration()))

	return buf, nil
}

// Prefetch warms the cache for url at sampleRate.
func (l *Loader) Prefetch(ctx context.Context, url string, sampleRate int) error {
	_, err := l.Load(ctx, url, sampleRate)

	return err
}

// CacheLen returns the number of decoded assets held.
func (l *Loader) CacheLen() int {
	return l.cache.Len()
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("asset %s exceeds %d bytes", url, l.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("asset %s is empty", url)
	}

	return data, nil
}

// Decode sniffs the container of data, decodes it, downmixes to mono and
// resamples to sampleRate.
func Decode(data []byte, sampleRate int) (*audio.SampleBuffer, error) {
	mime := mimetype.Detect(data)

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	r := bytes.NewReader(data)
	switch {
	case mime.Is("audio/mpeg"):
		streamer, format, err = mp3.Decode(io.NopCloser(r))
	case mime.Is("audio/wav"):
		streamer, format, err = wav.Decode(r)
	case mime.Is("audio/flac"):
		streamer, format, err = flac.Decode(r)
	case mime.Is("audio/ogg"), mime.Is("application/ogg"):
		streamer, format, err = vorbis.Decode(io.NopCloser(r))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mime.String())
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mime.String(), err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if int(format.SampleRate) != sampleRate {
		s = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(sampleRate), streamer)
	}

	samples, err := drainMono(s)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mime.String(), err)
	}
	if len(samples) == 0 {
		return nil, errors.New("asset decoded to zero samples")
	}

	return audio.NewSampleBuffer(samples, sampleRate), nil
}

// drainMono reads s to exhaustion, averaging left and right.
func drainMono(s beep.Streamer) ([]float32, error) {
	chunk := make([][2]float64, streamChunk)

	var out []float32
	for {
		n, ok := s.Stream(chunk)
		for _, frame := range chunk[:n] {
			out = append(out, float32((frame[0]+frame[1])/2))
		}
		if !ok {
			break
		}
	}

	return out, s.Err()
}
