package mastering

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Raikerian/go-adstudio/internal/metrics"
)

// Stage is a state of the render-to-download flow:
//
//	Idle → VoiceDecoding → MusicLoading → Mixing → Rendering → Serializing → Ready
//	                 └──────────────┴──────────┴──────────┴───────────┴──→ Failed
type Stage int

const (
	StageIdle Stage = iota
	StageVoiceDecoding
	StageMusicLoading
	StageMixing
	StageRendering
	StageSerializing
	StageReady
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageVoiceDecoding:
		return "voice_decoding"
	case StageMusicLoading:
		return "music_loading"
	case StageMixing:
		return "mixing"
	case StageRendering:
		return "rendering"
	case StageSerializing:
		return "serializing"
	case StageReady:
		return "ready"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is the advisory text shown to users while a stage runs.
func (s Stage) Status() string {
	switch s {
	case StageVoiceDecoding, StageMusicLoading, StageMixing:
		return "Mastering…"
	case StageRendering, StageSerializing:
		return "Rendering…"
	case StageReady:
		return "Ready"
	case StageFailed:
		return "Failed"
	default:
		return ""
	}
}

// StageFunc observes stage transitions of a job.
type StageFunc func(Stage)

// job tracks one pass through the state machine.
type job struct {
	id      string
	mode    string
	logger  *zap.Logger
	metrics *metrics.Metrics
	notify  StageFunc

	stage   Stage
	entered time.Time
}

func newJob(mode string, logger *zap.Logger, m *metrics.Metrics, notify StageFunc) *job {
	id := uuid.NewString()

	return &job{
		id:      id,
		mode:    mode,
		logger:  logger.With(zap.String("job_id", id), zap.String("mode", mode)),
		metrics: m,
		notify:  notify,
		stage:   StageIdle,
		entered: time.Now(),
	}
}

func (j *job) enter(next Stage) {
	now := time.Now()
	if j.stage != StageIdle {
		j.metrics.ObserveStage(j.stage.String(), now.Sub(j.entered))
	}

	j.logger.Debug("Mastering stage",
		zap.Stringer("from", j.stage),
		zap.Stringer("to", next))

	j.stage = next
	j.entered = now
	if j.notify != nil {
		j.notify(next)
	}
}

func (j *job) ready() {
	j.enter(StageReady)
	j.metrics.RecordJob(j.mode, "ready")
}

// fail moves the job to Failed and returns the classified fault.
func (j *job) fail(kind FaultKind, err error) error {
	fault := &Fault{Kind: kind, Stage: j.stage, Err: err}

	j.logger.Warn("Mastering failed",
		zap.Stringer("stage", j.stage),
		zap.Stringer("kind", kind),
		zap.Error(err))

	j.metrics.RecordFault(kind.String())
	j.enter(StageFailed)
	j.metrics.RecordJob(j.mode, "failed")

	return fault
}
