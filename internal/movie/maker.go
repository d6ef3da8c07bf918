// Package movie orchestrates a slideshow render: validate, decode, schedule,
// render, encode, then fit and mux the background audio.
package movie

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jarutais/slidecast/internal/audiofit"
	"github.com/Jarutais/slidecast/internal/effects"
	"github.com/Jarutais/slidecast/internal/encode"
	"github.com/Jarutais/slidecast/internal/logging"
	"github.com/Jarutais/slidecast/internal/media"
	"github.com/Jarutais/slidecast/internal/render"
	"github.com/Jarutais/slidecast/internal/source"
	"github.com/Jarutais/slidecast/internal/system"
	"github.com/Jarutais/slidecast/internal/timeline"
)

// ErrTooFewImages mirrors the scheduler's sentinel so callers can match it
// without importing the timeline package.
var ErrTooFewImages = timeline.ErrTooFewImages

var ErrTransitionCountMismatch = errors.New("transition count must equal image count minus 1")

// Options configures a Maker. Zero durations are rejected at Make time;
// use DefaultOptions as the starting point.
type Options struct {
	// FrameDuration is the display time of each image in seconds.
	FrameDuration float64

	// TransitionDuration is the length of each transition in seconds. It
	// must not exceed FrameDuration.
	TransitionDuration float64

	// FPS is the output frame rate. Default: 30.
	FPS int

	// SamplesPerTransition is how many blend steps each transition is
	// rendered with. Default: 30.
	SamplesPerTransition int

	// Quality is the x264 CRF value. Default: 23.
	Quality int

	// AudioPath optionally names a background audio file, looped or
	// trimmed to the video duration.
	AudioPath string

	// Workers bounds parallel image decoding. Default: probed from the
	// host.
	Workers int

	Logger *logging.Logger
}

// returns the standard slideshow timing: 1s per image, 0.8s transitions
func DefaultOptions() Options {
	return Options{
		FrameDuration:        1.0,
		TransitionDuration:   0.8,
		FPS:                  30,
		SamplesPerTransition: 30,
	}
}

// Result describes a completed render.
type Result struct {
	OutputPath    string
	Duration      time.Duration
	FramesWritten int
	FramesDropped int
}

// Outcome is the single completion value of a render: exactly one of
// Result or Err is set.
type Outcome struct {
	Result *Result
	Err    error
}

type sinkFactory func(ctx context.Context, params encode.Params, pool *render.Pool) (encode.Sink, error)

// Maker renders slideshow videos.
type Maker struct {
	opts     Options
	log      *logging.Logger
	renderer render.Renderer
	newSink  sinkFactory
}

func NewMaker(opts Options) *Maker {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.SamplesPerTransition <= 0 {
		opts.SamplesPerTransition = 30
	}
	if opts.Workers <= 0 {
		opts.Workers = system.RecommendedWorkers()
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	return &Maker{
		opts:     opts,
		log:      log,
		renderer: render.NewSoftware(),
		newSink: func(ctx context.Context, params encode.Params, pool *render.Pool) (encode.Sink, error) {
			return encode.NewFFmpegSink(ctx, params, pool)
		},
	}
}

// Make renders the slideshow and blocks until it completes or fails.
// images are the slide paths in order; transitions names one effect per
// adjacent pair; output is overwritten if it exists.
func (m *Maker) Make(ctx context.Context, images, transitions []string, output string) (*Result, error) {
	outcome := <-m.Start(ctx, images, transitions, output)
	return outcome.Result, outcome.Err
}

// Start kicks off the render on a background goroutine and returns a
// channel that delivers exactly one Outcome.
func (m *Maker) Start(ctx context.Context, images, transitions []string, output string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	var once sync.Once
	resolve := func(r *Result, err error) {
		once.Do(func() {
			ch <- Outcome{Result: r, Err: err}
			close(ch)
		})
	}

	go m.run(ctx, images, transitions, output, resolve)
	return ch
}

func (m *Maker) run(ctx context.Context, images, transitions []string, output string, resolve func(*Result, error)) {
	fx, sched, err := m.validate(images, transitions)
	if err != nil {
		resolve(nil, err)
		return
	}

	job := uuid.NewString()[:8]
	log := m.log.With("job", job)
	log.Debugw("render starting",
		"images", len(images),
		"samples", sched.Total(),
		"timeline_seconds", sched.Duration(),
		"output", output,
	)

	frames, err := source.Load(ctx, images, m.opts.Workers)
	if err != nil {
		resolve(nil, fmt.Errorf("load images: %w", err))
		return
	}
	bounds := frames[0].Bounds()

	workDir, err := os.MkdirTemp("", "slidecast-"+job+"-")
	if err != nil {
		resolve(nil, fmt.Errorf("create workspace: %w", err))
		return
	}
	defer os.RemoveAll(workDir)

	// without audio the encoder writes the final file directly
	videoPath := output
	if m.opts.AudioPath != "" {
		videoPath = filepath.Join(workDir, "video.mp4")
	}

	pool := render.NewPool()
	sink, err := m.newSink(ctx, encode.Params{
		Width:   bounds.Dx(),
		Height:  bounds.Dy(),
		FPS:     m.opts.FPS,
		Path:    videoPath,
		Quality: m.opts.Quality,
	}, pool)
	if err != nil {
		resolve(nil, fmt.Errorf("encoder setup: %w", err))
		return
	}

	dropped := 0
	for {
		sample, ok := sched.Next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			_, _ = sink.Close()
			resolve(nil, err)
			return
		}

		dst := pool.Get(bounds)
		err := m.renderer.Render(dst, frames[sample.Effect], frames[sample.Effect+1], fx[sample.Effect], sample.Progress)
		if err != nil {
			pool.Put(dst)
			dropped++
			log.Warnw("frame render failed, dropping",
				"transition", sample.Effect,
				"progress", sample.Progress,
				"error", err,
			)
			continue
		}

		if err := sink.Append(ctx, encode.Frame{Image: dst, PTS: sample.Time}); err != nil {
			_, _ = sink.Close()
			resolve(nil, fmt.Errorf("append frame: %w", err))
			return
		}
	}

	stats, err := sink.Close()
	if err != nil {
		resolve(nil, fmt.Errorf("finish encode: %w", err))
		return
	}

	if m.opts.AudioPath != "" {
		if err := m.mixAudio(ctx, videoPath, output, stats.Duration); err != nil {
			resolve(nil, err)
			return
		}
	}

	log.Infow("render complete",
		"output", output,
		"duration", stats.Duration,
		"frames", stats.FramesWritten,
		"dropped", dropped,
	)

	resolve(&Result{
		OutputPath:    output,
		Duration:      stats.Duration,
		FramesWritten: stats.FramesWritten,
		FramesDropped: dropped,
	}, nil)
}

// validate rejects bad inputs before any image is decoded or encoder
// started.
func (m *Maker) validate(images, transitions []string) ([]effects.Effect, *timeline.Schedule, error) {
	if len(images) < 2 {
		return nil, nil, ErrTooFewImages
	}
	if len(transitions) != len(images)-1 {
		return nil, nil, fmt.Errorf(
			"%w: %d transitions for %d images",
			ErrTransitionCountMismatch, len(transitions), len(images),
		)
	}

	fx := make([]effects.Effect, len(transitions))
	for i, name := range transitions {
		e, err := effects.Lookup(name)
		if err != nil {
			return nil, nil, err
		}
		fx[i] = e
	}

	sched, err := timeline.New(
		len(images),
		m.opts.FrameDuration,
		m.opts.TransitionDuration,
		timeline.WithSamplesPerTransition(m.opts.SamplesPerTransition),
	)
	if err != nil {
		return nil, nil, err
	}

	return fx, sched, nil
}

func (m *Maker) mixAudio(ctx context.Context, videoPath, output string, videoDuration time.Duration) error {
	audioDuration, err := media.Duration(m.opts.AudioPath)
	if err != nil {
		return fmt.Errorf("probe audio: %w", err)
	}

	segments, err := audiofit.Fit(videoDuration, audioDuration)
	if err != nil {
		return fmt.Errorf("fit audio: %w", err)
	}

	if err := media.Mux(ctx, videoPath, m.opts.AudioPath, output, segments); err != nil {
		return err
	}
	return nil
}
