package timeline

import (
	"errors"
	"math"
)

// millisecond timescale used for all presentation times
const Timescale = 1000

var (
	ErrTooFewImages       = errors.New("at least 2 images are required")
	ErrInvalidDuration    = errors.New("durations must be positive")
	ErrInvalidSampleCount = errors.New("samples per transition must be at least 2")
	ErrTransitionTooLong  = errors.New("transition duration must not exceed image duration")
)

// Rational is a fixed-point presentation time (Value / Timescale seconds).
// Keeping times rational makes the emitted sequence deterministic and
// directly comparable, unlike raw float64 seconds.
type Rational struct {
	Value     int64
	Timescale int32
}

// converts seconds to a millisecond-timescale rational, rounding to the
// nearest timescale unit
func NewRational(seconds float64) Rational {
	return Rational{
		Value:     int64(math.Round(seconds * Timescale)),
		Timescale: Timescale,
	}
}

func (r Rational) Seconds() float64 {
	return float64(r.Value) / float64(r.Timescale)
}

// FrameSample is one scheduled frame: when it appears, how far the
// transition has progressed, and which transition it belongs to.
type FrameSample struct {
	Time     Rational
	Progress float64
	Effect   int
}

// Schedule is a lazy, single-pass sequence of frame samples covering
// imageCount-1 transitions. The consumer must pull the next sample only
// after the previous frame has been accepted by the encoder; the schedule
// itself never skips ahead to catch up with wall-clock time, so the total
// output duration is independent of rendering speed.
type Schedule struct {
	transitions        int
	samplesPerTrans    int
	frameDuration      float64
	transitionDuration float64
	idx                int
}

// Option adjusts schedule construction.
type Option func(*Schedule)

// overrides the default of 30 samples per transition
func WithSamplesPerTransition(n int) Option {
	return func(s *Schedule) {
		s.samplesPerTrans = n
	}
}

// New validates the slideshow parameters and returns a schedule over
// imageCount-1 transitions. frameDuration is the display time of each image
// and transitionDuration the length of each blend, both in seconds.
func New(imageCount int, frameDuration, transitionDuration float64, opts ...Option) (*Schedule, error) {
	s := &Schedule{
		transitions:        imageCount - 1,
		samplesPerTrans:    30,
		frameDuration:      frameDuration,
		transitionDuration: transitionDuration,
	}
	for _, opt := range opts {
		opt(s)
	}

	if imageCount < 2 {
		return nil, ErrTooFewImages
	}
	if frameDuration <= 0 || transitionDuration <= 0 {
		return nil, ErrInvalidDuration
	}
	if s.samplesPerTrans < 2 {
		return nil, ErrInvalidSampleCount
	}
	// a transition longer than the image slot would make sample times run
	// backwards at the next transition boundary
	if transitionDuration > frameDuration {
		return nil, ErrTransitionTooLong
	}

	return s, nil
}

// Next returns the next frame sample, or ok=false once the sequence is
// exhausted. The schedule cannot be restarted.
func (s *Schedule) Next() (FrameSample, bool) {
	if s.idx >= s.Total() {
		return FrameSample{}, false
	}

	transition := s.idx / s.samplesPerTrans
	counter := s.idx % s.samplesPerTrans
	s.idx++

	progress := float64(counter) / float64(s.samplesPerTrans-1)
	start := float64(transition) * s.frameDuration

	return FrameSample{
		Time:     NewRational(start + progress*s.transitionDuration),
		Progress: progress,
		Effect:   transition,
	}, true
}

// Total is the number of samples the schedule emits over its lifetime.
func (s *Schedule) Total() int {
	return s.transitions * s.samplesPerTrans
}

// Remaining is the number of samples not yet pulled.
func (s *Schedule) Remaining() int {
	return s.Total() - s.idx
}

// Duration is the presentation time of the final sample in seconds, which
// is also the length of the rendered video timeline.
func (s *Schedule) Duration() float64 {
	return float64(s.transitions-1)*s.frameDuration + s.transitionDuration
}
