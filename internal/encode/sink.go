// Package encode streams rendered frames into an ffmpeg child process.
//
// The sink accepts sparsely timed frames: each frame carries the
// presentation time the scheduler assigned to it and persists on screen
// until the next frame's time. Append converts that sparse timeline into a
// constant-frame-rate stream by repeating the previous frame across the
// gap, and blocks on the encoder's pipe until the data is accepted, so the
// producer never runs ahead of encoder readiness.
package encode

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"
	"time"

	ffbin "github.com/Jarutais/slidecast/internal/ffmpeg"
	"github.com/Jarutais/slidecast/internal/render"
	"github.com/Jarutais/slidecast/internal/timeline"
)

// Frame is one rendered frame with its presentation time.
type Frame struct {
	Image *image.RGBA
	PTS   timeline.Rational
}

// Stats summarizes what a sink wrote before closing.
type Stats struct {
	FramesWritten int
	Duration      time.Duration
}

// Sink consumes rendered frames in presentation order. Append blocks until
// the encoder has accepted the frame; Close flushes the final frame and
// waits for the encoder to finish.
type Sink interface {
	Append(ctx context.Context, frame Frame) error
	Close() (Stats, error)
}

// Params configures an ffmpeg-backed sink.
type Params struct {
	Width   int
	Height  int
	FPS     int
	Path    string
	Quality int // x264 CRF, default 23
}

// FFmpegSink pipes raw RGBA frames into ffmpeg producing an H.264 mp4.
type FFmpegSink struct {
	params Params
	out    io.WriteCloser
	wait   func() error
	stderr *bytes.Buffer
	pool   *render.Pool

	started  bool
	prev     *image.RGBA
	prevTick int64
	lastPTS  int64
	frames   int
	closed   bool
}

// NewFFmpegSink starts the encoder process. Setup failures (ffmpeg missing,
// process cannot start) are returned as errors rather than terminating the
// caller.
func NewFFmpegSink(ctx context.Context, params Params, pool *render.Pool) (*FFmpegSink, error) {
	if params.Quality <= 0 {
		params.Quality = 23
	}

	ffmpegPath, err := ffbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, encoderArgs(params)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open encoder stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start encoder: %w", err)
	}

	return newSink(stdin, cmd.Wait, &stderr, params, pool), nil
}

// encoderArgs builds the ffmpeg invocation: raw RGBA frames on stdin, an
// H.264 mp4 at params.Path. The -y flag makes an existing output file get
// overwritten rather than failing the render.
func encoderArgs(params Params) []string {
	return []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", fmt.Sprintf("%d", params.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", "libx264",
		"-crf", fmt.Sprintf("%d", params.Quality),
		"-preset", "medium",
		params.Path,
	}
}

func newSink(out io.WriteCloser, wait func() error, stderr *bytes.Buffer, params Params, pool *render.Pool) *FFmpegSink {
	return &FFmpegSink{
		params: params,
		out:    out,
		wait:   wait,
		stderr: stderr,
		pool:   pool,
	}
}

// Append schedules frame at its presentation time. The previous frame is
// repeated across the constant-rate ticks up to the new frame's tick; the
// write into the encoder pipe blocks until accepted, which is the
// backpressure signal.
func (s *FFmpegSink) Append(ctx context.Context, frame Frame) error {
	if s.closed {
		return fmt.Errorf("append on closed sink")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	pts := frame.PTS.Value
	tick := s.tickFor(frame.PTS)

	if !s.started {
		s.started = true
		s.prev = frame.Image
		s.prevTick = tick
		s.lastPTS = pts
		return nil
	}

	if pts < s.lastPTS {
		return fmt.Errorf("non-monotonic presentation time: %dms after %dms", pts, s.lastPTS)
	}

	repeats := tick - s.prevTick
	if repeats < 1 {
		// same output tick: the newer frame wins
		s.release(s.prev)
		s.prev = frame.Image
		s.lastPTS = pts
		return nil
	}

	for i := int64(0); i < repeats; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.write(s.prev); err != nil {
			return err
		}
	}

	s.release(s.prev)
	s.prev = frame.Image
	s.prevTick = tick
	s.lastPTS = pts
	return nil
}

// Close flushes the held frame, closes the pipe, and waits for the encoder
// to exit.
func (s *FFmpegSink) Close() (Stats, error) {
	if s.closed {
		return Stats{}, fmt.Errorf("sink already closed")
	}
	s.closed = true

	var writeErr error
	if s.prev != nil {
		writeErr = s.write(s.prev)
		s.release(s.prev)
		s.prev = nil
	}

	if err := s.out.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("close encoder pipe: %w", err)
	}

	if err := s.wait(); err != nil {
		return Stats{}, fmt.Errorf("encoder failed: %w%s", err, s.stderrTail())
	}
	if writeErr != nil {
		return Stats{}, writeErr
	}

	return Stats{
		FramesWritten: s.frames,
		Duration:      time.Duration(s.frames) * time.Second / time.Duration(s.params.FPS),
	}, nil
}

func (s *FFmpegSink) write(img *image.RGBA) error {
	if img.Stride != img.Rect.Dx()*4 {
		return fmt.Errorf("frame has non-contiguous stride %d", img.Stride)
	}
	if _, err := s.out.Write(img.Pix); err != nil {
		return fmt.Errorf("write frame to encoder: %w", err)
	}
	s.frames++
	return nil
}

func (s *FFmpegSink) release(img *image.RGBA) {
	if s.pool != nil {
		s.pool.Put(img)
	}
}

// tickFor maps a presentation time onto the output frame grid.
func (s *FFmpegSink) tickFor(pts timeline.Rational) int64 {
	return (pts.Value*int64(s.params.FPS) + timeline.Timescale/2) / timeline.Timescale
}

func (s *FFmpegSink) stderrTail() string {
	if s.stderr == nil || s.stderr.Len() == 0 {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(s.stderr.String()), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	return "\n" + strings.Join(lines, "\n")
}
