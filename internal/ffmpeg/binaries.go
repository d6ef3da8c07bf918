// Package ffmpeg resolves the ffmpeg and ffprobe binaries the renderer
// shells out to.
package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// BinaryPaths holds the resolved executable locations.
type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure resolves both binaries once per process. The SLIDECAST_FFMPEG_PATH
// and SLIDECAST_FFPROBE_PATH environment variables override PATH lookup.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = resolve()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func resolve() (BinaryPaths, error) {
	ffmpegPath := os.Getenv("SLIDECAST_FFMPEG_PATH")
	ffprobePath := os.Getenv("SLIDECAST_FFPROBE_PATH")

	if ffmpegPath == "" {
		found, err := exec.LookPath("ffmpeg")
		if err != nil {
			return BinaryPaths{}, fmt.Errorf(
				"ffmpeg not found in PATH (set SLIDECAST_FFMPEG_PATH to override): %w", err,
			)
		}
		ffmpegPath = found
	}
	if ffprobePath == "" {
		found, err := exec.LookPath("ffprobe")
		if err != nil {
			return BinaryPaths{}, fmt.Errorf(
				"ffprobe not found in PATH (set SLIDECAST_FFPROBE_PATH to override): %w", err,
			)
		}
		ffprobePath = found
	}

	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}
