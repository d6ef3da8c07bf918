// Package media probes input files and muxes the final video/audio
// container through ffmpeg.
package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	ffbin "github.com/Jarutais/slidecast/internal/ffmpeg"
)

// JSON output from ffprobe
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration returns the duration of an audio or video file.
func Duration(filePath string) (time.Duration, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", filePath)
	}

	ffprobePath, err := ffbin.FFprobePath()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	return parseDuration(out.Bytes())
}

func parseDuration(data []byte) (time.Duration, error) {
	var probe probeOutput
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var seconds float64
	if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &seconds); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}
