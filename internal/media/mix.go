package media

import (
	"context"
	"fmt"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/Jarutais/slidecast/internal/audiofit"
	ffbin "github.com/Jarutais/slidecast/internal/ffmpeg"
)

// Mux combines the silent video with the audio segments produced by the
// fitter and writes the final container, overwriting any existing output.
// Each segment becomes a trimmed read of the audio source; the trimmed
// pieces are concatenated in insertion order, which realises the loop.
func Mux(ctx context.Context, videoPath, audioPath, outputPath string, segments []audiofit.Segment) error {
	if len(segments) == 0 {
		return fmt.Errorf("no audio segments to mux")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ffmpegPath, err := ffbin.FFmpegPath()
	if err != nil {
		return err
	}

	err = buildMux(videoPath, audioPath, outputPath, segments).
		SetFfmpegPath(ffmpegPath).
		Silent(true).
		Run()

	if err != nil {
		return fmt.Errorf("audio mux failed: %w", err)
	}

	return nil
}

// buildMux assembles the ffmpeg graph: one trimmed read of the audio per
// segment, concatenated in insertion order, muxed with the video stream.
// The output is flagged for overwrite so re-rendering onto an existing
// file succeeds.
func buildMux(videoPath, audioPath, outputPath string, segments []audiofit.Segment) *ffmpeg.Stream {
	video := ffmpeg.Input(videoPath)

	parts := make([]*ffmpeg.Stream, 0, len(segments))
	for _, seg := range segments {
		in := ffmpeg.Input(audioPath, ffmpeg.KwArgs{
			"ss": fmt.Sprintf("%.3f", seg.SourceStart.Seconds()),
			"t":  fmt.Sprintf("%.3f", seg.Duration.Seconds()),
		})
		parts = append(parts, in.Audio())
	}

	audio := parts[0]
	if len(parts) > 1 {
		audio = ffmpeg.Concat(parts, ffmpeg.KwArgs{"v": 0, "a": 1})
	}

	return ffmpeg.Output(
		[]*ffmpeg.Stream{video.Video(), audio},
		outputPath,
		ffmpeg.KwArgs{
			"c:v":      "copy",
			"c:a":      "aac",
			"shortest": "",
		},
	).OverWriteOutput()
}
